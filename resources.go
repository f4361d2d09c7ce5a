package rhi

import "math"

// HeapType selects the memory-property class a heap is allocated from.
type HeapType int

const (
	HeapTypeDeviceLocal HeapType = iota
	HeapTypeUpload
	HeapTypeReadback
)

func (t HeapType) String() string {
	switch t {
	case HeapTypeDeviceLocal:
		return "DeviceLocal"
	case HeapTypeUpload:
		return "Upload"
	case HeapTypeReadback:
		return "Readback"
	}
	return "Invalid"
}

// HeapDesc describes a device-memory heap to allocate.
type HeapDesc struct {
	Capacity  uint64
	Type      HeapType
	DebugName string
}

// Heap is an owned allocation of device memory backing resource bindings.
type Heap interface {
	Desc() HeapDesc
}

// TileShape is the tile granularity of a sparse texture, in texels.
type TileShape struct {
	WidthInTexels  uint32
	HeightInTexels uint32
	DepthInTexels  uint32
}

// PackedMipDesc describes the packed (mip tail) region of a sparse texture.
type PackedMipDesc struct {
	NumStandardMips                 uint32
	NumPackedMips                   uint32
	StartTileIndexInOverallResource uint32
	NumTilesForPackedMips           uint32
}

// SubresourceTiling holds the per-mip tile counts of a sparse texture.
// Mips inside the packed tail report zero counts and a start index of
// TileIndexUnmapped.
type SubresourceTiling struct {
	WidthInTiles                    uint32
	HeightInTiles                   uint32
	DepthInTiles                    uint32
	StartTileIndexInOverallResource uint32
}

// TileIndexUnmapped marks subresources that live in the packed mip tail and
// therefore have no standalone tile range.
const TileIndexUnmapped = uint32(math.MaxUint32)
