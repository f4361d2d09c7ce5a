package vulkan

import (
	"github.com/glaciergfx/rhi"
)

// SparseTexture is the surface the tiling query needs from a texture
// created with sparse residency. The texture layer in the embedding
// application implements it over its own image objects.
type SparseTexture interface {
	// SparseImage returns the native image handle.
	SparseImage() ImageHandle

	// SparseImageQuery returns the creation parameters the sparse
	// format-properties query keys on.
	SparseImageQuery() SparseImageFormatQuery

	MipLevels() uint32
	BaseExtent() Extent3D
}

func divCeil(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func mipExtent(base uint32, level uint32) uint32 {
	e := base >> level
	if e == 0 {
		return 1
	}
	return e
}

// GetTextureTiling reports the tile layout of a sparse texture. Every
// output is optional; pass nil (or an empty slice) for the ones not
// needed. Mips inside the packed tail fill their SubresourceTiling with
// zero counts and a start index of rhi.TileIndexUnmapped.
//
// tilings is filled up to its length or the texture's mip count,
// whichever is smaller; the number written is returned.
func (d *Device) GetTextureTiling(texture SparseTexture, numTiles *uint32, desc *rhi.PackedMipDesc, tileShape *rhi.TileShape, tilings []rhi.SubresourceTiling) int {
	image := texture.SparseImage()

	sparseReqs := d.driver.GetImageSparseMemoryRequirements(d.device, image)
	if len(sparseReqs) == 0 {
		d.error("GetTextureTiling: the image reports no sparse memory requirements")
		return 0
	}
	req := sparseReqs[0]

	memReq := d.driver.GetImageMemoryRequirements(d.device, image)
	tileByteSize := memReq.Alignment
	if tileByteSize == 0 {
		d.error("GetTextureTiling: the image reports a zero memory alignment")
		return 0
	}

	if numTiles != nil {
		*numTiles = uint32(memReq.Size / tileByteSize)
	}

	mipLevels := texture.MipLevels()
	if desc != nil {
		desc.NumStandardMips = req.ImageMipTailFirstLod
		desc.NumPackedMips = mipLevels - req.ImageMipTailFirstLod
		desc.StartTileIndexInOverallResource = uint32(req.ImageMipTailOffset / tileByteSize)
		desc.NumTilesForPackedMips = uint32(req.ImageMipTailSize / tileByteSize)
	}

	granularity := req.FormatProperties.ImageGranularity
	if granularity.Width == 0 {
		// Some drivers leave the granularity out of the memory requirements;
		// fall back to the per-format sparse properties.
		props := d.driver.GetSparseImageFormatProperties(d.physicalDevice, texture.SparseImageQuery())
		if len(props) > 0 {
			granularity = props[0].ImageGranularity
		}
	}
	if granularity.Width == 0 {
		granularity.Width = 1
	}
	if granularity.Height == 0 {
		granularity.Height = 1
	}
	if granularity.Depth == 0 {
		granularity.Depth = 1
	}

	if tileShape != nil {
		tileShape.WidthInTexels = granularity.Width
		tileShape.HeightInTexels = granularity.Height
		tileShape.DepthInTexels = granularity.Depth
	}

	count := len(tilings)
	if uint32(count) > mipLevels {
		count = int(mipLevels)
	}

	base := texture.BaseExtent()
	startTileIndex := uint32(0)
	for mip := 0; mip < count; mip++ {
		out := &tilings[mip]
		if uint32(mip) >= req.ImageMipTailFirstLod {
			*out = rhi.SubresourceTiling{
				StartTileIndexInOverallResource: rhi.TileIndexUnmapped,
			}
			continue
		}

		out.WidthInTiles = divCeil(mipExtent(base.Width, uint32(mip)), granularity.Width)
		out.HeightInTiles = divCeil(mipExtent(base.Height, uint32(mip)), granularity.Height)
		out.DepthInTiles = divCeil(mipExtent(base.Depth, uint32(mip)), granularity.Depth)
		out.StartTileIndexInOverallResource = startTileIndex
		startTileIndex += out.WidthInTiles * out.HeightInTiles * out.DepthInTiles
	}

	return count
}
