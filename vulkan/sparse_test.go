package vulkan

import (
	"testing"

	"github.com/glaciergfx/rhi"
)

type fakeSparseTexture struct {
	image     ImageHandle
	mipLevels uint32
	extent    Extent3D
}

func (t *fakeSparseTexture) SparseImage() ImageHandle { return t.image }
func (t *fakeSparseTexture) MipLevels() uint32        { return t.mipLevels }
func (t *fakeSparseTexture) BaseExtent() Extent3D     { return t.extent }

func (t *fakeSparseTexture) SparseImageQuery() SparseImageFormatQuery {
	return SparseImageFormatQuery{Format: formatToNative[rhi.FormatRGBA8Unorm]}
}

func TestGetTextureTiling(t *testing.T) {
	const tileBytes = 65536

	// A 512x512 RGBA8 texture with 128x128 tiles: mips 0..2 are standard
	// (16, 4, and 1 tiles), mips 3+ live in the packed tail.
	driver := &fakeDriver{
		memReqs: MemoryRequirements{
			Size:      22 * tileBytes,
			Alignment: tileBytes,
		},
		sparseReqs: []SparseImageMemoryRequirements{{
			FormatProperties: SparseImageFormatProperties{
				ImageGranularity: Extent3D{Width: 128, Height: 128, Depth: 1},
			},
			ImageMipTailFirstLod: 3,
			ImageMipTailOffset:   21 * tileBytes,
			ImageMipTailSize:     1 * tileBytes,
		}},
	}

	dev, err := newTestDevice(driver, nil, nil)
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	texture := &fakeSparseTexture{
		image:     9,
		mipLevels: 10,
		extent:    Extent3D{Width: 512, Height: 512, Depth: 1},
	}

	var numTiles uint32
	var packed rhi.PackedMipDesc
	var shape rhi.TileShape
	tilings := make([]rhi.SubresourceTiling, 10)

	written := dev.GetTextureTiling(texture, &numTiles, &packed, &shape, tilings)
	if written != 10 {
		t.Fatalf("wrote %d tilings, want 10", written)
	}

	if numTiles != 22 {
		t.Errorf("numTiles = %d, want 22", numTiles)
	}

	if packed.NumStandardMips != 3 {
		t.Errorf("NumStandardMips = %d, want 3", packed.NumStandardMips)
	}
	if packed.NumPackedMips != 7 {
		t.Errorf("NumPackedMips = %d, want 7", packed.NumPackedMips)
	}
	if packed.StartTileIndexInOverallResource != 21 {
		t.Errorf("packed start tile = %d, want 21", packed.StartTileIndexInOverallResource)
	}
	if packed.NumTilesForPackedMips != 1 {
		t.Errorf("packed tile count = %d, want 1", packed.NumTilesForPackedMips)
	}

	if shape.WidthInTexels != 128 || shape.HeightInTexels != 128 || shape.DepthInTexels != 1 {
		t.Errorf("tile shape = %dx%dx%d, want 128x128x1",
			shape.WidthInTexels, shape.HeightInTexels, shape.DepthInTexels)
	}

	wantStandard := []rhi.SubresourceTiling{
		{WidthInTiles: 4, HeightInTiles: 4, DepthInTiles: 1, StartTileIndexInOverallResource: 0},
		{WidthInTiles: 2, HeightInTiles: 2, DepthInTiles: 1, StartTileIndexInOverallResource: 16},
		{WidthInTiles: 1, HeightInTiles: 1, DepthInTiles: 1, StartTileIndexInOverallResource: 20},
	}
	for i, want := range wantStandard {
		if tilings[i] != want {
			t.Errorf("mip %d tiling = %+v, want %+v", i, tilings[i], want)
		}
	}
	for i := 3; i < 10; i++ {
		want := rhi.SubresourceTiling{StartTileIndexInOverallResource: rhi.TileIndexUnmapped}
		if tilings[i] != want {
			t.Errorf("tail mip %d tiling = %+v, want zero counts and the unmapped sentinel", i, tilings[i])
		}
	}
}

func TestGetTextureTilingPartialOutputs(t *testing.T) {
	driver := &fakeDriver{
		memReqs: MemoryRequirements{Size: 4 * 65536, Alignment: 65536},
		sparseReqs: []SparseImageMemoryRequirements{{
			FormatProperties: SparseImageFormatProperties{
				ImageGranularity: Extent3D{Width: 256, Height: 256, Depth: 1},
			},
			ImageMipTailFirstLod: 1,
			ImageMipTailOffset:   0,
			ImageMipTailSize:     0,
		}},
	}

	dev, err := newTestDevice(driver, nil, nil)
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	texture := &fakeSparseTexture{
		image:     9,
		mipLevels: 5,
		extent:    Extent3D{Width: 300, Height: 256, Depth: 1},
	}

	// Only the tile count, with no tiling slice at all.
	var numTiles uint32
	if written := dev.GetTextureTiling(texture, &numTiles, nil, nil, nil); written != 0 {
		t.Errorf("wrote %d tilings with a nil slice, want 0", written)
	}
	if numTiles != 4 {
		t.Errorf("numTiles = %d, want 4", numTiles)
	}

	// A short slice is filled up to its length; the 300-wide mip rounds up.
	tilings := make([]rhi.SubresourceTiling, 1)
	if written := dev.GetTextureTiling(texture, nil, nil, nil, tilings); written != 1 {
		t.Fatalf("wrote %d tilings, want 1", written)
	}
	if tilings[0].WidthInTiles != 2 || tilings[0].HeightInTiles != 1 {
		t.Errorf("mip 0 tiles = %dx%d, want 2x1", tilings[0].WidthInTiles, tilings[0].HeightInTiles)
	}
}

func TestGetTextureTilingWithoutSparseSupport(t *testing.T) {
	var msgs messageCollector
	dev, err := newTestDevice(&fakeDriver{}, &msgs, nil)
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}

	texture := &fakeSparseTexture{image: 9, mipLevels: 1, extent: Extent3D{Width: 64, Height: 64, Depth: 1}}
	if written := dev.GetTextureTiling(texture, nil, nil, nil, nil); written != 0 {
		t.Errorf("wrote %d tilings, want 0", written)
	}
	if len(msgs.errors) != 1 {
		t.Errorf("got %d error diagnostics, want 1", len(msgs.errors))
	}
}
