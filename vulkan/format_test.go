package vulkan

import (
	"testing"

	"github.com/glaciergfx/rhi"
)

func formatDevice(t *testing.T, driver *fakeDriver) *Device {
	t.Helper()
	dev, err := newTestDevice(driver, nil, nil)
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	return dev
}

func TestQueryFormatSupportClassification(t *testing.T) {
	driver := &fakeDriver{
		formatProps: map[uint32]FormatProperties{
			// A full-featured color format.
			formatToNative[rhi.FormatRGBA8Unorm]: {
				OptimalTilingFeatures: FormatFeatureSampledImage |
					FormatFeatureSampledImageFilterLinear |
					FormatFeatureStorageImage |
					FormatFeatureColorAttachment |
					FormatFeatureColorAttachmentBlend,
				BufferFeatures: FormatFeatureUniformTexelBuffer |
					FormatFeatureStorageTexelBuffer |
					FormatFeatureVertexBuffer,
			},
			// Depth: texture plus attachment only.
			formatToNative[rhi.FormatD32]: {
				OptimalTilingFeatures: FormatFeatureSampledImage |
					FormatFeatureDepthStencilAttachment,
			},
			// Atomic-capable integer format.
			formatToNative[rhi.FormatR32Uint]: {
				OptimalTilingFeatures: FormatFeatureSampledImage |
					FormatFeatureStorageImage |
					FormatFeatureStorageImageAtomic,
				BufferFeatures: FormatFeatureStorageTexelBuffer |
					FormatFeatureStorageTexelBufferAtomic,
			},
		},
	}
	dev := formatDevice(t, driver)

	tests := []struct {
		name   string
		format rhi.Format
		want   rhi.FormatSupport
	}{
		{
			name:   "rgba8",
			format: rhi.FormatRGBA8Unorm,
			want: rhi.FormatSupportBuffer |
				rhi.FormatSupportVertexBuffer |
				rhi.FormatSupportTexture |
				rhi.FormatSupportRenderTarget |
				rhi.FormatSupportBlendable |
				rhi.FormatSupportShaderLoad |
				rhi.FormatSupportShaderSample |
				rhi.FormatSupportShaderUavLoad |
				rhi.FormatSupportShaderUavStore,
		},
		{
			name:   "depth32",
			format: rhi.FormatD32,
			want: rhi.FormatSupportTexture |
				rhi.FormatSupportDepthStencil |
				rhi.FormatSupportShaderLoad,
		},
		{
			name:   "r32 uint with atomics",
			format: rhi.FormatR32Uint,
			want: rhi.FormatSupportBuffer |
				rhi.FormatSupportIndexBuffer |
				rhi.FormatSupportTexture |
				rhi.FormatSupportShaderLoad |
				rhi.FormatSupportShaderUavLoad |
				rhi.FormatSupportShaderUavStore |
				rhi.FormatSupportShaderAtomic,
		},
		{
			name:   "unsupported format",
			format: rhi.FormatBC7Unorm,
			want:   rhi.FormatSupportNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dev.QueryFormatSupport(tt.format); got != tt.want {
				t.Errorf("support = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestIndexBufferSupportIsExactlyTwoFormats(t *testing.T) {
	// Even with no native capabilities at all, the two index formats must
	// report index-buffer support and every other format must not.
	dev := formatDevice(t, &fakeDriver{})

	for f := rhi.Format(0); f < rhi.FormatCount; f++ {
		got := dev.QueryFormatSupport(f)&rhi.FormatSupportIndexBuffer != 0
		want := f == rhi.FormatR32Uint || f == rhi.FormatR16Uint
		if got != want {
			t.Errorf("format %d: index buffer support = %v, want %v", f, got, want)
		}
	}
}

func TestFormatTableHasNoDuplicateColorCodes(t *testing.T) {
	// The two depth+stencil aliases intentionally share native codes;
	// everything else must be unique.
	aliases := map[rhi.Format]bool{
		rhi.FormatX24G8Uint: true,
		rhi.FormatX32G8Uint: true,
	}
	seen := make(map[uint32]rhi.Format)
	for f := rhi.Format(1); f < rhi.FormatCount; f++ {
		code := formatToNative[f]
		if code == 0 || aliases[f] {
			continue
		}
		if prev, ok := seen[code]; ok {
			t.Errorf("formats %d and %d share native code %d", prev, f, code)
		}
		seen[code] = f
	}
}
