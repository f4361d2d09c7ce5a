package vulkan

import "github.com/glaciergfx/rhi"

// formatToNative maps the abstract format vocabulary onto VkFormat codes.
// Formats with no Vulkan equivalent map to VK_FORMAT_UNDEFINED (0).
var formatToNative = [rhi.FormatCount]uint32{
	rhi.FormatUnknown: 0,

	rhi.FormatR8Uint:  13, // VK_FORMAT_R8_UINT
	rhi.FormatR8Sint:  14, // VK_FORMAT_R8_SINT
	rhi.FormatR8Unorm: 9,  // VK_FORMAT_R8_UNORM
	rhi.FormatR8Snorm: 10, // VK_FORMAT_R8_SNORM

	rhi.FormatRG8Uint:  20, // VK_FORMAT_R8G8_UINT
	rhi.FormatRG8Sint:  21, // VK_FORMAT_R8G8_SINT
	rhi.FormatRG8Unorm: 16, // VK_FORMAT_R8G8_UNORM
	rhi.FormatRG8Snorm: 17, // VK_FORMAT_R8G8_SNORM

	rhi.FormatR16Uint:  74, // VK_FORMAT_R16_UINT
	rhi.FormatR16Sint:  75, // VK_FORMAT_R16_SINT
	rhi.FormatR16Unorm: 70, // VK_FORMAT_R16_UNORM
	rhi.FormatR16Snorm: 71, // VK_FORMAT_R16_SNORM
	rhi.FormatR16Float: 76, // VK_FORMAT_R16_SFLOAT

	rhi.FormatBGRA4Unorm:    3, // VK_FORMAT_B4G4R4A4_UNORM_PACK16
	rhi.FormatB5G6R5Unorm:   5, // VK_FORMAT_B5G6R5_UNORM_PACK16
	rhi.FormatB5G5R5A1Unorm: 7, // VK_FORMAT_B5G5R5A1_UNORM_PACK16

	rhi.FormatRGBA8Uint:  41, // VK_FORMAT_R8G8B8A8_UINT
	rhi.FormatRGBA8Sint:  42, // VK_FORMAT_R8G8B8A8_SINT
	rhi.FormatRGBA8Unorm: 37, // VK_FORMAT_R8G8B8A8_UNORM
	rhi.FormatRGBA8Snorm: 38, // VK_FORMAT_R8G8B8A8_SNORM

	rhi.FormatBGRA8Unorm:  44, // VK_FORMAT_B8G8R8A8_UNORM
	rhi.FormatSRGBA8Unorm: 43, // VK_FORMAT_R8G8B8A8_SRGB
	rhi.FormatSBGRA8Unorm: 50, // VK_FORMAT_B8G8R8A8_SRGB

	rhi.FormatR10G10B10A2Unorm: 64,  // VK_FORMAT_A2B10G10R10_UNORM_PACK32
	rhi.FormatR11G11B10Float:   122, // VK_FORMAT_B10G11R11_UFLOAT_PACK32

	rhi.FormatRG16Uint:  81, // VK_FORMAT_R16G16_UINT
	rhi.FormatRG16Sint:  82, // VK_FORMAT_R16G16_SINT
	rhi.FormatRG16Unorm: 77, // VK_FORMAT_R16G16_UNORM
	rhi.FormatRG16Snorm: 78, // VK_FORMAT_R16G16_SNORM
	rhi.FormatRG16Float: 83, // VK_FORMAT_R16G16_SFLOAT

	rhi.FormatR32Uint:  98,  // VK_FORMAT_R32_UINT
	rhi.FormatR32Sint:  99,  // VK_FORMAT_R32_SINT
	rhi.FormatR32Float: 100, // VK_FORMAT_R32_SFLOAT

	rhi.FormatRGBA16Uint:  95, // VK_FORMAT_R16G16B16A16_UINT
	rhi.FormatRGBA16Sint:  96, // VK_FORMAT_R16G16B16A16_SINT
	rhi.FormatRGBA16Float: 97, // VK_FORMAT_R16G16B16A16_SFLOAT
	rhi.FormatRGBA16Unorm: 91, // VK_FORMAT_R16G16B16A16_UNORM
	rhi.FormatRGBA16Snorm: 92, // VK_FORMAT_R16G16B16A16_SNORM

	rhi.FormatRG32Uint:  101, // VK_FORMAT_R32G32_UINT
	rhi.FormatRG32Sint:  102, // VK_FORMAT_R32G32_SINT
	rhi.FormatRG32Float: 103, // VK_FORMAT_R32G32_SFLOAT

	rhi.FormatRGB32Uint:  104, // VK_FORMAT_R32G32B32_UINT
	rhi.FormatRGB32Sint:  105, // VK_FORMAT_R32G32B32_SINT
	rhi.FormatRGB32Float: 106, // VK_FORMAT_R32G32B32_SFLOAT

	rhi.FormatRGBA32Uint:  107, // VK_FORMAT_R32G32B32A32_UINT
	rhi.FormatRGBA32Sint:  108, // VK_FORMAT_R32G32B32A32_SINT
	rhi.FormatRGBA32Float: 109, // VK_FORMAT_R32G32B32A32_SFLOAT

	rhi.FormatD16:       124, // VK_FORMAT_D16_UNORM
	rhi.FormatD24S8:     129, // VK_FORMAT_D24_UNORM_S8_UINT
	rhi.FormatX24G8Uint: 129, // VK_FORMAT_D24_UNORM_S8_UINT
	rhi.FormatD32:       126, // VK_FORMAT_D32_SFLOAT
	rhi.FormatD32S8:     130, // VK_FORMAT_D32_SFLOAT_S8_UINT
	rhi.FormatX32G8Uint: 130, // VK_FORMAT_D32_SFLOAT_S8_UINT

	rhi.FormatBC1Unorm:     133, // VK_FORMAT_BC1_RGBA_UNORM_BLOCK
	rhi.FormatBC1UnormSRGB: 134, // VK_FORMAT_BC1_RGBA_SRGB_BLOCK
	rhi.FormatBC2Unorm:     135, // VK_FORMAT_BC2_UNORM_BLOCK
	rhi.FormatBC2UnormSRGB: 136, // VK_FORMAT_BC2_SRGB_BLOCK
	rhi.FormatBC3Unorm:     137, // VK_FORMAT_BC3_UNORM_BLOCK
	rhi.FormatBC3UnormSRGB: 138, // VK_FORMAT_BC3_SRGB_BLOCK
	rhi.FormatBC4Unorm:     139, // VK_FORMAT_BC4_UNORM_BLOCK
	rhi.FormatBC4Snorm:     140, // VK_FORMAT_BC4_SNORM_BLOCK
	rhi.FormatBC5Unorm:     141, // VK_FORMAT_BC5_UNORM_BLOCK
	rhi.FormatBC5Snorm:     142, // VK_FORMAT_BC5_SNORM_BLOCK
	rhi.FormatBC6HUFloat:   143, // VK_FORMAT_BC6H_UFLOAT_BLOCK
	rhi.FormatBC6HSFloat:   144, // VK_FORMAT_BC6H_SFLOAT_BLOCK
	rhi.FormatBC7Unorm:     145, // VK_FORMAT_BC7_UNORM_BLOCK
	rhi.FormatBC7UnormSRGB: 146, // VK_FORMAT_BC7_SRGB_BLOCK
}

// convertFormat returns the VkFormat code for an abstract format.
func convertFormat(format rhi.Format) uint32 {
	if format >= rhi.FormatCount {
		return 0
	}
	return formatToNative[format]
}

// QueryFormatSupport queries the native per-format capability flags once
// and classifies them into the abstract usage categories. Several
// categories combine two independent native flag sources: a format is
// shader-loadable if it works as a sampled image or as a uniform texel
// buffer, and similarly for storage and atomic access.
func (d *Device) QueryFormatSupport(format rhi.Format) rhi.FormatSupport {
	props := d.driver.GetFormatProperties(d.physicalDevice, convertFormat(format))

	result := rhi.FormatSupportNone

	if props.BufferFeatures != 0 {
		result |= rhi.FormatSupportBuffer
	}

	// Vulkan exposes no feature bit for index-buffer usability; the two
	// integer formats index buffers can use are reported unconditionally.
	if format == rhi.FormatR32Uint || format == rhi.FormatR16Uint {
		result |= rhi.FormatSupportIndexBuffer
	}

	if props.BufferFeatures&FormatFeatureVertexBuffer != 0 {
		result |= rhi.FormatSupportVertexBuffer
	}

	if props.OptimalTilingFeatures != 0 {
		result |= rhi.FormatSupportTexture
	}
	if props.OptimalTilingFeatures&FormatFeatureDepthStencilAttachment != 0 {
		result |= rhi.FormatSupportDepthStencil
	}
	if props.OptimalTilingFeatures&FormatFeatureColorAttachment != 0 {
		result |= rhi.FormatSupportRenderTarget
	}
	if props.OptimalTilingFeatures&FormatFeatureColorAttachmentBlend != 0 {
		result |= rhi.FormatSupportBlendable
	}

	if props.OptimalTilingFeatures&FormatFeatureSampledImage != 0 ||
		props.BufferFeatures&FormatFeatureUniformTexelBuffer != 0 {
		result |= rhi.FormatSupportShaderLoad
	}

	if props.OptimalTilingFeatures&FormatFeatureSampledImageFilterLinear != 0 {
		result |= rhi.FormatSupportShaderSample
	}

	if props.OptimalTilingFeatures&FormatFeatureStorageImage != 0 ||
		props.BufferFeatures&FormatFeatureStorageTexelBuffer != 0 {
		result |= rhi.FormatSupportShaderUavLoad | rhi.FormatSupportShaderUavStore
	}

	if props.OptimalTilingFeatures&FormatFeatureStorageImageAtomic != 0 ||
		props.BufferFeatures&FormatFeatureStorageTexelBufferAtomic != 0 {
		result |= rhi.FormatSupportShaderAtomic
	}

	return result
}
