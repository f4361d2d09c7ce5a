package rhi

// Format is the abstract pixel/vertex format vocabulary. Backends map each
// value onto their native format enumeration.
type Format uint8

const (
	FormatUnknown Format = iota

	FormatR8Uint
	FormatR8Sint
	FormatR8Unorm
	FormatR8Snorm
	FormatRG8Uint
	FormatRG8Sint
	FormatRG8Unorm
	FormatRG8Snorm
	FormatR16Uint
	FormatR16Sint
	FormatR16Unorm
	FormatR16Snorm
	FormatR16Float
	FormatBGRA4Unorm
	FormatB5G6R5Unorm
	FormatB5G5R5A1Unorm
	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatRGBA8Unorm
	FormatRGBA8Snorm
	FormatBGRA8Unorm
	FormatSRGBA8Unorm
	FormatSBGRA8Unorm
	FormatR10G10B10A2Unorm
	FormatR11G11B10Float
	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Unorm
	FormatRG16Snorm
	FormatRG16Float
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Float
	FormatRGBA16Unorm
	FormatRGBA16Snorm
	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Float
	FormatRGB32Uint
	FormatRGB32Sint
	FormatRGB32Float
	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Float

	FormatD16
	FormatD24S8
	FormatX24G8Uint
	FormatD32
	FormatD32S8
	FormatX32G8Uint

	FormatBC1Unorm
	FormatBC1UnormSRGB
	FormatBC2Unorm
	FormatBC2UnormSRGB
	FormatBC3Unorm
	FormatBC3UnormSRGB
	FormatBC4Unorm
	FormatBC4Snorm
	FormatBC5Unorm
	FormatBC5Snorm
	FormatBC6HUFloat
	FormatBC6HSFloat
	FormatBC7Unorm
	FormatBC7UnormSRGB

	FormatCount
)

// FormatSupport is a bitmask of the ways a format can be used on a
// particular device.
type FormatSupport uint32

const (
	FormatSupportBuffer FormatSupport = 1 << iota
	FormatSupportIndexBuffer
	FormatSupportVertexBuffer

	FormatSupportTexture
	FormatSupportDepthStencil
	FormatSupportRenderTarget
	FormatSupportBlendable

	FormatSupportShaderLoad
	FormatSupportShaderSample
	FormatSupportShaderUavLoad
	FormatSupportShaderUavStore
	FormatSupportShaderAtomic

	FormatSupportNone FormatSupport = 0
)
