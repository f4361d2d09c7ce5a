// Package vulkan implements the capability-negotiation and resource-heap
// layer of the RHI on top of a Vulkan driver. The device adopts native
// handles created by the embedding application, negotiates which optional
// extensions are usable, caches the hardware properties those extensions
// expose, and provides heap allocation, format classification, sparse
// tiling queries, and command-queue submission bookkeeping.
package vulkan

import "github.com/glaciergfx/rhi"

// Native handle types. Vulkan dispatchable handles are pointers and
// non-dispatchable handles are 64-bit values; uintptr covers both on the
// platforms this package targets.
type (
	InstanceHandle            uintptr
	PhysicalDeviceHandle      uintptr
	DeviceHandle              uintptr
	QueueHandle               uintptr
	MemoryHandle              uintptr
	ImageHandle               uintptr
	CommandBufferHandle       uintptr
	SemaphoreHandle           uintptr
	PipelineCacheHandle       uintptr
	DescriptorSetLayoutHandle uintptr
	QueryPoolHandle           uintptr
	AllocationCallbacksHandle uintptr
)

// Result mirrors VkResult for the codes this layer inspects.
type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorTooManyObjects       Result = -10
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED"
	case ErrorTooManyObjects:
		return "VK_ERROR_TOO_MANY_OBJECTS"
	}
	return "VK_ERROR_UNKNOWN"
}

// Extent2D and Extent3D are texel extents.
type Extent2D struct {
	Width  uint32
	Height uint32
}

type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// SubgroupProperties is the core Vulkan 1.1 subgroup (wave) block, always
// queried.
type SubgroupProperties struct {
	SubgroupSize        uint32
	SupportedStages     uint32
	SupportedOperations uint32
}

// AccelerationStructureProperties mirrors the KHR_acceleration_structure
// property block.
type AccelerationStructureProperties struct {
	MaxGeometryCount                               uint64
	MaxInstanceCount                               uint64
	MaxPrimitiveCount                              uint64
	MaxPerStageDescriptorAccelerationStructures    uint32
	MinAccelerationStructureScratchOffsetAlignment uint32
}

// RayTracingPipelineProperties mirrors the KHR_ray_tracing_pipeline
// property block.
type RayTracingPipelineProperties struct {
	ShaderGroupHandleSize         uint32
	MaxRayRecursionDepth          uint32
	MaxShaderGroupStride          uint32
	ShaderGroupBaseAlignment      uint32
	MaxRayDispatchInvocationCount uint32
	ShaderGroupHandleAlignment    uint32
	MaxRayHitAttributeSize        uint32
}

// FragmentShadingRateProperties mirrors the KHR_fragment_shading_rate
// property block.
type FragmentShadingRateProperties struct {
	MinFragmentShadingRateAttachmentTexelSize Extent2D
	MaxFragmentShadingRateAttachmentTexelSize Extent2D
	MaxFragmentSize                           Extent2D
}

// ConservativeRasterizationProperties mirrors the
// EXT_conservative_rasterization property block.
type ConservativeRasterizationProperties struct {
	PrimitiveOverestimationSize                 float32
	MaxExtraPrimitiveOverestimationSize         float32
	ExtraPrimitiveOverestimationSizeGranularity float32
	PrimitiveUnderestimation                    bool
}

// OpacityMicromapProperties mirrors the EXT_opacity_micromap property block.
type OpacityMicromapProperties struct {
	MaxOpacity2StateSubdivisionLevel uint32
	MaxOpacity4StateSubdivisionLevel uint32
}

// ReorderingHint is the hardware's declared benefit from shader invocation
// reordering.
type ReorderingHint int32

const (
	ReorderingHintNone    ReorderingHint = 0
	ReorderingHintReorder ReorderingHint = 1
)

// InvocationReorderProperties mirrors the
// NV_ray_tracing_invocation_reorder property block.
type InvocationReorderProperties struct {
	ReorderingHint ReorderingHint
}

// ClusterAccelerationStructureProperties mirrors the
// NV_cluster_acceleration_structure property block.
type ClusterAccelerationStructureProperties struct {
	MaxVerticesPerCluster       uint32
	MaxTrianglesPerCluster      uint32
	ClusterScratchByteAlignment uint32
}

// CooperativeVectorProperties mirrors the NV_cooperative_vector property
// block.
type CooperativeVectorProperties struct {
	SupportedStages             uint32
	TrainingFloat16Accumulation bool
	TrainingFloat32Accumulation bool
	MaxComponentCount           uint32
}

// PropertyTag identifies one property block kind in a batched query.
type PropertyTag int

const (
	PropertyTagSubgroup PropertyTag = iota
	PropertyTagAccelerationStructure
	PropertyTagRayTracingPipeline
	PropertyTagFragmentShadingRate
	PropertyTagConservativeRasterization
	PropertyTagOpacityMicromap
	PropertyTagInvocationReorder
	PropertyTagClusterAccelerationStructure
	PropertyTagCooperativeVector
)

// PropertyQuery is one tagged request in a batched device-property query.
// Exactly one output pointer is non-nil, matching Tag; the driver fills it.
type PropertyQuery struct {
	Tag PropertyTag

	Subgroup                     *SubgroupProperties
	AccelerationStructure        *AccelerationStructureProperties
	RayTracingPipeline           *RayTracingPipelineProperties
	FragmentShadingRate          *FragmentShadingRateProperties
	ConservativeRasterization    *ConservativeRasterizationProperties
	OpacityMicromap              *OpacityMicromapProperties
	InvocationReorder            *InvocationReorderProperties
	ClusterAccelerationStructure *ClusterAccelerationStructureProperties
	CooperativeVector            *CooperativeVectorProperties
}

// FragmentShadingRateFeatures is the boolean feature block of
// KHR_fragment_shading_rate.
type FragmentShadingRateFeatures struct {
	PipelineFragmentShadingRate   bool
	PrimitiveFragmentShadingRate  bool
	AttachmentFragmentShadingRate bool
}

// CooperativeVectorFeatures is the boolean feature block of
// NV_cooperative_vector.
type CooperativeVectorFeatures struct {
	CooperativeVector         bool
	CooperativeVectorTraining bool
}

// FeatureQuery requests one extension's boolean feature block. Exactly one
// output pointer is non-nil.
type FeatureQuery struct {
	FragmentShadingRate *FragmentShadingRateFeatures
	CooperativeVector   *CooperativeVectorFeatures
}

// FormatFeatureFlags mirrors VkFormatFeatureFlagBits.
type FormatFeatureFlags uint32

const (
	FormatFeatureSampledImage             FormatFeatureFlags = 1 << 0
	FormatFeatureStorageImage             FormatFeatureFlags = 1 << 1
	FormatFeatureStorageImageAtomic       FormatFeatureFlags = 1 << 2
	FormatFeatureUniformTexelBuffer       FormatFeatureFlags = 1 << 3
	FormatFeatureStorageTexelBuffer       FormatFeatureFlags = 1 << 4
	FormatFeatureStorageTexelBufferAtomic FormatFeatureFlags = 1 << 5
	FormatFeatureVertexBuffer             FormatFeatureFlags = 1 << 6
	FormatFeatureColorAttachment          FormatFeatureFlags = 1 << 7
	FormatFeatureColorAttachmentBlend     FormatFeatureFlags = 1 << 8
	FormatFeatureDepthStencilAttachment   FormatFeatureFlags = 1 << 9
	FormatFeatureBlitSrc                  FormatFeatureFlags = 1 << 10
	FormatFeatureBlitDst                  FormatFeatureFlags = 1 << 11
	FormatFeatureSampledImageFilterLinear FormatFeatureFlags = 1 << 12
)

// FormatProperties are the per-format capability flags reported by the
// physical device.
type FormatProperties struct {
	LinearTilingFeatures  FormatFeatureFlags
	OptimalTilingFeatures FormatFeatureFlags
	BufferFeatures        FormatFeatureFlags
}

// MemoryPropertyFlags mirrors VkMemoryPropertyFlagBits.
type MemoryPropertyFlags uint32

const (
	MemoryPropertyDeviceLocal  MemoryPropertyFlags = 1 << 0
	MemoryPropertyHostVisible  MemoryPropertyFlags = 1 << 1
	MemoryPropertyHostCoherent MemoryPropertyFlags = 1 << 2
	MemoryPropertyHostCached   MemoryPropertyFlags = 1 << 3
)

// MemoryType is one entry of the physical device's memory-type table.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryRequirements describes an allocation request or an image's memory
// footprint.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// MemoryAllocateInfo parameterizes one device-memory allocation.
type MemoryAllocateInfo struct {
	AllocationSize  uint64
	MemoryTypeIndex uint32

	// EnableDeviceAddress requests VK_MEMORY_ALLOCATE_DEVICE_ADDRESS_BIT so
	// the memory can back acceleration-structure storage.
	EnableDeviceAddress bool
}

// SparseImageFormatProperties describes sparse tiling for one image aspect.
type SparseImageFormatProperties struct {
	AspectMask       uint32
	ImageGranularity Extent3D
	Flags            uint32
}

// SparseImageMemoryRequirements describes the sparse layout of an image,
// including its packed mip tail.
type SparseImageMemoryRequirements struct {
	FormatProperties     SparseImageFormatProperties
	ImageMipTailFirstLod uint32
	ImageMipTailSize     uint64
	ImageMipTailOffset   uint64
	ImageMipTailStride   uint64
}

// SparseImageFormatQuery carries the image creation parameters a sparse
// format-properties query keys on. The numeric fields hold native enum
// values recorded at image creation.
type SparseImageFormatQuery struct {
	Format    uint32
	ImageType uint32
	Samples   uint32
	Usage     uint32
	Tiling    uint32
}

// CoopVecMatrixConvertInfo sizes a cooperative-vector matrix conversion
// without supplying data.
type CoopVecMatrixConvertInfo struct {
	SrcSize          uint64
	SrcComponentType rhi.CoopVecDataType
	DstComponentType rhi.CoopVecDataType
	NumRows          int
	NumColumns       int
	SrcLayout        rhi.CoopVecMatrixLayout
	DstLayout        rhi.CoopVecMatrixLayout
	SrcStride        uint64
	DstStride        uint64
}

// Driver is the narrow surface this layer needs from a Vulkan loader. The
// built-in implementation (build tag "vulkan") dispatches through
// github.com/vulkan-go/vulkan; applications with their own loader can
// inject a Driver through DeviceDesc, and tests inject fakes.
//
// All methods are expected to be safe for the single-threaded use this
// layer makes of them; the Driver itself adds no synchronization.
type Driver interface {
	// GetProperties issues one batched device-property query for exactly
	// the requested tagged blocks and copies each result out by tag.
	GetProperties(phys PhysicalDeviceHandle, queries []PropertyQuery) error

	// GetFeatures issues one boolean-feature query for the single block
	// requested by query.
	GetFeatures(phys PhysicalDeviceHandle, query *FeatureQuery) error

	GetFormatProperties(phys PhysicalDeviceHandle, nativeFormat uint32) FormatProperties
	GetMemoryProperties(phys PhysicalDeviceHandle) []MemoryType

	AllocateMemory(dev DeviceHandle, info MemoryAllocateInfo) (MemoryHandle, Result)
	FreeMemory(dev DeviceHandle, memory MemoryHandle)

	CreatePipelineCache(dev DeviceHandle) (PipelineCacheHandle, Result)
	DestroyPipelineCache(dev DeviceHandle, cache PipelineCacheHandle)
	CreateEmptyDescriptorSetLayout(dev DeviceHandle) (DescriptorSetLayoutHandle, Result)
	DestroyDescriptorSetLayout(dev DeviceHandle, layout DescriptorSetLayoutHandle)
	DestroyQueryPool(dev DeviceHandle, pool QueryPoolHandle)

	// SetDebugName attaches a name to a native object when a debug
	// extension is enabled; otherwise it is a no-op.
	SetDebugName(dev DeviceHandle, objectType rhi.ObjectType, handle uintptr, name string)

	GetImageMemoryRequirements(dev DeviceHandle, image ImageHandle) MemoryRequirements
	GetImageSparseMemoryRequirements(dev DeviceHandle, image ImageHandle) []SparseImageMemoryRequirements
	GetSparseImageFormatProperties(phys PhysicalDeviceHandle, query SparseImageFormatQuery) []SparseImageFormatProperties

	CreateTimelineSemaphore(dev DeviceHandle, initialValue uint64) (SemaphoreHandle, Result)
	DestroySemaphore(dev DeviceHandle, sem SemaphoreHandle)
	GetSemaphoreCounterValue(dev DeviceHandle, sem SemaphoreHandle) (uint64, Result)

	QueueSubmit(queue QueueHandle, buffers []CommandBufferHandle, signal SemaphoreHandle, signalValue uint64) Result
	DeviceWaitIdle(dev DeviceHandle) Result

	GetCooperativeVectorProperties(phys PhysicalDeviceHandle) ([]rhi.CoopVecMatMulFormatCombo, Result)
	ConvertCoopVecMatrixSize(dev DeviceHandle, info CoopVecMatrixConvertInfo) (uint64, Result)
}
