//go:build vulkan

package vulkan

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/glaciergfx/rhi"
)

// vkgoDriver dispatches through github.com/vulkan-go/vulkan. The binding
// targets Vulkan 1.1, so it cannot service the newer extension property
// blocks or timeline semaphores; those entry points report
// ErrorInitializationFailed and the device degrades accordingly.
// Applications that need full negotiation inject their own Driver.
type vkgoDriver struct {
	alloc *vk.AllocationCallbacks
}

// newDefaultDriver loads the platform Vulkan runtime through the binding's
// default loader. libraryName is accepted for descriptor compatibility but
// the loader picks the platform library itself.
func newDefaultDriver(libraryName string, allocCallbacks AllocationCallbacksHandle) (Driver, error) {
	_ = libraryName
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, errors.Wrap(err, "loading the Vulkan runtime")
	}
	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing the Vulkan dispatch table")
	}
	return &vkgoDriver{
		alloc: (*vk.AllocationCallbacks)(unsafe.Pointer(allocCallbacks)),
	}, nil
}

func vkPhys(h PhysicalDeviceHandle) vk.PhysicalDevice {
	return vk.PhysicalDevice(unsafe.Pointer(h))
}

func vkDev(h DeviceHandle) vk.Device {
	return vk.Device(unsafe.Pointer(h))
}

func vkQueue(h QueueHandle) vk.Queue {
	return vk.Queue(unsafe.Pointer(h))
}

func (d *vkgoDriver) GetProperties(phys PhysicalDeviceHandle, queries []PropertyQuery) error {
	for _, q := range queries {
		switch q.Tag {
		case PropertyTagSubgroup:
			var subgroup vk.PhysicalDeviceSubgroupProperties
			subgroup.SType = vk.StructureTypePhysicalDeviceSubgroupProperties
			var props vk.PhysicalDeviceProperties2
			props.SType = vk.StructureTypePhysicalDeviceProperties2
			props.PNext = unsafe.Pointer(subgroup.Ref())
			vk.GetPhysicalDeviceProperties2(vkPhys(phys), &props)
			subgroup.Deref()
			q.Subgroup.SubgroupSize = subgroup.SubgroupSize
			q.Subgroup.SupportedStages = uint32(subgroup.SupportedStages)
			q.Subgroup.SupportedOperations = uint32(subgroup.SupportedOperations)
		default:
			// The 1.1 binding has no structures for the extension blocks;
			// they keep their zero values.
		}
	}
	return nil
}

func (d *vkgoDriver) GetFeatures(phys PhysicalDeviceHandle, query *FeatureQuery) error {
	// Not representable in the 1.1 binding; the requested block stays zeroed.
	return nil
}

func (d *vkgoDriver) GetFormatProperties(phys PhysicalDeviceHandle, nativeFormat uint32) FormatProperties {
	var props vk.FormatProperties
	vk.GetPhysicalDeviceFormatProperties(vkPhys(phys), vk.Format(nativeFormat), &props)
	props.Deref()
	return FormatProperties{
		LinearTilingFeatures:  FormatFeatureFlags(props.LinearTilingFeatures),
		OptimalTilingFeatures: FormatFeatureFlags(props.OptimalTilingFeatures),
		BufferFeatures:        FormatFeatureFlags(props.BufferFeatures),
	}
}

func (d *vkgoDriver) GetMemoryProperties(phys PhysicalDeviceHandle) []MemoryType {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(vkPhys(phys), &props)
	props.Deref()

	types := make([]MemoryType, 0, props.MemoryTypeCount)
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		mt := props.MemoryTypes[i]
		mt.Deref()
		types = append(types, MemoryType{
			PropertyFlags: MemoryPropertyFlags(mt.PropertyFlags),
			HeapIndex:     mt.HeapIndex,
		})
	}
	return types
}

func (d *vkgoDriver) AllocateMemory(dev DeviceHandle, info MemoryAllocateInfo) (MemoryHandle, Result) {
	// MemoryAllocateFlagsInfo with the device-address bit is a 1.2 addition
	// the binding lacks; EnableDeviceAddress cannot be honored here.
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(info.AllocationSize),
		MemoryTypeIndex: info.MemoryTypeIndex,
	}
	var memory vk.DeviceMemory
	res := vk.AllocateMemory(vkDev(dev), &allocInfo, d.alloc, &memory)
	return MemoryHandle(unsafe.Pointer(memory)), Result(res)
}

func (d *vkgoDriver) FreeMemory(dev DeviceHandle, memory MemoryHandle) {
	vk.FreeMemory(vkDev(dev), vk.DeviceMemory(unsafe.Pointer(memory)), d.alloc)
}

func (d *vkgoDriver) CreatePipelineCache(dev DeviceHandle) (PipelineCacheHandle, Result) {
	info := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}
	var cache vk.PipelineCache
	res := vk.CreatePipelineCache(vkDev(dev), &info, d.alloc, &cache)
	return PipelineCacheHandle(unsafe.Pointer(cache)), Result(res)
}

func (d *vkgoDriver) DestroyPipelineCache(dev DeviceHandle, cache PipelineCacheHandle) {
	vk.DestroyPipelineCache(vkDev(dev), vk.PipelineCache(unsafe.Pointer(cache)), d.alloc)
}

func (d *vkgoDriver) CreateEmptyDescriptorSetLayout(dev DeviceHandle) (DescriptorSetLayoutHandle, Result) {
	info := vk.DescriptorSetLayoutCreateInfo{
		SType: vk.StructureTypeDescriptorSetLayoutCreateInfo,
	}
	var layout vk.DescriptorSetLayout
	res := vk.CreateDescriptorSetLayout(vkDev(dev), &info, d.alloc, &layout)
	return DescriptorSetLayoutHandle(unsafe.Pointer(layout)), Result(res)
}

func (d *vkgoDriver) DestroyDescriptorSetLayout(dev DeviceHandle, layout DescriptorSetLayoutHandle) {
	vk.DestroyDescriptorSetLayout(vkDev(dev), vk.DescriptorSetLayout(unsafe.Pointer(layout)), d.alloc)
}

func (d *vkgoDriver) DestroyQueryPool(dev DeviceHandle, pool QueryPoolHandle) {
	vk.DestroyQueryPool(vkDev(dev), vk.QueryPool(unsafe.Pointer(pool)), d.alloc)
}

func (d *vkgoDriver) SetDebugName(dev DeviceHandle, objectType rhi.ObjectType, handle uintptr, name string) {
	// Debug-utils naming needs an instance-level extension loader this
	// binding does not expose uniformly.
}

func (d *vkgoDriver) GetImageMemoryRequirements(dev DeviceHandle, image ImageHandle) MemoryRequirements {
	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(vkDev(dev), vk.Image(unsafe.Pointer(image)), &reqs)
	reqs.Deref()
	return MemoryRequirements{
		Size:           uint64(reqs.Size),
		Alignment:      uint64(reqs.Alignment),
		MemoryTypeBits: reqs.MemoryTypeBits,
	}
}

func (d *vkgoDriver) GetImageSparseMemoryRequirements(dev DeviceHandle, image ImageHandle) []SparseImageMemoryRequirements {
	img := vk.Image(unsafe.Pointer(image))
	var count uint32
	vk.GetImageSparseMemoryRequirements(vkDev(dev), img, &count, nil)
	if count == 0 {
		return nil
	}
	native := make([]vk.SparseImageMemoryRequirements, count)
	vk.GetImageSparseMemoryRequirements(vkDev(dev), img, &count, native)

	out := make([]SparseImageMemoryRequirements, count)
	for i := range native {
		native[i].Deref()
		native[i].FormatProperties.Deref()
		native[i].FormatProperties.ImageGranularity.Deref()
		out[i] = SparseImageMemoryRequirements{
			FormatProperties: SparseImageFormatProperties{
				AspectMask: uint32(native[i].FormatProperties.AspectMask),
				ImageGranularity: Extent3D{
					Width:  native[i].FormatProperties.ImageGranularity.Width,
					Height: native[i].FormatProperties.ImageGranularity.Height,
					Depth:  native[i].FormatProperties.ImageGranularity.Depth,
				},
				Flags: uint32(native[i].FormatProperties.Flags),
			},
			ImageMipTailFirstLod: native[i].ImageMipTailFirstLod,
			ImageMipTailSize:     uint64(native[i].ImageMipTailSize),
			ImageMipTailOffset:   uint64(native[i].ImageMipTailOffset),
			ImageMipTailStride:   uint64(native[i].ImageMipTailStride),
		}
	}
	return out
}

func (d *vkgoDriver) GetSparseImageFormatProperties(phys PhysicalDeviceHandle, query SparseImageFormatQuery) []SparseImageFormatProperties {
	var count uint32
	vk.GetPhysicalDeviceSparseImageFormatProperties(vkPhys(phys),
		vk.Format(query.Format), vk.ImageType(query.ImageType),
		vk.SampleCountFlagBits(query.Samples), vk.ImageUsageFlags(query.Usage),
		vk.ImageTiling(query.Tiling), &count, nil)
	if count == 0 {
		return nil
	}
	native := make([]vk.SparseImageFormatProperties, count)
	vk.GetPhysicalDeviceSparseImageFormatProperties(vkPhys(phys),
		vk.Format(query.Format), vk.ImageType(query.ImageType),
		vk.SampleCountFlagBits(query.Samples), vk.ImageUsageFlags(query.Usage),
		vk.ImageTiling(query.Tiling), &count, native)

	out := make([]SparseImageFormatProperties, count)
	for i := range native {
		native[i].Deref()
		native[i].ImageGranularity.Deref()
		out[i] = SparseImageFormatProperties{
			AspectMask: uint32(native[i].AspectMask),
			ImageGranularity: Extent3D{
				Width:  native[i].ImageGranularity.Width,
				Height: native[i].ImageGranularity.Height,
				Depth:  native[i].ImageGranularity.Depth,
			},
			Flags: uint32(native[i].Flags),
		}
	}
	return out
}

func (d *vkgoDriver) CreateTimelineSemaphore(dev DeviceHandle, initialValue uint64) (SemaphoreHandle, Result) {
	// Timeline semaphores are a 1.2 feature the binding lacks. Submission
	// IDs still advance; retirement tracking is unavailable.
	return 0, ErrorInitializationFailed
}

func (d *vkgoDriver) DestroySemaphore(dev DeviceHandle, sem SemaphoreHandle) {
	vk.DestroySemaphore(vkDev(dev), vk.Semaphore(unsafe.Pointer(sem)), d.alloc)
}

func (d *vkgoDriver) GetSemaphoreCounterValue(dev DeviceHandle, sem SemaphoreHandle) (uint64, Result) {
	return 0, ErrorInitializationFailed
}

func (d *vkgoDriver) QueueSubmit(queue QueueHandle, buffers []CommandBufferHandle, signal SemaphoreHandle, signalValue uint64) Result {
	cmdBufs := make([]vk.CommandBuffer, len(buffers))
	for i, b := range buffers {
		cmdBufs[i] = vk.CommandBuffer(unsafe.Pointer(b))
	}
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(cmdBufs)),
		PCommandBuffers:    cmdBufs,
	}
	return Result(vk.QueueSubmit(vkQueue(queue), 1, []vk.SubmitInfo{info}, vk.NullFence))
}

func (d *vkgoDriver) DeviceWaitIdle(dev DeviceHandle) Result {
	return Result(vk.DeviceWaitIdle(vkDev(dev)))
}

func (d *vkgoDriver) GetCooperativeVectorProperties(phys PhysicalDeviceHandle) ([]rhi.CoopVecMatMulFormatCombo, Result) {
	return nil, ErrorInitializationFailed
}

func (d *vkgoDriver) ConvertCoopVecMatrixSize(dev DeviceHandle, info CoopVecMatrixConvertInfo) (uint64, Result) {
	return 0, ErrorInitializationFailed
}
