package vulkan

import (
	"github.com/glaciergfx/rhi"
)

// fakeDriver is a scriptable Driver for tests. Zero values behave like a
// device that succeeds at everything and supports nothing optional.
type fakeDriver struct {
	subgroup           SubgroupProperties
	accelStruct        AccelerationStructureProperties
	rayTracingPipeline RayTracingPipelineProperties
	shadingRate        FragmentShadingRateProperties
	conservativeRaster ConservativeRasterizationProperties
	opacityMicromap    OpacityMicromapProperties
	invocationReorder  InvocationReorderProperties
	clusterAccelStruct ClusterAccelerationStructureProperties
	coopVec            CooperativeVectorProperties

	shadingRateFeatures FragmentShadingRateFeatures
	coopVecFeatures     CooperativeVectorFeatures

	propertyErr   error
	requestedTags []PropertyTag

	formatProps map[uint32]FormatProperties

	memoryTypes []MemoryType

	allocResult Result
	allocations []MemoryAllocateInfo
	freed       []MemoryHandle
	nextMemory  MemoryHandle

	pipelineCacheResult Result
	layoutResult        Result

	debugNames map[uintptr]string

	memReqs          MemoryRequirements
	sparseReqs       []SparseImageMemoryRequirements
	sparseFormatInfo []SparseImageFormatProperties

	semaphoreResult Result
	nextSemaphore   SemaphoreHandle
	semaphoreValues map[SemaphoreHandle]uint64
	destroyedSems   []SemaphoreHandle

	submitResult Result
	submissions  []fakeSubmission

	waitIdleResult Result

	coopVecCombos []rhi.CoopVecMatMulFormatCombo
	matrixSizes   map[rhi.CoopVecMatrixLayout]uint64
}

type fakeSubmission struct {
	queue       QueueHandle
	buffers     []CommandBufferHandle
	signal      SemaphoreHandle
	signalValue uint64
}

func (f *fakeDriver) GetProperties(phys PhysicalDeviceHandle, queries []PropertyQuery) error {
	if f.propertyErr != nil {
		return f.propertyErr
	}
	for _, q := range queries {
		f.requestedTags = append(f.requestedTags, q.Tag)
		switch q.Tag {
		case PropertyTagSubgroup:
			*q.Subgroup = f.subgroup
		case PropertyTagAccelerationStructure:
			*q.AccelerationStructure = f.accelStruct
		case PropertyTagRayTracingPipeline:
			*q.RayTracingPipeline = f.rayTracingPipeline
		case PropertyTagFragmentShadingRate:
			*q.FragmentShadingRate = f.shadingRate
		case PropertyTagConservativeRasterization:
			*q.ConservativeRasterization = f.conservativeRaster
		case PropertyTagOpacityMicromap:
			*q.OpacityMicromap = f.opacityMicromap
		case PropertyTagInvocationReorder:
			*q.InvocationReorder = f.invocationReorder
		case PropertyTagClusterAccelerationStructure:
			*q.ClusterAccelerationStructure = f.clusterAccelStruct
		case PropertyTagCooperativeVector:
			*q.CooperativeVector = f.coopVec
		}
	}
	return nil
}

func (f *fakeDriver) GetFeatures(phys PhysicalDeviceHandle, query *FeatureQuery) error {
	if query.FragmentShadingRate != nil {
		*query.FragmentShadingRate = f.shadingRateFeatures
	}
	if query.CooperativeVector != nil {
		*query.CooperativeVector = f.coopVecFeatures
	}
	return nil
}

func (f *fakeDriver) GetFormatProperties(phys PhysicalDeviceHandle, nativeFormat uint32) FormatProperties {
	return f.formatProps[nativeFormat]
}

func (f *fakeDriver) GetMemoryProperties(phys PhysicalDeviceHandle) []MemoryType {
	return f.memoryTypes
}

func (f *fakeDriver) AllocateMemory(dev DeviceHandle, info MemoryAllocateInfo) (MemoryHandle, Result) {
	if f.allocResult != Success {
		return 0, f.allocResult
	}
	f.allocations = append(f.allocations, info)
	f.nextMemory++
	return f.nextMemory, Success
}

func (f *fakeDriver) FreeMemory(dev DeviceHandle, memory MemoryHandle) {
	f.freed = append(f.freed, memory)
}

func (f *fakeDriver) CreatePipelineCache(dev DeviceHandle) (PipelineCacheHandle, Result) {
	if f.pipelineCacheResult != Success {
		return 0, f.pipelineCacheResult
	}
	return 1, Success
}

func (f *fakeDriver) DestroyPipelineCache(dev DeviceHandle, cache PipelineCacheHandle) {}

func (f *fakeDriver) CreateEmptyDescriptorSetLayout(dev DeviceHandle) (DescriptorSetLayoutHandle, Result) {
	if f.layoutResult != Success {
		return 0, f.layoutResult
	}
	return 1, Success
}

func (f *fakeDriver) DestroyDescriptorSetLayout(dev DeviceHandle, layout DescriptorSetLayoutHandle) {}

func (f *fakeDriver) DestroyQueryPool(dev DeviceHandle, pool QueryPoolHandle) {}

func (f *fakeDriver) SetDebugName(dev DeviceHandle, objectType rhi.ObjectType, handle uintptr, name string) {
	if f.debugNames == nil {
		f.debugNames = make(map[uintptr]string)
	}
	f.debugNames[handle] = name
}

func (f *fakeDriver) GetImageMemoryRequirements(dev DeviceHandle, image ImageHandle) MemoryRequirements {
	return f.memReqs
}

func (f *fakeDriver) GetImageSparseMemoryRequirements(dev DeviceHandle, image ImageHandle) []SparseImageMemoryRequirements {
	return f.sparseReqs
}

func (f *fakeDriver) GetSparseImageFormatProperties(phys PhysicalDeviceHandle, query SparseImageFormatQuery) []SparseImageFormatProperties {
	return f.sparseFormatInfo
}

func (f *fakeDriver) CreateTimelineSemaphore(dev DeviceHandle, initialValue uint64) (SemaphoreHandle, Result) {
	if f.semaphoreResult != Success {
		return 0, f.semaphoreResult
	}
	f.nextSemaphore++
	if f.semaphoreValues == nil {
		f.semaphoreValues = make(map[SemaphoreHandle]uint64)
	}
	f.semaphoreValues[f.nextSemaphore] = initialValue
	return f.nextSemaphore, Success
}

func (f *fakeDriver) DestroySemaphore(dev DeviceHandle, sem SemaphoreHandle) {
	f.destroyedSems = append(f.destroyedSems, sem)
}

func (f *fakeDriver) GetSemaphoreCounterValue(dev DeviceHandle, sem SemaphoreHandle) (uint64, Result) {
	return f.semaphoreValues[sem], Success
}

func (f *fakeDriver) QueueSubmit(queue QueueHandle, buffers []CommandBufferHandle, signal SemaphoreHandle, signalValue uint64) Result {
	if f.submitResult != Success {
		return f.submitResult
	}
	f.submissions = append(f.submissions, fakeSubmission{
		queue:       queue,
		buffers:     append([]CommandBufferHandle(nil), buffers...),
		signal:      signal,
		signalValue: signalValue,
	})
	return Success
}

func (f *fakeDriver) DeviceWaitIdle(dev DeviceHandle) Result {
	return f.waitIdleResult
}

func (f *fakeDriver) GetCooperativeVectorProperties(phys PhysicalDeviceHandle) ([]rhi.CoopVecMatMulFormatCombo, Result) {
	return f.coopVecCombos, Success
}

func (f *fakeDriver) ConvertCoopVecMatrixSize(dev DeviceHandle, info CoopVecMatrixConvertInfo) (uint64, Result) {
	if size, ok := f.matrixSizes[info.DstLayout]; ok {
		return size, Success
	}
	return info.SrcSize, Success
}

// signalComplete marks the given timeline value reached on every semaphore
// the fake handed out.
func (f *fakeDriver) signalComplete(value uint64) {
	for sem := range f.semaphoreValues {
		if f.semaphoreValues[sem] < value {
			f.semaphoreValues[sem] = value
		}
	}
}

// messageCollector records diagnostics by severity.
type messageCollector struct {
	infos    []string
	warnings []string
	errors   []string
}

func (c *messageCollector) Message(severity rhi.MessageSeverity, text string) {
	switch severity {
	case rhi.SeverityInfo:
		c.infos = append(c.infos, text)
	case rhi.SeverityWarning:
		c.warnings = append(c.warnings, text)
	case rhi.SeverityError:
		c.errors = append(c.errors, text)
	}
}

// fakeCommandList is a minimal command list carrying one native buffer.
type fakeCommandList struct {
	buffer   CommandBufferHandle
	executed []uint64
	retired  []uint64
}

func (l *fakeCommandList) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if objectType != rhi.ObjectTypeVKCommandBuffer || l.buffer == 0 {
		return rhi.Object{}
	}
	return rhi.Object{Type: objectType, Handle: uintptr(l.buffer)}
}

func (l *fakeCommandList) Executed(queue rhi.CommandQueue, submissionID uint64) {
	l.executed = append(l.executed, submissionID)
}

func (l *fakeCommandList) Retired(submissionID uint64) {
	l.retired = append(l.retired, submissionID)
}

// testDeviceDesc returns a descriptor with plausible handles, a graphics
// queue, and the given driver and callback wired in.
func testDeviceDesc(driver Driver, callback rhi.MessageCallback) DeviceDesc {
	return DeviceDesc{
		Instance:        1,
		PhysicalDevice:  2,
		Device:          3,
		GraphicsQueue:   4,
		MaxTimerQueries: 8,
		MessageCallback: callback,
		Driver:          driver,
	}
}

func newTestDevice(driver Driver, callback rhi.MessageCallback, mutate func(*DeviceDesc)) (*Device, error) {
	desc := testDeviceDesc(driver, callback)
	if mutate != nil {
		mutate(&desc)
	}
	return CreateDevice(desc)
}
