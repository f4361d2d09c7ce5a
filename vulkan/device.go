package vulkan

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"

	"github.com/glaciergfx/rhi"
)

// DeviceDesc parameterizes CreateDevice. The embedding application creates
// the Vulkan instance, physical device, logical device, and queues itself
// and hands the raw handles over; the device only adopts them.
type DeviceDesc struct {
	Instance       InstanceHandle
	PhysicalDevice PhysicalDeviceHandle
	Device         DeviceHandle

	GraphicsQueue      QueueHandle
	GraphicsQueueIndex int
	ComputeQueue       QueueHandle
	ComputeQueueIndex  int
	TransferQueue      QueueHandle
	TransferQueueIndex int

	// Extension names the application enabled at instance and device
	// creation. Only names from the known vocabulary have an effect.
	InstanceExtensions []string
	DeviceExtensions   []string

	MaxTimerQueries int

	// BufferDeviceAddressSupported covers enabling bufferDeviceAddress
	// through the core Vulkan 1.2 feature rather than the extension string.
	BufferDeviceAddressSupported bool

	MessageCallback   rhi.MessageCallback
	LogBufferLifetime bool

	// AllocationCallbacks optionally points at a VkAllocationCallbacks
	// structure passed through to every native allocation.
	AllocationCallbacks AllocationCallbacksHandle

	// VulkanLibraryName overrides the runtime library the built-in driver
	// resolves symbols from. Empty selects the platform default.
	VulkanLibraryName string

	// Driver overrides the native dispatch layer. Nil selects the built-in
	// vulkan-go backed driver (available under the "vulkan" build tag).
	Driver Driver
}

// Device negotiates capabilities at construction and serves capability,
// format, heap, and tiling queries against the immutable result. It assumes
// single-threaded use: callers invoking Submit or RunGarbageCollection
// concurrently on the same device must serialize externally.
type Device struct {
	instance       InstanceHandle
	physicalDevice PhysicalDeviceHandle
	device         DeviceHandle
	driver         Driver

	caps  capabilitySet
	props propertyCache

	queues    [rhi.CommandQueueCount]*Queue
	allocator *allocator

	pipelineCache  PipelineCacheHandle
	emptyLayout    DescriptorSetLayoutHandle
	timerQueryPool QueryPoolHandle
	timerQueries   *bitsetAllocator

	callback          rhi.MessageCallback
	logBufferLifetime bool
	instanceID        string
}

// CreateDevice adopts the native handles in desc, discovers which optional
// capabilities are usable, and runs the batched hardware query once. The
// returned device caches everything; later queries never touch the property
// paths again.
func CreateDevice(desc DeviceDesc) (*Device, error) {
	driver := desc.Driver
	if driver == nil {
		var err error
		driver, err = newDefaultDriver(desc.VulkanLibraryName, desc.AllocationCallbacks)
		if err != nil {
			return nil, errors.Wrap(err, "vulkan: no usable driver")
		}
	}
	if desc.Device == 0 || desc.PhysicalDevice == 0 {
		return nil, errors.New("vulkan: device and physical device handles are required")
	}

	d := &Device{
		instance:          desc.Instance,
		physicalDevice:    desc.PhysicalDevice,
		device:            desc.Device,
		driver:            driver,
		callback:          desc.MessageCallback,
		logBufferLifetime: desc.LogBufferLifetime,
		instanceID:        uuid.NewString(),
		timerQueries:      newBitsetAllocator(desc.MaxTimerQueries),
	}

	if desc.GraphicsQueue != 0 {
		d.queues[rhi.CommandQueueGraphics] = newQueue(d, rhi.CommandQueueGraphics, desc.GraphicsQueue, desc.GraphicsQueueIndex)
	}
	if desc.ComputeQueue != 0 {
		d.queues[rhi.CommandQueueCompute] = newQueue(d, rhi.CommandQueueCompute, desc.ComputeQueue, desc.ComputeQueueIndex)
	}
	if desc.TransferQueue != 0 {
		d.queues[rhi.CommandQueueCopy] = newQueue(d, rhi.CommandQueueCopy, desc.TransferQueue, desc.TransferQueueIndex)
	}

	d.caps = newCapabilitySet(desc.InstanceExtensions, desc.DeviceExtensions, desc.BufferDeviceAddressSupported)

	if err := d.props.queryProperties(driver, d.physicalDevice, &d.caps); err != nil {
		return nil, errors.Wrap(err, "vulkan: device property query failed")
	}

	if d.caps.has(extOpacityMicromap) && !d.caps.has(extSynchronization2) {
		d.warning("VK_EXT_opacity_micromap is used without VK_KHR_synchronization2, " +
			"which is necessary for OMM array state transitions; " +
			"ray tracing opacity micromap support will be disabled")
	}

	d.allocator = newAllocator(d)

	// Administrative objects. A failure here is reported but does not
	// abort construction; the device stays usable for everything that does
	// not need the failed object.
	var res Result
	if d.pipelineCache, res = driver.CreatePipelineCache(d.device); res != Success {
		d.error("failed to create the pipeline cache")
	}
	if d.emptyLayout, res = driver.CreateEmptyDescriptorSetLayout(d.device); res != Success {
		d.error("failed to create an empty descriptor set layout")
	}

	d.info(fmt.Sprintf("vulkan device %s ready, %d optional extensions enabled", d.instanceID, d.caps.count()))
	return d, nil
}

// Destroy releases the native objects the device owns. Queues, memory, and
// the handles supplied through the descriptor stay with the application.
func (d *Device) Destroy() {
	if d.timerQueryPool != 0 {
		d.driver.DestroyQueryPool(d.device, d.timerQueryPool)
		d.timerQueryPool = 0
	}
	if d.pipelineCache != 0 {
		d.driver.DestroyPipelineCache(d.device, d.pipelineCache)
		d.pipelineCache = 0
	}
	if d.emptyLayout != 0 {
		d.driver.DestroyDescriptorSetLayout(d.device, d.emptyLayout)
		d.emptyLayout = 0
	}
	for _, q := range d.queues {
		if q != nil {
			q.destroy()
		}
	}
}

// GraphicsAPI reports the native API behind this device.
func (d *Device) GraphicsAPI() rhi.GraphicsAPI {
	return rhi.GraphicsAPIVulkan
}

// NativeObject exposes the raw handles the device was constructed from.
func (d *Device) NativeObject(objectType rhi.ObjectType) rhi.Object {
	switch objectType {
	case rhi.ObjectTypeVKDevice:
		return rhi.Object{Type: objectType, Handle: uintptr(d.device)}
	case rhi.ObjectTypeVKPhysicalDevice:
		return rhi.Object{Type: objectType, Handle: uintptr(d.physicalDevice)}
	case rhi.ObjectTypeVKInstance:
		return rhi.Object{Type: objectType, Handle: uintptr(d.instance)}
	case rhi.ObjectTypeRHIDevice:
		return rhi.Object{Type: objectType, Ptr: d}
	default:
		return rhi.Object{}
	}
}

// NativeQueue returns the raw queue handle for the given kind, or a nil
// object when the slot is unpopulated or the type is not a Vulkan queue.
func (d *Device) NativeQueue(objectType rhi.ObjectType, queue rhi.CommandQueue) rhi.Object {
	if objectType != rhi.ObjectTypeVKQueue {
		return rhi.Object{}
	}
	if queue < 0 || queue >= rhi.CommandQueueCount || d.queues[queue] == nil {
		return rhi.Object{}
	}
	return rhi.Object{Type: objectType, Handle: uintptr(d.queues[queue].handle)}
}

// Queue returns the queue wrapper for the given kind, or nil.
func (d *Device) Queue(queue rhi.CommandQueue) *Queue {
	if queue < 0 || queue >= rhi.CommandQueueCount {
		return nil
	}
	return d.queues[queue]
}

// ExecuteCommandLists submits the given lists to the selected queue and
// returns the per-queue submission ID attached to them, or 0 when the queue
// is absent or the native submission failed.
func (d *Device) ExecuteCommandLists(lists []rhi.CommandList, queue rhi.CommandQueue) uint64 {
	q := d.Queue(queue)
	if q == nil {
		d.error(fmt.Sprintf("ExecuteCommandLists: no %s queue on this device", queue))
		return 0
	}

	submissionID := q.submit(lists)
	if submissionID == 0 {
		return 0
	}

	for _, list := range lists {
		list.Executed(queue, submissionID)
	}
	return submissionID
}

// RunGarbageCollection retires command buffers whose submissions have
// completed on every populated queue.
func (d *Device) RunGarbageCollection() {
	for _, q := range d.queues {
		if q != nil {
			q.retireCommandBuffers()
		}
	}
}

// slowIdleWait is the threshold above which WaitForIdle reports its
// duration on the diagnostic channel.
const slowIdleWait = 250 * time.Millisecond

// WaitForIdle blocks until all queued device work completes. It returns
// false only when the device was lost during the wait; other native
// failures are reported as diagnostics.
func (d *Device) WaitForIdle() bool {
	start := hrtime.Now()
	res := d.driver.DeviceWaitIdle(d.device)
	elapsed := hrtime.Since(start)

	if res == ErrorDeviceLost {
		d.error("device lost while waiting for idle")
		return false
	}
	if res != Success {
		d.error(fmt.Sprintf("vkDeviceWaitIdle failed: %s", res))
	}
	if elapsed > slowIdleWait {
		d.info(fmt.Sprintf("WaitForIdle blocked for %s", elapsed))
	}
	return true
}

// ReserveTimerQuery hands out a free timer-query slot, up to the
// MaxTimerQueries limit from the descriptor. It reports false when the pool
// is exhausted.
func (d *Device) ReserveTimerQuery() (int, bool) {
	return d.timerQueries.allocate()
}

// ReleaseTimerQuery returns a slot obtained from ReserveTimerQuery.
func (d *Device) ReleaseTimerQuery(index int) {
	d.timerQueries.release(index)
}

func (d *Device) message(severity rhi.MessageSeverity, text string) {
	if d.callback != nil {
		d.callback.Message(severity, text)
	}
}

func (d *Device) info(text string)    { d.message(rhi.SeverityInfo, text) }
func (d *Device) warning(text string) { d.message(rhi.SeverityWarning, text) }
func (d *Device) error(text string)   { d.message(rhi.SeverityError, text) }

func (s *capabilitySet) count() int {
	n := 0
	for _, on := range s.enabled {
		if on {
			n++
		}
	}
	return n
}
