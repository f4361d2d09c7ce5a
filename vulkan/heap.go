package vulkan

import (
	"fmt"

	"github.com/glaciergfx/rhi"
)

// allocator resolves abstract heap types against the physical device's
// memory-type table. The table is read once at device construction.
type allocator struct {
	device      *Device
	memoryTypes []MemoryType
}

func newAllocator(d *Device) *allocator {
	return &allocator{
		device:      d,
		memoryTypes: d.driver.GetMemoryProperties(d.physicalDevice),
	}
}

// memoryTypeForProperties finds the first memory type allowed by typeBits
// that carries all the requested property flags.
func (a *allocator) memoryTypeForProperties(typeBits uint32, flags MemoryPropertyFlags) (uint32, bool) {
	for i, mt := range a.memoryTypes {
		if typeBits&(1<<uint(i)) == 0 {
			continue
		}
		if mt.PropertyFlags&flags == flags {
			return uint32(i), true
		}
	}
	return 0, false
}

// heapTypeFlags maps the abstract heap types onto the memory properties
// their allocations must carry.
func heapTypeFlags(t rhi.HeapType) (MemoryPropertyFlags, bool) {
	switch t {
	case rhi.HeapTypeDeviceLocal:
		return MemoryPropertyDeviceLocal, true
	case rhi.HeapTypeUpload:
		return MemoryPropertyHostVisible, true
	case rhi.HeapTypeReadback:
		return MemoryPropertyHostVisible | MemoryPropertyHostCached, true
	}
	return 0, false
}

// Heap is one device-memory allocation resources can be placed into.
type Heap struct {
	device  *Device
	desc    rhi.HeapDesc
	memory  MemoryHandle
	managed bool
}

// Desc returns the descriptor the heap was created with.
func (h *Heap) Desc() rhi.HeapDesc { return h.desc }

// NativeObject exposes the raw VkDeviceMemory handle.
func (h *Heap) NativeObject(objectType rhi.ObjectType) rhi.Object {
	if objectType != rhi.ObjectTypeVKDeviceMemory {
		return rhi.Object{}
	}
	return rhi.Object{Type: objectType, Handle: uintptr(h.memory)}
}

// Free releases the heap's memory. Freeing twice is a no-op, and heaps
// adopted from the application are never freed here.
func (h *Heap) Free() {
	if !h.managed || h.memory == 0 {
		return
	}
	h.device.driver.FreeMemory(h.device.device, h.memory)
	metricHeapBytesFreed.Add(float64(h.desc.Capacity))
	if h.device.logBufferLifetime {
		h.device.info(fmt.Sprintf("freed heap %q (%d bytes)", h.desc.DebugName, h.desc.Capacity))
	}
	h.memory = 0
}

// CreateHeap allocates desc.Capacity bytes of device memory with the
// properties desc.Type requires. It returns nil after reporting a
// diagnostic when the heap type is unknown, no memory type qualifies, or
// the native allocation fails.
func (d *Device) CreateHeap(desc rhi.HeapDesc) *Heap {
	flags, ok := heapTypeFlags(desc.Type)
	if !ok {
		d.error(fmt.Sprintf("CreateHeap: invalid heap type %d", desc.Type))
		return nil
	}

	typeIndex, ok := d.allocator.memoryTypeForProperties(^uint32(0), flags)
	if !ok {
		d.error(fmt.Sprintf("CreateHeap: no memory type satisfies %s heaps", desc.Type))
		metricHeapAllocFailures.Inc()
		return nil
	}

	info := MemoryAllocateInfo{
		AllocationSize:  desc.Capacity,
		MemoryTypeIndex: typeIndex,
		// Resources placed in the heap may need device addresses when the
		// capability is enabled, and the bit must be set at allocation time.
		EnableDeviceAddress: d.caps.has(extBufferDeviceAddress),
	}

	memory, res := d.driver.AllocateMemory(d.device, info)
	if res != Success {
		name := desc.DebugName
		if name == "" {
			name = "unnamed"
		}
		d.error(fmt.Sprintf("CreateHeap: allocating %d bytes for heap %q failed: %s",
			desc.Capacity, name, res))
		metricHeapAllocFailures.Inc()
		return nil
	}

	if desc.DebugName != "" {
		d.driver.SetDebugName(d.device, rhi.ObjectTypeVKDeviceMemory, uintptr(memory), desc.DebugName)
	}
	metricHeapBytesAllocated.Add(float64(desc.Capacity))
	if d.logBufferLifetime {
		d.info(fmt.Sprintf("created heap %q (%d bytes, memory type %d)",
			desc.DebugName, desc.Capacity, typeIndex))
	}

	return &Heap{device: d, desc: desc, memory: memory, managed: true}
}

// AdoptHeap wraps device memory the application allocated itself. The
// returned heap never frees the memory.
func (d *Device) AdoptHeap(memory MemoryHandle, desc rhi.HeapDesc) *Heap {
	return &Heap{device: d, desc: desc, memory: memory, managed: false}
}
