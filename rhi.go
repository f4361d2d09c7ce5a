// Package rhi defines the vocabulary shared by render-hardware-interface
// backends: formats, feature flags, heap and queue descriptions, native
// object references, and the diagnostic channel. The package itself talks
// to no GPU; backends such as the vulkan package consume these types.
package rhi

// GraphicsAPI identifies the native API behind a device.
type GraphicsAPI int

const (
	GraphicsAPID3D11 GraphicsAPI = iota
	GraphicsAPID3D12
	GraphicsAPIVulkan
)

func (a GraphicsAPI) String() string {
	switch a {
	case GraphicsAPID3D11:
		return "D3D11"
	case GraphicsAPID3D12:
		return "D3D12"
	case GraphicsAPIVulkan:
		return "Vulkan"
	}
	return "Unknown"
}

// CommandQueue selects one of the device's command queues.
type CommandQueue int

const (
	CommandQueueGraphics CommandQueue = iota
	CommandQueueCompute
	CommandQueueCopy

	CommandQueueCount
)

func (q CommandQueue) String() string {
	switch q {
	case CommandQueueGraphics:
		return "Graphics"
	case CommandQueueCompute:
		return "Compute"
	case CommandQueueCopy:
		return "Copy"
	}
	return "Invalid"
}

// ObjectType tags the concrete native type carried by an Object.
type ObjectType uint32

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeVKInstance
	ObjectTypeVKPhysicalDevice
	ObjectTypeVKDevice
	ObjectTypeVKQueue
	ObjectTypeVKDeviceMemory
	ObjectTypeVKCommandBuffer
	ObjectTypeVKImage
	ObjectTypeRHIDevice
)

// Object is a reference to a native API object or to a backend object.
// Handle carries raw native handles; Ptr carries backend Go objects.
type Object struct {
	Type   ObjectType
	Handle uintptr
	Ptr    any
}

// IsNil reports whether the object references nothing.
func (o Object) IsNil() bool {
	return o.Handle == 0 && o.Ptr == nil
}

// MessageSeverity classifies diagnostic messages.
type MessageSeverity int

const (
	SeverityInfo MessageSeverity = iota
	SeverityWarning
	SeverityError
)

func (s MessageSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	}
	return "Unknown"
}

// MessageCallback receives diagnostics from a device. It is the sole
// channel for several non-fatal internal failures; callers must still treat
// nil/false returns from device operations as the authoritative signal.
type MessageCallback interface {
	Message(severity MessageSeverity, text string)
}

// MessageFunc adapts a plain function to MessageCallback.
type MessageFunc func(severity MessageSeverity, text string)

func (f MessageFunc) Message(severity MessageSeverity, text string) {
	f(severity, text)
}

// CommandList is the recording surface produced by a backend. Recording and
// encoding live outside this module; a device only needs the pieces that
// participate in submission bookkeeping.
type CommandList interface {
	// NativeObject returns the native object of the requested type, for
	// example the current command buffer for ObjectTypeVKCommandBuffer.
	NativeObject(objectType ObjectType) Object

	// Executed notifies the list that it was submitted to the given queue
	// under the given submission ID.
	Executed(queue CommandQueue, submissionID uint64)
}

// RetirementNotify is optionally implemented by CommandList values that
// want to reclaim resources once a submission has completed on the GPU.
type RetirementNotify interface {
	Retired(submissionID uint64)
}
