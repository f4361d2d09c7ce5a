package vulkan

// deviceExtension indexes the fixed vocabulary of optional extensions this
// layer negotiates. Values index into capabilitySet's flag array.
type deviceExtension int

const (
	extConservativeRasterization deviceExtension = iota
	extDebugMarker
	extDebugReport
	extDebugUtils
	extOpacityMicromap
	extAccelerationStructure
	extBufferDeviceAddress
	extFragmentShadingRate
	extMaintenance1
	extRayQuery
	extRayTracingPipeline
	extSynchronization2
	extMeshShader
	extRayTracingInvocationReorder
	extClusterAccelerationStructure
	extMutableDescriptorType
	extCooperativeVector

	extensionCount
)

// extensionNames maps Vulkan extension strings onto vocabulary indices.
// Names outside the vocabulary are ignored for forward compatibility.
var extensionNames = map[string]deviceExtension{
	"VK_EXT_conservative_rasterization":    extConservativeRasterization,
	"VK_EXT_debug_marker":                  extDebugMarker,
	"VK_EXT_debug_report":                  extDebugReport,
	"VK_EXT_debug_utils":                   extDebugUtils,
	"VK_EXT_opacity_micromap":              extOpacityMicromap,
	"VK_KHR_acceleration_structure":        extAccelerationStructure,
	"VK_KHR_buffer_device_address":         extBufferDeviceAddress,
	"VK_KHR_fragment_shading_rate":         extFragmentShadingRate,
	"VK_KHR_maintenance1":                  extMaintenance1,
	"VK_KHR_ray_query":                     extRayQuery,
	"VK_KHR_ray_tracing_pipeline":          extRayTracingPipeline,
	"VK_KHR_synchronization2":              extSynchronization2,
	"VK_NV_mesh_shader":                    extMeshShader,
	"VK_NV_ray_tracing_invocation_reorder": extRayTracingInvocationReorder,
	"VK_NV_cluster_acceleration_structure": extClusterAccelerationStructure,
	"VK_EXT_mutable_descriptor_type":       extMutableDescriptorType,
	"VK_NV_cooperative_vector":             extCooperativeVector,
}

// capabilitySet records which optional extensions the application enabled.
// It is built once during device construction and never written afterward.
type capabilitySet struct {
	enabled [extensionCount]bool
}

// newCapabilitySet parses the instance- and device-level extension name
// lists. Every recognized name in either list sets its flag. The
// bufferDeviceAddress override covers the Vulkan 1.2 enablement path that
// does not go through an extension string.
func newCapabilitySet(instanceExtensions, deviceExtensions []string, bufferDeviceAddress bool) capabilitySet {
	var set capabilitySet
	for _, name := range instanceExtensions {
		if ext, ok := extensionNames[name]; ok {
			set.enabled[ext] = true
		}
	}
	for _, name := range deviceExtensions {
		if ext, ok := extensionNames[name]; ok {
			set.enabled[ext] = true
		}
	}
	if bufferDeviceAddress {
		set.enabled[extBufferDeviceAddress] = true
	}
	return set
}

func (s *capabilitySet) has(ext deviceExtension) bool {
	return s.enabled[ext]
}
