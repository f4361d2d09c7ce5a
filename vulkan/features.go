package vulkan

import (
	"fmt"

	"github.com/glaciergfx/rhi"
)

// QueryFeatureSupport reports whether the device supports the given
// feature. It is a pure function of the capability set, the cached property
// blocks, and queue-slot occupancy.
//
// Features with a payload (FeatureVariableRateShading,
// FeatureWaveLaneCountMinMax) fill out when it points at the feature's
// payload struct. Passing a payload of the wrong type reports an
// UnsupportedOperation diagnostic without changing the returned boolean.
func (d *Device) QueryFeatureSupport(feature rhi.Feature, out any) bool {
	switch feature {
	case rhi.FeatureDeferredCommandLists,
		rhi.FeatureShaderSpecializations,
		rhi.FeatureVirtualResources,
		rhi.FeatureConstantBufferRanges:
		return true

	case rhi.FeatureRayTracingAccelStruct:
		return d.caps.has(extAccelerationStructure)

	case rhi.FeatureRayTracingPipeline:
		return d.caps.has(extRayTracingPipeline)

	case rhi.FeatureRayQuery:
		return d.caps.has(extRayQuery)

	case rhi.FeatureRayTracingOpacityMicromap:
		return d.caps.has(extOpacityMicromap) && d.caps.has(extSynchronization2)

	case rhi.FeatureRayTracingClusters:
		return d.caps.has(extClusterAccelerationStructure)

	case rhi.FeatureShaderExecutionReordering:
		return d.caps.has(extRayTracingInvocationReorder) &&
			d.props.invocationReorder.ReorderingHint == ReorderingHintReorder

	case rhi.FeatureMeshlets:
		return d.caps.has(extMeshShader)

	case rhi.FeatureVariableRateShading:
		if out != nil {
			if info, ok := out.(*rhi.VariableRateShadingFeatureInfo); ok {
				tile := d.props.shadingRate.MinFragmentShadingRateAttachmentTexelSize
				info.ShadingRateImageTileSize = max(tile.Width, tile.Height)
			} else {
				d.notSupported(feature, out)
			}
		}
		return d.caps.has(extFragmentShadingRate) && d.props.shadingRateFeatures.AttachmentFragmentShadingRate

	case rhi.FeatureConservativeRasterization:
		return d.caps.has(extConservativeRasterization)

	case rhi.FeatureComputeQueue:
		return d.queues[rhi.CommandQueueCompute] != nil

	case rhi.FeatureCopyQueue:
		return d.queues[rhi.CommandQueueCopy] != nil

	case rhi.FeatureWaveLaneCountMinMax:
		if d.props.subgroup.SubgroupSize == 0 {
			return false
		}
		if out != nil {
			if info, ok := out.(*rhi.WaveLaneCountMinMaxFeatureInfo); ok {
				// Vulkan reports exactly one subgroup size.
				info.MinWaveLaneCount = d.props.subgroup.SubgroupSize
				info.MaxWaveLaneCount = d.props.subgroup.SubgroupSize
			} else {
				d.notSupported(feature, out)
			}
		}
		return true

	case rhi.FeatureHeapDirectlyIndexed:
		return d.caps.has(extMutableDescriptorType)

	case rhi.FeatureCooperativeVectorInferencing:
		return d.caps.has(extCooperativeVector) && d.props.coopVecFeatures.CooperativeVector

	case rhi.FeatureCooperativeVectorTraining:
		return d.caps.has(extCooperativeVector) && d.props.coopVecFeatures.CooperativeVectorTraining

	case rhi.FeatureSamplerFeedback:
		if out != nil {
			d.notSupported(feature, out)
		}
		return false

	default:
		return false
	}
}

func (d *Device) notSupported(feature rhi.Feature, out any) {
	d.error(fmt.Sprintf("QueryFeatureSupport: unsupported payload type %T for feature %d", out, feature))
}

// QueryCoopVecFeatures enumerates the matrix-multiply format combinations
// the device supports. The result is empty when NV_cooperative_vector is
// not enabled or the enumeration fails.
func (d *Device) QueryCoopVecFeatures() rhi.CoopVecDeviceFeatures {
	var result rhi.CoopVecDeviceFeatures

	if !d.caps.has(extCooperativeVector) {
		return result
	}

	combos, res := d.driver.GetCooperativeVectorProperties(d.physicalDevice)
	if res != Success {
		return result
	}

	result.MatMulFormats = combos
	result.TrainingFloat16 = d.props.coopVec.TrainingFloat16Accumulation
	result.TrainingFloat32 = d.props.coopVec.TrainingFloat32Accumulation
	return result
}

// CoopVecMatrixSize returns the byte size a matrix of the given shape
// occupies in the requested layout, or 0 when the extension is absent or
// the probe fails.
func (d *Device) CoopVecMatrixSize(dataType rhi.CoopVecDataType, layout rhi.CoopVecMatrixLayout, rows, columns int) uint64 {
	if !d.caps.has(extCooperativeVector) {
		return 0
	}

	elemSize := uint64(dataType.Size())
	info := CoopVecMatrixConvertInfo{
		SrcSize:          elemSize * uint64(rows) * uint64(columns),
		SrcComponentType: dataType,
		DstComponentType: dataType,
		NumRows:          rows,
		NumColumns:       columns,
		SrcLayout:        rhi.CoopVecMatrixLayoutRowMajor,
		DstLayout:        layout,
		SrcStride:        elemSize * uint64(columns),
	}

	size, res := d.driver.ConvertCoopVecMatrixSize(d.device, info)
	if res != Success {
		return 0
	}
	return size
}
