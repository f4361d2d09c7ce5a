package rhi

// Feature names an optional device capability that can be probed through
// Device.QueryFeatureSupport.
type Feature int

const (
	FeatureDeferredCommandLists Feature = iota
	FeatureRayTracingAccelStruct
	FeatureRayTracingPipeline
	FeatureRayTracingOpacityMicromap
	FeatureRayTracingClusters
	FeatureRayQuery
	FeatureShaderExecutionReordering
	FeatureShaderSpecializations
	FeatureMeshlets
	FeatureVariableRateShading
	FeatureConservativeRasterization
	FeatureVirtualResources
	FeatureComputeQueue
	FeatureCopyQueue
	FeatureConstantBufferRanges
	FeatureWaveLaneCountMinMax
	FeatureHeapDirectlyIndexed
	FeatureSamplerFeedback
	FeatureCooperativeVectorInferencing
	FeatureCooperativeVectorTraining
)

// VariableRateShadingFeatureInfo is the payload for
// FeatureVariableRateShading.
type VariableRateShadingFeatureInfo struct {
	ShadingRateImageTileSize uint32
}

// WaveLaneCountMinMaxFeatureInfo is the payload for
// FeatureWaveLaneCountMinMax.
type WaveLaneCountMinMaxFeatureInfo struct {
	MinWaveLaneCount uint32
	MaxWaveLaneCount uint32
}

// CoopVecDataType enumerates element types of cooperative-vector matrices.
type CoopVecDataType int

const (
	CoopVecDataTypeUInt8 CoopVecDataType = iota
	CoopVecDataTypeSInt8
	CoopVecDataTypeUInt16
	CoopVecDataTypeSInt16
	CoopVecDataTypeUInt32
	CoopVecDataTypeSInt32
	CoopVecDataTypeFloat16
	CoopVecDataTypeFloat32
	CoopVecDataTypeFloatE4M3
	CoopVecDataTypeFloatE5M2
)

// Size returns the element size in bytes.
func (t CoopVecDataType) Size() int {
	switch t {
	case CoopVecDataTypeUInt8, CoopVecDataTypeSInt8, CoopVecDataTypeFloatE4M3, CoopVecDataTypeFloatE5M2:
		return 1
	case CoopVecDataTypeUInt16, CoopVecDataTypeSInt16, CoopVecDataTypeFloat16:
		return 2
	case CoopVecDataTypeUInt32, CoopVecDataTypeSInt32, CoopVecDataTypeFloat32:
		return 4
	}
	return 0
}

// CoopVecMatrixLayout enumerates matrix memory layouts accepted by
// cooperative-vector operations.
type CoopVecMatrixLayout int

const (
	CoopVecMatrixLayoutRowMajor CoopVecMatrixLayout = iota
	CoopVecMatrixLayoutColumnMajor
	CoopVecMatrixLayoutInferencingOptimal
	CoopVecMatrixLayoutTrainingOptimal
)

// CoopVecMatMulFormatCombo is one supported matrix-multiply format
// combination reported by the device.
type CoopVecMatMulFormatCombo struct {
	InputType            CoopVecDataType
	InputInterpretation  CoopVecDataType
	MatrixInterpretation CoopVecDataType
	BiasInterpretation   CoopVecDataType
	OutputType           CoopVecDataType
	TransposeSupported   bool
}

// CoopVecDeviceFeatures describes the device's cooperative-vector support.
// The zero value means the feature is absent.
type CoopVecDeviceFeatures struct {
	MatMulFormats   []CoopVecMatMulFormatCombo
	TrainingFloat16 bool
	TrainingFloat32 bool
}
