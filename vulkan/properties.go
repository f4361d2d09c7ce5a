package vulkan

// propertyCache holds the results of the construction-time batched property
// query plus the two standalone feature queries. Blocks belonging to
// disabled extensions stay at their zero values. The cache is immutable
// after device construction, so reads need no synchronization.
type propertyCache struct {
	subgroup            SubgroupProperties
	accelStruct         AccelerationStructureProperties
	rayTracingPipeline  RayTracingPipelineProperties
	shadingRate         FragmentShadingRateProperties
	conservativeRaster  ConservativeRasterizationProperties
	opacityMicromap     OpacityMicromapProperties
	invocationReorder   InvocationReorderProperties
	clusterAccelStruct  ClusterAccelerationStructureProperties
	coopVec             CooperativeVectorProperties
	shadingRateFeatures FragmentShadingRateFeatures
	coopVecFeatures     CooperativeVectorFeatures
}

// queryProperties builds the ordered list of tagged property requests for
// exactly the enabled extensions, issues the single batched query, and then
// runs the standalone boolean-feature queries that two of the extensions
// additionally require.
func (c *propertyCache) queryProperties(driver Driver, phys PhysicalDeviceHandle, caps *capabilitySet) error {
	// Subgroup properties come from core Vulkan 1.1 and are always asked for.
	queries := []PropertyQuery{
		{Tag: PropertyTagSubgroup, Subgroup: &c.subgroup},
	}

	if caps.has(extAccelerationStructure) {
		queries = append(queries, PropertyQuery{
			Tag:                   PropertyTagAccelerationStructure,
			AccelerationStructure: &c.accelStruct,
		})
	}
	if caps.has(extRayTracingPipeline) {
		queries = append(queries, PropertyQuery{
			Tag:                PropertyTagRayTracingPipeline,
			RayTracingPipeline: &c.rayTracingPipeline,
		})
	}
	if caps.has(extFragmentShadingRate) {
		queries = append(queries, PropertyQuery{
			Tag:                 PropertyTagFragmentShadingRate,
			FragmentShadingRate: &c.shadingRate,
		})
	}
	if caps.has(extConservativeRasterization) {
		queries = append(queries, PropertyQuery{
			Tag:                       PropertyTagConservativeRasterization,
			ConservativeRasterization: &c.conservativeRaster,
		})
	}
	if caps.has(extOpacityMicromap) {
		queries = append(queries, PropertyQuery{
			Tag:             PropertyTagOpacityMicromap,
			OpacityMicromap: &c.opacityMicromap,
		})
	}
	if caps.has(extRayTracingInvocationReorder) {
		queries = append(queries, PropertyQuery{
			Tag:               PropertyTagInvocationReorder,
			InvocationReorder: &c.invocationReorder,
		})
	}
	if caps.has(extClusterAccelerationStructure) {
		queries = append(queries, PropertyQuery{
			Tag:                          PropertyTagClusterAccelerationStructure,
			ClusterAccelerationStructure: &c.clusterAccelStruct,
		})
	}
	if caps.has(extCooperativeVector) {
		queries = append(queries, PropertyQuery{
			Tag:               PropertyTagCooperativeVector,
			CooperativeVector: &c.coopVec,
		})
	}

	if err := driver.GetProperties(phys, queries); err != nil {
		return err
	}

	if caps.has(extFragmentShadingRate) {
		err := driver.GetFeatures(phys, &FeatureQuery{FragmentShadingRate: &c.shadingRateFeatures})
		if err != nil {
			return err
		}
	}
	if caps.has(extCooperativeVector) {
		err := driver.GetFeatures(phys, &FeatureQuery{CooperativeVector: &c.coopVecFeatures})
		if err != nil {
			return err
		}
	}

	return nil
}
