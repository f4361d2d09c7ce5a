//go:build !vulkan

package vulkan

import "github.com/cockroachdb/errors"

// newDefaultDriver is the no-loader fallback. Builds without the "vulkan"
// tag have no native dispatch, so a Driver must come in through
// DeviceDesc.Driver.
func newDefaultDriver(libraryName string, allocCallbacks AllocationCallbacksHandle) (Driver, error) {
	return nil, errors.New("built without the vulkan tag and DeviceDesc.Driver is nil")
}
