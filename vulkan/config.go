package vulkan

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config carries the descriptor fields an application commonly wants to
// tune without recompiling. Everything else in DeviceDesc holds native
// handles and cannot come from a file.
type Config struct {
	VulkanLibraryName   string `yaml:"vulkan_library"`
	MaxTimerQueries     int    `yaml:"max_timer_queries"`
	LogBufferLifetime   bool   `yaml:"log_buffer_lifetime"`
	BufferDeviceAddress bool   `yaml:"buffer_device_address"`
}

// DefaultConfig returns the values used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		MaxTimerQueries: 256,
	}
}

// LoadConfig reads a YAML config file. A missing file is not an error; the
// defaults come back unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.MaxTimerQueries < 0 {
		return cfg, errors.Newf("config %s: max_timer_queries must not be negative", path)
	}
	return cfg, nil
}

// Apply copies the config onto a device descriptor.
func (c Config) Apply(desc *DeviceDesc) {
	desc.VulkanLibraryName = c.VulkanLibraryName
	desc.MaxTimerQueries = c.MaxTimerQueries
	desc.LogBufferLifetime = c.LogBufferLifetime
	desc.BufferDeviceAddressSupported = desc.BufferDeviceAddressSupported || c.BufferDeviceAddress
}
