package shuntscope

import (
	"fmt"
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// Default configuration values.
const (
	DefaultSampleCount  = 1000
	DefaultSampleRateHz = 1000.0
	DefaultTimeout      = 5 * time.Second
)

// Config holds the configuration for a Shuntscope instance.
type Config struct {
	// DeviceID selects the range catalog and labels the report.
	DeviceID string

	// SampleCount and SampleRateHz parametrize every acquisition.
	SampleCount  int
	SampleRateHz float64

	// AcquireTimeout bounds a single acquisition.
	AcquireTimeout time.Duration

	// Tolerance is the classifier band half-width; zero means the default.
	Tolerance float64

	// MarginRatio is the range-optimizer safety margin; zero means the default.
	MarginRatio float64

	// Workers caps concurrent channel analyses. Zero means NumCPU.
	Workers int

	// Channels lists the channels to diagnose.
	Channels []ChannelConfig

	// ConfigPath is the config file backing this instance, if any. Plugins
	// such as the config watcher use it.
	ConfigPath string

	// KeepAlive keeps the instance running after a diagnostic run so that
	// plugins can trigger further runs. When false the instance stops
	// itself after the first run.
	KeepAlive bool
}

// SetDefaults fills in zero values with defaults.
func (c *Config) SetDefaults() {
	if c.DeviceID == "" {
		c.DeviceID = "local"
	}
	if c.SampleCount == 0 {
		c.SampleCount = DefaultSampleCount
	}
	if c.SampleRateHz == 0 {
		c.SampleRateHz = DefaultSampleRateHz
	}
	if c.AcquireTimeout == 0 {
		c.AcquireTimeout = DefaultTimeout
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SampleCount <= 0 {
		return fmt.Errorf("%w: sample count must be positive", domain.ErrInvalidConfig)
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", domain.ErrInvalidConfig)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("%w: at least one channel is required", domain.ErrInvalidConfig)
	}
	for _, ch := range c.Channels {
		if err := ch.Validate(); err != nil {
			return err
		}
	}
	return nil
}
