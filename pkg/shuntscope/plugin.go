package shuntscope

import (
	"context"

	"github.com/sensorlab/shuntscope/pkg/log"
)

// Plugin extends a Shuntscope instance with optional behavior. Plugins are
// initialized in registration order when the instance starts and shut down
// in reverse order when it stops.
type Plugin interface {
	// Name returns the plugin's name for logging.
	Name() string

	// Initialize is called during Start. The context is canceled when the
	// instance stops.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called during Stop.
	Shutdown(ctx context.Context) error
}

// PluginConfig is passed to plugins at initialization.
type PluginConfig struct {
	// DeviceID identifies the instance.
	DeviceID string

	// ConfigPath is the config file backing the instance, if any.
	ConfigPath string

	// Logger is the instance's logger.
	Logger log.Logger

	// TriggerRun requests another diagnostic run. It never blocks; a
	// request made while a run is already pending is coalesced.
	TriggerRun func()
}
