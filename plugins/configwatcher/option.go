package configwatcher

import "github.com/sensorlab/shuntscope/pkg/shuntscope"

// WithConfigWatcher returns a shuntscope Option that enables config file
// watching. When enabled, the plugin monitors the instance's config file and
// requests a new diagnostic run after each change.
//
// Usage:
//
//	s, err := shuntscope.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) shuntscope.Option {
	plugin := New(cfg)
	return shuntscope.WithPlugin(plugin)
}

// WithDefaultConfigWatcher returns a shuntscope Option that enables config
// watching with default settings (debounce 100ms).
func WithDefaultConfigWatcher() shuntscope.Option {
	return WithConfigWatcher(DefaultConfig())
}
