package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	DeviceID       string  `toml:"device_id"`
	SampleCount    int     `toml:"sample_count"`
	SampleRateHz   float64 `toml:"sample_rate_hz"`
	AcquireTimeout string  `toml:"acquire_timeout"`
	Tolerance      float64 `toml:"tolerance"`
	MarginRatio    float64 `toml:"margin"`
	Workers        int     `toml:"workers"`
	OutPath        string  `toml:"out"`
	PDFPath        string  `toml:"pdf"`
	Watch          *bool   `toml:"watch"`

	Channels []FileChannel `toml:"channels"`
}

// FileChannel mirrors ChannelSpec for TOML.
type FileChannel struct {
	ID           string    `toml:"id"`
	ShuntOhms    float64   `toml:"shunt_ohms"`
	RangeMinVolt float64   `toml:"range_min_volt"`
	RangeMaxVolt float64   `toml:"range_max_volt"`
	TerminalMode string    `toml:"terminal_mode"`
	Reference    *float64  `toml:"reference_milliamps"`
	Samples      []float64 `toml:"samples"`
	Modes        []string  `toml:"modes"`

	Sweep []FileSweepPoint `toml:"sweep"`
}

// FileSweepPoint mirrors SweepPointSpec for TOML.
type FileSweepPoint struct {
	ReferenceMilliamps float64 `toml:"reference_milliamps"`
	MeasuredVolt       float64 `toml:"measured_volt"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.shuntscope/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".shuntscope", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device-id", fc.DeviceID, &cfg.DeviceID)
	s.setInt("sample-count", fc.SampleCount, &cfg.SampleCount)
	s.setFloat("sample-rate", fc.SampleRateHz, &cfg.SampleRateHz)
	if err := s.setDuration("timeout", fc.AcquireTimeout, &cfg.AcquireTimeout); err != nil {
		return err
	}
	s.setFloat("tolerance", fc.Tolerance, &cfg.Tolerance)
	s.setFloat("margin", fc.MarginRatio, &cfg.MarginRatio)
	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setString("out", fc.OutPath, &cfg.OutPath)
	s.setString("pdf", fc.PDFPath, &cfg.PDFPath)
	if fc.Watch != nil && !changed["watch"] {
		cfg.Watch = *fc.Watch
	}

	// Channels come from the file only; there is no flag to preserve.
	cfg.Channels = cfg.Channels[:0]
	for _, ch := range fc.Channels {
		spec := ChannelSpec{
			ID:                 ch.ID,
			ShuntOhms:          ch.ShuntOhms,
			RangeMinVolt:       ch.RangeMinVolt,
			RangeMaxVolt:       ch.RangeMaxVolt,
			TerminalMode:       ch.TerminalMode,
			ReferenceMilliamps: ch.Reference,
			Samples:            ch.Samples,
			Modes:              ch.Modes,
		}
		for _, p := range ch.Sweep {
			spec.Sweep = append(spec.Sweep, SweepPointSpec{
				ReferenceMilliamps: p.ReferenceMilliamps,
				MeasuredVolt:       p.MeasuredVolt,
			})
		}
		cfg.Channels = append(cfg.Channels, spec)
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
