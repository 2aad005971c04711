// Package cliconfig holds CLI configuration for shuntscope: defaults, the
// TOML file mirror, environment overrides, and the flag-precedence plumbing.
// Precedence is flags over environment over file over defaults.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// Config holds CLI configuration for shuntscope.
type Config struct {
	DeviceID string

	SampleCount    int
	SampleRateHz   float64
	AcquireTimeout time.Duration

	Tolerance   float64
	MarginRatio float64
	Workers     int

	OutPath string
	PDFPath string
	Watch   bool

	Channels []ChannelSpec
}

// ChannelSpec describes one analog input channel: its shunt, declared range,
// optional reference signal, and the captured trace to replay.
type ChannelSpec struct {
	ID           string
	ShuntOhms    float64
	RangeMinVolt float64
	RangeMaxVolt float64
	TerminalMode string

	// ReferenceMilliamps is the meter reading for this channel; nil means
	// no reference signal is available.
	ReferenceMilliamps *float64

	// Samples is the captured voltage trace replayed on acquisition.
	Samples []float64

	// Sweep holds optional multi-point calibration data.
	Sweep []SweepPointSpec

	// Modes lists terminal modes the channel supports, for negotiation.
	Modes []string
}

// SweepPointSpec is one calibration sweep point.
type SweepPointSpec struct {
	ReferenceMilliamps float64
	MeasuredVolt       float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DeviceID:       "local",
		SampleCount:    1000,
		SampleRateHz:   1000,
		AcquireTimeout: 5 * time.Second,
		Tolerance:      0.10,
		MarginRatio:    0.2,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DeviceID == "" {
		return fmt.Errorf("device-id is required")
	}
	if c.SampleCount <= 0 {
		return fmt.Errorf("sample count must be positive")
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}
	if c.Tolerance <= 0 || c.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in (0, 1)")
	}
	if c.MarginRatio < 0 {
		return fmt.Errorf("margin must not be negative")
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}

	seen := map[string]bool{}
	for _, ch := range c.Channels {
		if ch.ID == "" {
			return fmt.Errorf("channel id is required")
		}
		if seen[ch.ID] {
			return fmt.Errorf("duplicate channel %s", ch.ID)
		}
		seen[ch.ID] = true
		if _, err := ch.ToDomain(); err != nil {
			return err
		}
	}
	return nil
}

// ToDomain converts the spec into a validated channel configuration.
func (s ChannelSpec) ToDomain() (domain.ChannelConfig, error) {
	mode, err := domain.ParseTerminalMode(s.TerminalMode)
	if err != nil {
		return domain.ChannelConfig{}, fmt.Errorf("channel %s: %w", s.ID, err)
	}
	ch := domain.ChannelConfig{
		ID:            s.ID,
		ShuntOhms:     s.ShuntOhms,
		DeclaredRange: domain.Range{MinVolt: s.RangeMinVolt, MaxVolt: s.RangeMaxVolt},
		TerminalMode:  mode,
	}
	if err := ch.Validate(); err != nil {
		return domain.ChannelConfig{}, err
	}
	return ch, nil
}

// DomainChannels converts every channel spec. Validate must have passed.
func (c *Config) DomainChannels() ([]domain.ChannelConfig, error) {
	channels := make([]domain.ChannelConfig, 0, len(c.Channels))
	for _, s := range c.Channels {
		ch, err := s.ToDomain()
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
