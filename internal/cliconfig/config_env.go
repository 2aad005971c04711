package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SHUNTSCOPE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("device-id", os.Getenv("SHUNTSCOPE_DEVICE_ID"), &cfg.DeviceID)
	s.setString("out", os.Getenv("SHUNTSCOPE_OUT"), &cfg.OutPath)
	s.setString("pdf", os.Getenv("SHUNTSCOPE_PDF"), &cfg.PDFPath)

	if err := s.setIntFromString("sample-count", os.Getenv("SHUNTSCOPE_SAMPLE_COUNT"), &cfg.SampleCount); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("SHUNTSCOPE_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setFloatFromString("sample-rate", os.Getenv("SHUNTSCOPE_SAMPLE_RATE_HZ"), &cfg.SampleRateHz); err != nil {
		return err
	}
	if err := s.setFloatFromString("tolerance", os.Getenv("SHUNTSCOPE_TOLERANCE"), &cfg.Tolerance); err != nil {
		return err
	}
	if err := s.setFloatFromString("margin", os.Getenv("SHUNTSCOPE_MARGIN"), &cfg.MarginRatio); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("SHUNTSCOPE_ACQUIRE_TIMEOUT"), &cfg.AcquireTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("SHUNTSCOPE_WATCH"), &cfg.Watch)

	return nil
}
