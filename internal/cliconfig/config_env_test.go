package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("SHUNTSCOPE_DEVICE_ID", "env-dev")
	t.Setenv("SHUNTSCOPE_SAMPLE_COUNT", "250")
	t.Setenv("SHUNTSCOPE_SAMPLE_RATE_HZ", "4000")
	t.Setenv("SHUNTSCOPE_TOLERANCE", "0.08")
	t.Setenv("SHUNTSCOPE_ACQUIRE_TIMEOUT", "3s")
	t.Setenv("SHUNTSCOPE_WATCH", "true")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error: %v", err)
	}

	if cfg.DeviceID != "env-dev" {
		t.Fatalf("device = %s, want env-dev", cfg.DeviceID)
	}
	if cfg.SampleCount != 250 {
		t.Fatalf("sample count = %d, want 250", cfg.SampleCount)
	}
	if cfg.SampleRateHz != 4000 {
		t.Fatalf("rate = %g, want 4000", cfg.SampleRateHz)
	}
	if cfg.Tolerance != 0.08 {
		t.Fatalf("tolerance = %g, want 0.08", cfg.Tolerance)
	}
	if cfg.AcquireTimeout != 3*time.Second {
		t.Fatalf("timeout = %s, want 3s", cfg.AcquireTimeout)
	}
	if !cfg.Watch {
		t.Fatal("watch not applied")
	}
}

func TestApplyEnvConfigRespectsChangedFlags(t *testing.T) {
	t.Setenv("SHUNTSCOPE_DEVICE_ID", "env-dev")
	t.Setenv("SHUNTSCOPE_SAMPLE_COUNT", "250")

	cfg := DefaultConfig()
	cfg.DeviceID = "flag-dev"
	changed := map[string]bool{"device-id": true}

	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig() error: %v", err)
	}
	if cfg.DeviceID != "flag-dev" {
		t.Fatalf("device = %s, flag value should win", cfg.DeviceID)
	}
	if cfg.SampleCount != 250 {
		t.Fatalf("sample count = %d, env should apply", cfg.SampleCount)
	}
}

func TestApplyEnvConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad sample count", "SHUNTSCOPE_SAMPLE_COUNT", "many"},
		{"bad tolerance", "SHUNTSCOPE_TOLERANCE", "strict"},
		{"bad timeout", "SHUNTSCOPE_ACQUIRE_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := DefaultConfig()
			if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
				t.Fatal("ApplyEnvConfig() expected error but got nil")
			}
		})
	}
}
