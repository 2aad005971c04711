package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sensorlab/shuntscope/pkg/log"
	"github.com/sensorlab/shuntscope/pkg/shuntscope"
)

func TestTriggersRunOnConfigChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("device_id = \"dev1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	triggered := make(chan struct{}, 8)
	p := New(Config{DebounceDelay: 20 * time.Millisecond})

	err := p.Initialize(context.Background(), shuntscope.PluginConfig{
		DeviceID:   "dev1",
		ConfigPath: path,
		Logger:     log.NewNoopLogger(),
		TriggerRun: func() { triggered <- struct{}{} },
	})
	if err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	defer p.Shutdown(context.Background())

	// Give the watcher a moment to attach before mutating the file.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(path, []byte("device_id = \"dev2\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-triggered:
	case <-time.After(5 * time.Second):
		t.Fatal("no run requested after config change")
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("device_id = \"dev1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	triggered := make(chan struct{}, 8)
	p := New(Config{DebounceDelay: 20 * time.Millisecond})
	err := p.Initialize(context.Background(), shuntscope.PluginConfig{
		ConfigPath: path,
		Logger:     log.NewNoopLogger(),
		TriggerRun: func() { triggered <- struct{}{} },
	})
	if err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	defer p.Shutdown(context.Background())

	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-triggered:
		t.Fatal("unrelated file change should not request a run")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDisabledWithoutConfigPath(t *testing.T) {
	p := New(DefaultConfig())
	err := p.Initialize(context.Background(), shuntscope.PluginConfig{
		Logger:     log.NewNoopLogger(),
		TriggerRun: func() {},
	})
	if err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}

func TestName(t *testing.T) {
	if New(DefaultConfig()).Name() != "configwatcher" {
		t.Fatal("unexpected plugin name")
	}
}
