package shuntscope_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sensorlab/shuntscope/internal/adapters/static"
	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/pkg/shuntscope"
)

type captureSink struct {
	mu      sync.Mutex
	reports []shuntscope.Report
}

func (c *captureSink) Write(ctx context.Context, rep shuntscope.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, rep)
	return nil
}

func (c *captureSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func testConfig() shuntscope.Config {
	return shuntscope.Config{
		DeviceID:    "dev1",
		SampleCount: 3,
		Channels: []shuntscope.ChannelConfig{
			{
				ID:            "ai0",
				ShuntOhms:     0.01,
				DeclaredRange: domain.Range{MinVolt: -0.1, MaxVolt: 0.1},
			},
		},
	}
}

func testSource() *static.Source {
	return static.NewSource(map[string]static.ChannelTrace{
		"ai0": {Samples: []float64{1.29e-5, 1.3e-5, 1.31e-5}},
	})
}

func TestNewRequiresSampleSource(t *testing.T) {
	_, err := shuntscope.New(testConfig())
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRejectsEmptyChannelList(t *testing.T) {
	cfg := testConfig()
	cfg.Channels = nil
	_, err := shuntscope.New(cfg, shuntscope.WithSampleSource(testSource()))
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestRunOnce(t *testing.T) {
	sink := &captureSink{}
	s, err := shuntscope.New(testConfig(),
		shuntscope.WithSampleSource(testSource()),
		shuntscope.WithReferenceProvider(static.NewReference(
			map[string]float64{"ai0": 1.3}, nil)),
		shuntscope.WithReportSink(sink),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	rep, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error: %v", err)
	}
	if len(rep.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rep.Rows))
	}
	row := rep.Rows[0]
	if row.Anomaly != "CONSISTENT" {
		t.Fatalf("anomaly = %s, want CONSISTENT", row.Anomaly)
	}
	if sink.count() != 1 {
		t.Fatalf("sink received %d reports, want 1", sink.count())
	}
	if _, ok := s.LastReport(); !ok {
		t.Fatal("LastReport() should be available after a run")
	}
}

func TestStartRunsAndStops(t *testing.T) {
	sink := &captureSink{}
	s, err := shuntscope.New(testConfig(),
		shuntscope.WithSampleSource(testSource()),
		shuntscope.WithReportSink(sink),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for s.Status() != shuntscope.StateStopped {
		select {
		case <-deadline:
			t.Fatalf("instance did not stop, status = %s", s.Status())
		case <-time.After(10 * time.Millisecond):
		}
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() after self-stop error: %v", err)
	}
	if sink.count() != 1 {
		t.Fatalf("sink received %d reports, want 1", sink.count())
	}
}

func TestStartWhileRunning(t *testing.T) {
	cfg := testConfig()
	cfg.KeepAlive = true
	s, err := shuntscope.New(cfg, shuntscope.WithSampleSource(testSource()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := s.Start(context.Background()); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Fatalf("second Start() = %v, want ErrAlreadyRunning", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
}

func TestStopWhenNeverStarted(t *testing.T) {
	s, err := shuntscope.New(testConfig(), shuntscope.WithSampleSource(testSource()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := s.Stop(); err == nil {
		t.Fatal("Stop() on a never-started instance should fail")
	}
}

type recordingHandler struct {
	mu       sync.Mutex
	states   []shuntscope.State
	channels []string
}

func (h *recordingHandler) OnStateChange(e shuntscope.StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e.Current)
}

func (h *recordingHandler) OnChannelComplete(o shuntscope.ChannelOutcome) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels = append(h.channels, o.Channel.ID)
}

func TestEventHandler(t *testing.T) {
	handler := &recordingHandler{}
	s, err := shuntscope.New(testConfig(),
		shuntscope.WithSampleSource(testSource()),
		shuntscope.WithEventHandler(handler),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	deadline := time.After(5 * time.Second)
	for s.Status() != shuntscope.StateStopped {
		select {
		case <-deadline:
			t.Fatal("instance did not stop")
		case <-time.After(10 * time.Millisecond):
		}
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	if len(handler.channels) != 1 || handler.channels[0] != "ai0" {
		t.Fatalf("channel events = %v, want [ai0]", handler.channels)
	}
	if len(handler.states) == 0 {
		t.Fatal("no state change events received")
	}
	if handler.states[len(handler.states)-1] != shuntscope.StateStopped {
		t.Fatalf("final state event = %s, want Stopped", handler.states[len(handler.states)-1])
	}
}
