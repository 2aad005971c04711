package shuntscope

import (
	"context"
	"fmt"
	"sync"

	"github.com/sensorlab/shuntscope/internal/adapters/retry"
	"github.com/sensorlab/shuntscope/internal/adapters/static"
	"github.com/sensorlab/shuntscope/internal/app"
	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/ports"
	"github.com/sensorlab/shuntscope/internal/report"
	"github.com/sensorlab/shuntscope/pkg/log"
)

// Shuntscope is an embeddable diagnostic engine instance.
// Use New() to create an instance, then Start() or RunOnce().
type Shuntscope struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	engine    *app.Engine
	logger    ports.Logger

	plugins []Plugin

	runCh chan struct{}

	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	lastReport *Report

	pluginShutdown sync.Once
}

// New creates a new Shuntscope instance with the given configuration.
// A sample source is required; everything else has a default. The instance
// is created in StateStopped.
func New(cfg Config, opts ...Option) (*Shuntscope, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.source == nil {
		return nil, fmt.Errorf("%w: a sample source is required", domain.ErrInvalidConfig)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.refs == nil {
		o.refs = static.NewReference(nil, nil)
	}
	if o.catalog == nil {
		o.catalog = static.DefaultCatalog()
	}

	source := o.source
	if o.retry != nil {
		source = retry.NewSource(source, o.logger,
			retry.WithAttempts(o.retry.Attempts),
			retry.WithBackoff(o.retry.Initial, o.retry.Max),
		)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(o.logger, emitter)

	engine := app.NewEngine(app.EngineConfig{
		DeviceID:       cfg.DeviceID,
		SampleCount:    cfg.SampleCount,
		SampleRateHz:   cfg.SampleRateHz,
		AcquireTimeout: cfg.AcquireTimeout,
		Tolerance:      cfg.Tolerance,
		MarginRatio:    cfg.MarginRatio,
		Workers:        cfg.Workers,
	}, source, o.refs, o.catalog, o.logger, emitter)

	return &Shuntscope{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		engine:    engine,
		logger:    o.logger,
		plugins:   o.plugins,
		runCh:     make(chan struct{}, 1),
	}, nil
}

// RunOnce performs one diagnostic run over all configured channels, delivers
// the report to every registered sink, and returns it. It does not interact
// with the Start/Stop lifecycle and may be used standalone.
func (s *Shuntscope) RunOnce(ctx context.Context) (Report, error) {
	outcomes, err := s.engine.Run(ctx, s.config.Channels)
	rep := report.Build(s.config.DeviceID, outcomes)

	s.mu.Lock()
	s.lastReport = &rep
	s.mu.Unlock()

	for _, sink := range s.opts.sinks {
		if sinkErr := sink.Write(ctx, rep); sinkErr != nil {
			s.logger.Error("report sink failed", ports.Err(sinkErr))
			if err == nil {
				err = sinkErr
			}
		}
	}
	return rep, err
}

// Start begins supervised operation in the background: it performs an
// initial diagnostic run and then, when KeepAlive is set, waits for further
// run requests (from plugins calling TriggerRun) until Stop is called.
// Returns an error if already running or if plugin initialization fails.
func (s *Shuntscope) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.ctx = runCtx
	s.cancel = cancel
	s.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		DeviceID:   s.config.DeviceID,
		ConfigPath: s.config.ConfigPath,
		Logger:     s.logger,
		TriggerRun: s.triggerRun,
	}
	for _, p := range s.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			s.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = s.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		s.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	// Queue the initial run.
	s.triggerRun()

	s.lifecycle.AddWorker()
	go func() {
		defer s.lifecycle.WorkerDone()

		if err := s.lifecycle.TransitionTo(app.StateRunning, "engine starting"); err != nil {
			s.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		for {
			select {
			case <-runCtx.Done():
				return
			case <-s.runCh:
			}

			if _, err := s.RunOnce(runCtx); err != nil && err != context.Canceled {
				s.logger.Error("diagnostic run failed", ports.Err(err))
			}

			if !s.config.KeepAlive {
				_ = s.lifecycle.TransitionTo(app.StateStopping, "run complete")
				_ = s.lifecycle.TransitionTo(app.StateStopped, "run complete")
				return
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the instance. Waits up to 30 seconds for the
// run goroutine, then shuts down plugins in reverse order. Calling Stop on
// an instance that already stopped itself releases plugins and returns nil.
func (s *Shuntscope) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		state := s.lifecycle.State()
		s.mu.Unlock()
		if state == app.StateStopped || state == app.StateCrashed {
			s.shutdownPlugins()
			return nil
		}
		return domain.ErrNotRunning
	}

	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	err := s.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	s.shutdownPlugins()

	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Shuntscope) Status() State {
	return convertState(s.lifecycle.State())
}

// LastReport returns the most recent report, if a run has completed.
func (s *Shuntscope) LastReport() (Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastReport == nil {
		return Report{}, false
	}
	return *s.lastReport, true
}

// triggerRun queues a diagnostic run, coalescing with any pending request.
func (s *Shuntscope) triggerRun() {
	select {
	case s.runCh <- struct{}{}:
	default:
	}
}

// shutdownPlugins shuts plugins down in reverse registration order, once.
func (s *Shuntscope) shutdownPlugins() {
	s.pluginShutdown.Do(func() {
		ctx := context.Background()
		for i := len(s.plugins) - 1; i >= 0; i-- {
			p := s.plugins[i]
			if err := p.Shutdown(ctx); err != nil {
				s.logger.Error("plugin shutdown failed",
					ports.String("plugin", p.Name()),
					ports.Err(err))
			} else {
				s.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
			}
		}
	})
}
