package app

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/sensorlab/shuntscope/internal/analysis"
	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/ports"
)

// EngineConfig contains configuration for a diagnostic run.
type EngineConfig struct {
	// DeviceID selects the range catalog.
	DeviceID string

	// SampleCount and SampleRateHz parametrize every acquisition.
	SampleCount  int
	SampleRateHz float64

	// AcquireTimeout bounds a single acquisition. Zero means no bound
	// beyond the run context.
	AcquireTimeout time.Duration

	// Tolerance is the classifier band half-width; zero means the default.
	Tolerance float64

	// MarginRatio is the range-optimizer safety margin; zero means the default.
	MarginRatio float64

	// Workers caps concurrent channel analyses. Zero means NumCPU.
	Workers int
}

// ChannelEventEmitter is called as each channel's analysis completes.
type ChannelEventEmitter interface {
	OnChannelComplete(outcome domain.ChannelOutcome)
}

// Engine orchestrates the per-channel diagnostic pipeline:
// acquire, summarize, compare, classify, recommend a range, fit the sweep.
// Everything below the acquisition call is pure, so channels run on parallel
// workers with no coordination.
type Engine struct {
	config     EngineConfig
	source     ports.SampleSource
	refs       ports.ReferenceProvider
	catalog    ports.RangeCatalog
	logger     ports.Logger
	emitter    ChannelEventEmitter
	comparator analysis.Comparator
}

// NewEngine creates an engine with the given collaborators.
func NewEngine(
	config EngineConfig,
	source ports.SampleSource,
	refs ports.ReferenceProvider,
	catalog ports.RangeCatalog,
	logger ports.Logger,
	emitter ChannelEventEmitter,
) *Engine {
	return &Engine{
		config:     config,
		source:     source,
		refs:       refs,
		catalog:    catalog,
		logger:     logger,
		emitter:    emitter,
		comparator: analysis.Comparator{Classifier: analysis.Classifier{Tolerance: config.Tolerance}},
	}
}

// Run analyzes every channel and returns one outcome per channel in request
// order. Per-channel failures are isolated into their outcome; Run itself
// fails only when the context ends before all channels were scheduled.
func (e *Engine) Run(ctx context.Context, channels []domain.ChannelConfig) ([]domain.ChannelOutcome, error) {
	outcomes := make([]domain.ChannelOutcome, len(channels))

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(channels) {
		workers = len(channels)
	}

	type job struct {
		index   int
		channel domain.ChannelConfig
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out := e.runChannel(ctx, j.channel)
				outcomes[j.index] = out
				if e.emitter != nil {
					e.emitter.OnChannelComplete(out)
				}
			}
		}()
	}

	var runErr error
dispatch:
	for i, ch := range channels {
		if err := ctx.Err(); err != nil {
			runErr = err
			for k := i; k < len(channels); k++ {
				outcomes[k] = domain.ChannelOutcome{Channel: channels[k], Err: err}
			}
			break dispatch
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			for k := i; k < len(channels); k++ {
				outcomes[k] = domain.ChannelOutcome{Channel: channels[k], Err: ctx.Err()}
			}
			break dispatch
		case jobs <- job{index: i, channel: ch}:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes, runErr
}

// runChannel executes the full pipeline for one channel. Every failure is
// folded into the outcome; nothing here can fail the run as a whole.
func (e *Engine) runChannel(ctx context.Context, ch domain.ChannelConfig) domain.ChannelOutcome {
	out := domain.ChannelOutcome{Channel: ch}

	if err := ch.Validate(); err != nil {
		out.Err = err
		return out
	}

	out.TerminalMode = negotiateTerminalMode(ch.TerminalMode, e.source.SupportedTerminalModes(ch.ID))
	e.logger.Debug("acquiring",
		ports.String("channel", ch.ID),
		ports.String("mode", out.TerminalMode.String()),
		ports.Int("samples", e.config.SampleCount),
	)

	acquireCtx := ctx
	if e.config.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, e.config.AcquireTimeout)
		defer cancel()
	}
	batch, err := e.source.Acquire(acquireCtx, ch.ID, e.config.SampleCount, e.config.SampleRateHz)
	if err != nil {
		e.logger.Error("acquisition failed",
			ports.String("channel", ch.ID),
			ports.Err(err),
			ports.Bool("retryable", domain.Retryable(err)),
		)
		out.Err = err
		return out
	}

	stats, err := analysis.Summarize(batch)
	if err != nil {
		out.Err = err
		return out
	}
	out.Stats = &stats

	refMa, err := e.refs.ReferenceCurrentMilliamps(ch.ID)
	if err != nil && !errors.Is(err, domain.ErrNoReferenceSignal) {
		out.Err = err
		return out
	}

	rec, cmpErr := e.comparator.Compare(ch, stats.MeanVolt, refMa)
	switch {
	case cmpErr == nil:
		out.Record = &rec
	case errors.Is(cmpErr, domain.ErrNoReferenceSignal), errors.Is(cmpErr, domain.ErrSignMismatch):
		// Findings, not faults: the record stays in the report.
		out.Record = &rec
		out.Err = cmpErr
	default:
		out.Err = cmpErr
		return out
	}

	if out.Record != nil && out.Record.RatioDefined && out.Record.Anomaly != domain.AnomalyConsistent {
		e.logger.Warn("calibration anomaly",
			ports.String("channel", ch.ID),
			ports.String("anomaly", out.Record.Anomaly.String()),
			ports.Float64("ratio", out.Record.Ratio),
			ports.Float64("derived_shunt_ohms", out.Record.DerivedShuntOhms),
		)
	}

	rng, rngErr := analysis.RecommendRange(stats.PeakVolt(), e.catalog.SupportedRanges(e.config.DeviceID), e.config.MarginRatio)
	if rngErr != nil {
		e.logger.Warn("no acquisition range fits",
			ports.String("channel", ch.ID),
			ports.Float64("peak_volt", stats.PeakVolt()),
		)
		if out.Err == nil {
			out.Err = rngErr
		}
	} else {
		out.Range = &rng
	}

	if sweep, ok := e.refs.CalibrationSweep(ch.ID); ok {
		fit, fitErr := analysis.FitShunt(sweep)
		if fitErr != nil {
			e.logger.Debug("sweep fit skipped",
				ports.String("channel", ch.ID),
				ports.Err(fitErr),
			)
		} else {
			out.Fit = &fit
		}
	}

	return out
}

// terminalPreference orders negotiation: differential rejects the most
// common-mode noise, single-ended is next, device default last.
var terminalPreference = []domain.TerminalMode{
	domain.TerminalDifferential,
	domain.TerminalRSE,
	domain.TerminalDefault,
}

// negotiateTerminalMode selects the terminal mode deterministically from the
// source's reported capabilities. The configured mode wins when supported;
// otherwise the preference order decides. An empty capability list means the
// source does not negotiate and the configured mode stands.
func negotiateTerminalMode(configured domain.TerminalMode, supported []domain.TerminalMode) domain.TerminalMode {
	if len(supported) == 0 {
		return configured
	}
	has := func(m domain.TerminalMode) bool {
		for _, s := range supported {
			if s == m {
				return true
			}
		}
		return false
	}
	if configured != domain.TerminalDefault && has(configured) {
		return configured
	}
	for _, m := range terminalPreference {
		if has(m) {
			return m
		}
	}
	return configured
}
