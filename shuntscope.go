// Package shuntscope diagnoses shunt-resistor current-sensing channels:
// it compares device readings against reference meters, classifies
// calibration anomalies, fits shunt parameters from calibration sweeps, and
// recommends acquisition ranges.
//
// Example usage:
//
//	cfg := shuntscope.Config{
//	    DeviceID: "dev1",
//	    Channels: []shuntscope.ChannelConfig{ /* ... */ },
//	}
//	rep, err := shuntscope.Run(context.Background(), cfg,
//	    shuntscope.WithSampleSource(source))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For supervised instances with plugins and lifecycle control, use
// pkg/shuntscope directly.
package shuntscope

import (
	"context"

	engine "github.com/sensorlab/shuntscope/pkg/shuntscope"
)

// Config holds the configuration for a diagnostic engine instance.
type Config = engine.Config

// ChannelConfig describes one current-sensing channel.
type ChannelConfig = engine.ChannelConfig

// ChannelOutcome is one channel's diagnostic result.
type ChannelOutcome = engine.ChannelOutcome

// Report is the rendered run summary.
type Report = engine.Report

// Option configures optional behavior of the engine.
type Option = engine.Option

// Re-exported options for single-run usage.
var (
	WithLogger            = engine.WithLogger
	WithSampleSource      = engine.WithSampleSource
	WithReferenceProvider = engine.WithReferenceProvider
	WithRangeCatalog      = engine.WithRangeCatalog
	WithReportSink        = engine.WithReportSink
	WithRetry             = engine.WithRetry
)

// Run performs a single diagnostic run over all configured channels and
// returns the report. It blocks until every channel completes or the
// context is cancelled.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	s, err := engine.New(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return s.RunOnce(ctx)
}
