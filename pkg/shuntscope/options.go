package shuntscope

import (
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/ports"
	"github.com/sensorlab/shuntscope/internal/report"
	"github.com/sensorlab/shuntscope/pkg/log"
)

// Aliases for the core types so embedders only import this package.
type (
	// Logger is the structured logging interface from pkg/log.
	Logger = log.Logger

	// ChannelConfig describes one current-sensing channel.
	ChannelConfig = domain.ChannelConfig

	// ChannelOutcome is one channel's diagnostic result.
	ChannelOutcome = domain.ChannelOutcome

	// Report is the rendered run summary.
	Report = report.Report

	// SampleSource acquires voltage batches from hardware or a replay.
	SampleSource = ports.SampleSource

	// ReferenceProvider serves reference currents and calibration sweeps.
	ReferenceProvider = ports.ReferenceProvider

	// RangeCatalog serves a device's supported acquisition ranges.
	RangeCatalog = ports.RangeCatalog

	// ReportSink receives the rendered report.
	ReportSink = ports.ReportSink
)

// RetryPolicy configures acquisition retries for transient failures.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// Option configures optional behavior of Shuntscope.
type Option func(*options)

// options holds the optional configuration for a Shuntscope instance.
type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	plugins      []Plugin
	source       ports.SampleSource
	refs         ports.ReferenceProvider
	catalog      ports.RangeCatalog
	sinks        []ports.ReportSink
	retry        *RetryPolicy
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for instance events.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the instance starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithSampleSource sets the acquisition backend. Required.
func WithSampleSource(source SampleSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithReferenceProvider sets the reference signal backend.
// If not provided, every channel reports no reference signal.
func WithReferenceProvider(refs ReferenceProvider) Option {
	return func(o *options) {
		o.refs = refs
	}
}

// WithRangeCatalog sets the device range catalog.
// If not provided, a default bipolar decade ladder is used.
func WithRangeCatalog(catalog RangeCatalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithReportSink registers a sink that receives every rendered report.
// May be given multiple times.
func WithReportSink(sink ReportSink) Option {
	return func(o *options) {
		o.sinks = append(o.sinks, sink)
	}
}

// WithRetry wraps the sample source so transient acquisition failures are
// retried with exponential backoff.
func WithRetry(policy RetryPolicy) Option {
	return func(o *options) {
		o.retry = &policy
	}
}
