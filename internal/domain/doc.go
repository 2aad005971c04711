// Package domain contains the core entities and value objects for shuntscope.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (acquisition hardware, file system,
// logging) and contains only the measurement data model and its invariants.
//
// # Entities
//
//   - [ChannelConfig]: Immutable per-run configuration of one sensing channel
//   - [SampleBatch]: An ordered batch of raw shunt-voltage samples
//   - [SampleStatistics]: Streaming summary of a batch (mean, min, max, stddev)
//   - [CalibrationRecord]: Device-vs-reference comparison for one channel
//   - [RangeCandidate] / [RangeRecommendation]: Acquisition-range selection
//   - [ChannelOutcome]: Per-channel result of a diagnostic run
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction
//   - Pure functions of their inputs where derived
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
