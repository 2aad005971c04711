package ports

import (
	"context"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// SampleSource supplies batches of raw shunt-voltage samples for a channel
// over a time window. Acquisition is the only blocking operation the core
// consumes; everything downstream of it is pure.
type SampleSource interface {
	// Acquire reads sampleCount samples at sampleRateHz from the channel.
	// It blocks until the batch is complete, the context is done, or the
	// device fails. Returns domain.ErrAcquisitionTimeout when the deadline
	// passes and domain.ErrDeviceUnavailable when the device cannot be
	// reached; both are retryable, and retry policy belongs to the caller
	// or a decorating adapter, never to the core.
	Acquire(ctx context.Context, channelID string, sampleCount int, sampleRateHz float64) (domain.SampleBatch, error)

	// SupportedTerminalModes reports which terminal configurations the
	// source can provide for a channel. The engine selects deterministically
	// from this list instead of discovering fallbacks through runtime
	// failures.
	SupportedTerminalModes(channelID string) []domain.TerminalMode
}
