package static

import (
	"context"
	"fmt"
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// ChannelTrace holds the replay data for one channel.
type ChannelTrace struct {
	// Samples are replayed verbatim on every acquisition. When the
	// requested count exceeds the trace, the trace wraps around.
	Samples []float64

	// Modes lists the terminal modes the channel reports as supported.
	// Empty means the source does not negotiate.
	Modes []domain.TerminalMode
}

// Source replays configured traces through the sample-source port.
type Source struct {
	traces map[string]ChannelTrace
}

// NewSource creates a replay source from a channel-to-trace map.
func NewSource(traces map[string]ChannelTrace) *Source {
	return &Source{traces: traces}
}

// Acquire returns a batch replayed from the channel's configured trace.
func (s *Source) Acquire(ctx context.Context, channelID string, sampleCount int, sampleRateHz float64) (domain.SampleBatch, error) {
	if err := ctx.Err(); err != nil {
		return domain.SampleBatch{}, err
	}
	trace, ok := s.traces[channelID]
	if !ok || len(trace.Samples) == 0 {
		return domain.SampleBatch{}, fmt.Errorf("channel %s: %w", channelID, domain.ErrDeviceUnavailable)
	}

	if sampleCount <= 0 {
		sampleCount = len(trace.Samples)
	}
	samples := make([]float64, sampleCount)
	for i := range samples {
		samples[i] = trace.Samples[i%len(trace.Samples)]
	}

	return domain.SampleBatch{
		ChannelID:    channelID,
		Samples:      samples,
		SampleRateHz: sampleRateHz,
		CapturedAt:   time.Now(),
	}, nil
}

// SupportedTerminalModes reports the channel's configured terminal modes.
func (s *Source) SupportedTerminalModes(channelID string) []domain.TerminalMode {
	return s.traces[channelID].Modes
}
