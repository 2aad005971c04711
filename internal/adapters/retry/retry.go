// Package retry decorates a sample source with exponential backoff for
// transient acquisition failures.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/ports"
)

// Default backoff configuration values.
const (
	DefaultInitial  = 500 * time.Millisecond
	DefaultMax      = 10 * time.Second
	DefaultAttempts = 3
)

// Source wraps a sample source and retries acquisitions that fail with a
// retryable error. Non-retryable errors pass through on the first attempt.
type Source struct {
	inner    ports.SampleSource
	logger   ports.Logger
	initial  time.Duration
	max      time.Duration
	attempts int
}

// Option adjusts the retry policy.
type Option func(*Source)

// WithBackoff sets the initial and maximum backoff durations.
func WithBackoff(initial, max time.Duration) Option {
	return func(s *Source) {
		s.initial = initial
		s.max = max
	}
}

// WithAttempts sets the total number of acquisition attempts.
func WithAttempts(attempts int) Option {
	return func(s *Source) {
		s.attempts = attempts
	}
}

// NewSource wraps inner with the default retry policy.
func NewSource(inner ports.SampleSource, logger ports.Logger, opts ...Option) *Source {
	s := &Source{
		inner:    inner,
		logger:   logger,
		initial:  DefaultInitial,
		max:      DefaultMax,
		attempts: DefaultAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.attempts < 1 {
		s.attempts = 1
	}
	return s
}

// Acquire acquires through the inner source, retrying retryable failures
// with exponentially increasing, jittered delays. The context bounds the
// whole sequence including the sleeps.
func (s *Source) Acquire(ctx context.Context, channelID string, sampleCount int, sampleRateHz float64) (domain.SampleBatch, error) {
	delay := s.initial
	var lastErr error

	for attempt := 1; attempt <= s.attempts; attempt++ {
		batch, err := s.inner.Acquire(ctx, channelID, sampleCount, sampleRateHz)
		if err == nil {
			return batch, nil
		}
		lastErr = err
		if !domain.Retryable(err) || attempt == s.attempts {
			break
		}

		s.logger.Warn("acquisition retry",
			ports.String("channel", channelID),
			ports.Int("attempt", attempt),
			ports.Duration("backoff", delay),
			ports.Err(err),
		)

		// ±20% jitter
		jitter := float64(delay) * 0.2 * (rand.Float64()*2 - 1)
		select {
		case <-ctx.Done():
			return domain.SampleBatch{}, ctx.Err()
		case <-time.After(time.Duration(float64(delay) + jitter)):
		}

		delay *= 2
		if delay > s.max {
			delay = s.max
		}
	}
	return domain.SampleBatch{}, lastErr
}

// SupportedTerminalModes delegates to the inner source.
func (s *Source) SupportedTerminalModes(channelID string) []domain.TerminalMode {
	return s.inner.SupportedTerminalModes(channelID)
}
