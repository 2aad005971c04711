package domain

import "errors"

// Domain errors represent named conditions in the shuntscope domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrEmptyBatch is returned when a sample batch has no samples.
	ErrEmptyBatch = errors.New("shuntscope: empty sample batch")

	// ErrNonPositiveResistance is returned when a shunt resistance of zero or
	// below enters the forward current computation.
	ErrNonPositiveResistance = errors.New("shuntscope: non-positive shunt resistance")

	// ErrUndefinedInverse is returned when the inverse shunt computation is
	// asked to divide by a zero reference current.
	ErrUndefinedInverse = errors.New("shuntscope: inverse undefined for zero reference current")

	// ErrSignMismatch is returned when a derived shunt resistance comes out
	// negative: measured voltage and reference current disagree in sign.
	ErrSignMismatch = errors.New("shuntscope: sign mismatch between voltage and reference current")

	// ErrNoReferenceSignal is returned when no reference current is available
	// for a channel. The record is still emitted with an undefined ratio.
	ErrNoReferenceSignal = errors.New("shuntscope: no reference signal")

	// ErrNoRangeFits is returned when no catalog range is wide enough for the
	// observed signal peak. The caller must widen the catalog or re-acquire.
	ErrNoRangeFits = errors.New("shuntscope: no supported range fits observed peak")

	// ErrShortSweep is returned when a calibration sweep has fewer than two
	// distinct reference currents, making the affine fit degenerate.
	ErrShortSweep = errors.New("shuntscope: calibration sweep too short to fit")

	// ErrAcquisitionTimeout is returned when a sample source does not deliver
	// a batch in time. Retryable.
	ErrAcquisitionTimeout = errors.New("shuntscope: acquisition timeout")

	// ErrDeviceUnavailable is returned when the acquisition device cannot be
	// reached. Retryable.
	ErrDeviceUnavailable = errors.New("shuntscope: device unavailable")

	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("shuntscope: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("shuntscope: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("shuntscope: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("shuntscope: invalid configuration")
)

// Retryable reports whether an error names a transient acquisition condition.
// Retry policy belongs to the collaborator at the edge, never to the core.
func Retryable(err error) bool {
	return errors.Is(err, ErrAcquisitionTimeout) || errors.Is(err, ErrDeviceUnavailable)
}
