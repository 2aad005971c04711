package ports

import "github.com/sensorlab/shuntscope/internal/domain"

// ReferenceProvider supplies the independently measured reference current a
// channel's device reading is checked against. An implementation may be as
// simple as a fixed lookup table supplied at configuration time.
type ReferenceProvider interface {
	// ReferenceCurrentMilliamps returns the reference current for a channel.
	// Returns domain.ErrNoReferenceSignal when no reference exists; the
	// channel is then reported with an undefined ratio rather than failed.
	ReferenceCurrentMilliamps(channelID string) (float64, error)

	// CalibrationSweep returns the multi-point sweep for a channel, if the
	// provider has one. Sweeps enable the affine shunt fit, which a single
	// reference point cannot support.
	CalibrationSweep(channelID string) ([]domain.SweepPoint, bool)
}
