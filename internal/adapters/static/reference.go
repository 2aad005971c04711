package static

import (
	"fmt"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// Reference serves configured reference currents and calibration sweeps
// through the reference-provider port.
type Reference struct {
	currents map[string]float64
	sweeps   map[string][]domain.SweepPoint
}

// NewReference creates a reference provider from configured tables. Either
// map may be nil.
func NewReference(currents map[string]float64, sweeps map[string][]domain.SweepPoint) *Reference {
	return &Reference{currents: currents, sweeps: sweeps}
}

// ReferenceCurrentMilliamps returns the configured reference current for the
// channel, or ErrNoReferenceSignal when none is configured.
func (r *Reference) ReferenceCurrentMilliamps(channelID string) (float64, error) {
	ma, ok := r.currents[channelID]
	if !ok {
		return 0, fmt.Errorf("channel %s: %w", channelID, domain.ErrNoReferenceSignal)
	}
	return ma, nil
}

// CalibrationSweep returns the configured sweep for the channel, if any.
func (r *Reference) CalibrationSweep(channelID string) ([]domain.SweepPoint, bool) {
	sweep, ok := r.sweeps[channelID]
	if !ok || len(sweep) == 0 {
		return nil, false
	}
	return sweep, true
}
