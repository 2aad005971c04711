package analysis

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/units"
)

func TestFitShuntRecoversModel(t *testing.T) {
	const (
		ohms   = 0.0318
		offset = 2e-6
	)
	var sweep []domain.SweepPoint
	for _, ma := range []float64{0.1, 0.2, 0.409, 0.8, 1.2, 1.709} {
		sweep = append(sweep, domain.SweepPoint{
			ReferenceMilliamps: ma,
			MeasuredVolt:       units.MilliampsToAmps(ma)*ohms + offset,
		})
	}

	fit, err := FitShunt(sweep)
	if err != nil {
		t.Fatalf("FitShunt returned error: %v", err)
	}
	if math.Abs(fit.Ohms-ohms) > 1e-6 {
		t.Fatalf("fitted R = %g, want %g", fit.Ohms, ohms)
	}
	if math.Abs(fit.OffsetVolt-offset) > 1e-9 {
		t.Fatalf("fitted offset = %g, want %g", fit.OffsetVolt, offset)
	}
	if fit.ResidualVolt > 1e-9 {
		t.Fatalf("residual = %g on a noise-free sweep", fit.ResidualVolt)
	}
}

func TestFitShuntWithNoise(t *testing.T) {
	const ohms = 0.005
	rng := rand.New(rand.NewSource(3))

	var sweep []domain.SweepPoint
	for ma := 0.2; ma <= 4.0; ma += 0.2 {
		v := units.MilliampsToAmps(ma) * ohms
		sweep = append(sweep, domain.SweepPoint{
			ReferenceMilliamps: ma,
			MeasuredVolt:       v + rng.NormFloat64()*v*0.005,
		})
	}

	fit, err := FitShunt(sweep)
	if err != nil {
		t.Fatalf("FitShunt returned error: %v", err)
	}
	if math.Abs(fit.Ohms-ohms) > ohms*0.02 {
		t.Fatalf("fitted R = %g, want %g within 2%%", fit.Ohms, ohms)
	}
}

func TestFitShuntShortSweep(t *testing.T) {
	_, err := FitShunt([]domain.SweepPoint{{ReferenceMilliamps: 1, MeasuredVolt: 0.005}})
	if !errors.Is(err, domain.ErrShortSweep) {
		t.Fatalf("expected ErrShortSweep, got %v", err)
	}

	// Two points at the same current are just as degenerate.
	_, err = FitShunt([]domain.SweepPoint{
		{ReferenceMilliamps: 1, MeasuredVolt: 0.005},
		{ReferenceMilliamps: 1, MeasuredVolt: 0.0051},
	})
	if !errors.Is(err, domain.ErrShortSweep) {
		t.Fatalf("expected ErrShortSweep for degenerate sweep, got %v", err)
	}
}
