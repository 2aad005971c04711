package analysis

import (
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/stat"

	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/units"
)

// FitShunt fits the affine shunt model v = i*R + v0 over a calibration
// sweep by Levenberg-Marquardt, seeded with an ordinary linear regression.
// The offset term separates a true resistance error from a constant voltage
// offset (thermal EMF, amplifier bias) that a single-point inverse folds
// into the resistance.
//
// Requires at least two sweep points with distinct reference currents;
// returns domain.ErrShortSweep otherwise.
func FitShunt(sweep []domain.SweepPoint) (domain.ShuntFit, error) {
	if len(sweep) < 2 {
		return domain.ShuntFit{}, domain.ErrShortSweep
	}

	amps := make([]float64, len(sweep))
	volts := make([]float64, len(sweep))
	distinct := false
	for i, p := range sweep {
		amps[i] = units.MilliampsToAmps(p.ReferenceMilliamps)
		volts[i] = p.MeasuredVolt
		if i > 0 && amps[i] != amps[0] {
			distinct = true
		}
	}
	if !distinct {
		return domain.ShuntFit{}, domain.ErrShortSweep
	}

	// Regression gives the exact answer for noise-free sweeps; LM refines it
	// for the rest and keeps the solver shared with future nonlinear models.
	offset0, ohms0 := stat.LinearRegression(amps, volts, nil, false)

	residuals := func(dst, p []float64) {
		for k := range amps {
			dst[k] = amps[k]*p[0] + p[1] - volts[k]
		}
	}
	jac := lm.NumJac{Func: residuals}

	problem := lm.LMProblem{
		Dim:        2,
		Size:       len(sweep),
		Func:       residuals,
		Jac:        jac.Jac,
		InitParams: []float64{ohms0, offset0},
		Tau:        1e-13,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	ohms, offset := ohms0, offset0
	if x, ok := solveLM(problem); ok {
		ohms, offset = x[0], x[1]
	}
	// On solver failure the regression seed stands; for an affine model it
	// is already the least-squares optimum.

	fit := domain.ShuntFit{Ohms: ohms, OffsetVolt: offset}

	sum := 0.0
	for k := range amps {
		d := amps[k]*fit.Ohms + fit.OffsetVolt - volts[k]
		sum += d * d
	}
	fit.ResidualVolt = math.Sqrt(sum / float64(len(sweep)))

	return fit, nil
}

// solveLM runs the LM solver, absorbing the panics it raises on singular
// Jacobians.
func solveLM(problem lm.LMProblem) (x []float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			x, ok = nil, false
		}
	}()
	res, err := lm.LM(problem, &lm.Settings{Iterations: 200, ObjectiveTol: 1e-16})
	if err != nil {
		return nil, false
	}
	return res.X, true
}
