package analysis

import (
	"math"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// DefaultTolerance is the relative half-width of each classification band.
// The original field procedure never pins an exact boundary, so the value is
// configurable rather than hard-coded.
const DefaultTolerance = 0.10

// Classifier maps a device/reference current ratio to a named
// systematic-error class using tolerance bands around the known patterns.
type Classifier struct {
	// Tolerance is the relative band half-width. Zero means DefaultTolerance.
	Tolerance float64
}

// Classify maps a finite ratio to exactly one anomaly class. The decade and
// unit-conversion bands are checked before falling through to unclassified;
// at the default tolerance the bands cannot overlap since their centers are
// orders of magnitude apart. Undefined ratios are rejected upstream by the
// comparator and never reach the classifier.
func (c Classifier) Classify(ratio float64) domain.AnomalyClass {
	tol := c.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	r := math.Abs(ratio)

	switch {
	case within(r, 1, tol):
		return domain.AnomalyConsistent
	case within(r, 10, tol) || within(r, 0.1, tol):
		return domain.AnomalyDecadeScale
	case within(r, 1000, tol) || within(r, 0.001, tol):
		return domain.AnomalyUnitConversion
	}
	return domain.AnomalyUnclassified
}

// within reports whether r falls inside the relative tolerance band
// center*(1±tol).
func within(r, center, tol float64) bool {
	return math.Abs(r-center) <= center*tol
}
