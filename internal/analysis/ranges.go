package analysis

import (
	"math"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// DefaultMarginRatio is the safety margin the optimizer keeps between the
// observed peak and the chosen range bound.
const DefaultMarginRatio = 0.2

// RecommendRange picks the narrowest catalog range that bounds the observed
// peak with the given margin on both sides, maximizing resolution for a
// fixed-bit ADC. marginRatio <= 0 means DefaultMarginRatio.
//
// Candidates tie on width occasionally (a catalog may list the same span at
// different offsets); the tie-break prefers the candidate whose headroom
// ratio sits closest to the target margin, so the pick neither over- nor
// under-provisions systematically.
//
// Returns domain.ErrNoRangeFits when no candidate is wide enough; the caller
// must widen the catalog or re-acquire.
func RecommendRange(observedPeakVolt float64, catalog []domain.RangeCandidate, marginRatio float64) (domain.RangeRecommendation, error) {
	if marginRatio <= 0 {
		marginRatio = DefaultMarginRatio
	}
	need := observedPeakVolt * (1 + marginRatio)

	best := -1
	for i, cand := range catalog {
		if cand.MaxVolt < need || cand.MinVolt > -need {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		bw, cw := catalog[best].Width(), cand.Width()
		switch {
		case cw < bw:
			best = i
		case cw == bw:
			if headroomDistance(cand, observedPeakVolt, marginRatio) <
				headroomDistance(catalog[best], observedPeakVolt, marginRatio) {
				best = i
			}
		}
	}
	if best < 0 {
		return domain.RangeRecommendation{}, domain.ErrNoRangeFits
	}

	return domain.RangeRecommendation{
		Candidate:     catalog[best],
		HeadroomRatio: headroomRatio(catalog[best], observedPeakVolt),
	}, nil
}

// headroomRatio is the candidate width over the observed peak-to-peak
// amplitude. A zero peak means unlimited headroom.
func headroomRatio(cand domain.RangeCandidate, peak float64) float64 {
	if peak == 0 {
		return math.Inf(1)
	}
	return cand.Width() / (2 * peak)
}

// headroomDistance measures how far a candidate's headroom sits from the
// target margin.
func headroomDistance(cand domain.RangeCandidate, peak, margin float64) float64 {
	return math.Abs(headroomRatio(cand, peak) - (1 + margin))
}
