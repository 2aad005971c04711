package domain

// RangeCandidate is one acquisition range a device supports. Catalogs are
// hardware-specific and static per device.
type RangeCandidate struct {
	MinVolt float64
	MaxVolt float64
}

// Width returns the span of the candidate in volts.
func (c RangeCandidate) Width() float64 {
	return c.MaxVolt - c.MinVolt
}

// RangeRecommendation is the optimizer's pick: the narrowest supported range
// that still bounds the observed signal with the configured safety margin.
type RangeRecommendation struct {
	Candidate RangeCandidate

	// HeadroomRatio is the chosen range width divided by the observed
	// peak-to-peak amplitude.
	HeadroomRatio float64
}
