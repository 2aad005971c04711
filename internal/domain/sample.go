package domain

import "time"

// SampleBatch is an ordered batch of raw shunt-voltage samples for one
// channel over a time window. A batch is owned exclusively by the aggregation
// call that consumes it and is never mutated after creation.
type SampleBatch struct {
	// ChannelID identifies the channel the samples were read from.
	ChannelID string

	// Samples are the raw voltage readings in volts, in acquisition order.
	// Length must be at least 1.
	Samples []float64

	// SampleRateHz is the acquisition rate. Must be positive.
	SampleRateHz float64

	// CapturedAt is the wall-clock time the window started.
	CapturedAt time.Time
}

// SampleStatistics is the streaming summary of one SampleBatch.
// All voltages are in volts.
type SampleStatistics struct {
	MeanVolt    float64
	MinVolt     float64
	MaxVolt     float64
	StdDevVolt  float64
	SampleCount int
}

// PeakVolt returns the largest absolute excursion of the batch, the quantity
// an acquisition range has to bound.
func (s SampleStatistics) PeakVolt() float64 {
	min, max := s.MinVolt, s.MaxVolt
	if min < 0 {
		min = -min
	}
	if max < 0 {
		max = -max
	}
	if min > max {
		return min
	}
	return max
}

// PeakToPeakVolt returns the observed signal amplitude from min to max.
func (s SampleStatistics) PeakToPeakVolt() float64 {
	return s.MaxVolt - s.MinVolt
}

// SweepPoint is one point of a calibration sweep: an independently measured
// reference current and the shunt voltage observed at that current.
type SweepPoint struct {
	ReferenceMilliamps float64
	MeasuredVolt       float64
}
