package domain

// ChannelOutcome is the per-channel result of a diagnostic run. Channels are
// independent: one channel's failure never aborts another's analysis, so a
// run returns one outcome per requested channel in request order.
//
// An outcome may be partial. A channel whose catalog has no fitting range
// still carries its calibration record alongside Err.
type ChannelOutcome struct {
	Channel ChannelConfig

	// TerminalMode is the mode actually negotiated with the source.
	TerminalMode TerminalMode

	Stats  *SampleStatistics
	Record *CalibrationRecord
	Range  *RangeRecommendation

	// Fit is present when the reference provider exposed a calibration sweep.
	Fit *ShuntFit

	// Err is the named failure for this channel, if any.
	Err error
}

// Failed reports whether the channel produced no calibration record at all.
func (o ChannelOutcome) Failed() bool {
	return o.Record == nil
}
