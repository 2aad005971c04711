package domain

// AnomalyClass names the systematic-error pattern found when a device-reported
// current disagrees with the independently measured reference current.
type AnomalyClass int

const (
	// AnomalyConsistent means device and reference agree within tolerance.
	AnomalyConsistent AnomalyClass = iota

	// AnomalyDecadeScale means the ratio is close to 10 or 0.1: a shunt
	// resistance or gain configured one order of magnitude off.
	AnomalyDecadeScale

	// AnomalyUnitConversion means the ratio is close to 1000 or 0.001: a
	// millivolt value used where a volt value was expected, or vice versa.
	AnomalyUnitConversion

	// AnomalyUnclassified means the ratio is outside tolerance but matches
	// no known pattern. A finding for human follow-up, not an error.
	AnomalyUnclassified

	// AnomalySignMismatch means the derived shunt resistance came out
	// negative: reference current and measured voltage disagree in sign.
	AnomalySignMismatch

	// AnomalyNoReference marks records whose ratio is undefined because the
	// reference current was zero. Excluded from ratio classification.
	AnomalyNoReference
)

// String returns the report-facing name of the anomaly class.
func (a AnomalyClass) String() string {
	switch a {
	case AnomalyConsistent:
		return "CONSISTENT"
	case AnomalyDecadeScale:
		return "DECADE_SCALE_ERROR"
	case AnomalyUnitConversion:
		return "UNIT_CONVERSION_ERROR"
	case AnomalyUnclassified:
		return "UNCLASSIFIED_DEVIATION"
	case AnomalySignMismatch:
		return "SIGN_MISMATCH"
	case AnomalyNoReference:
		return "NO_REFERENCE_SIGNAL"
	default:
		return "UNKNOWN"
	}
}

// CalibrationRecord is the device-vs-reference comparison for one channel at
// one instant. Invariant: DerivedShuntOhms = meanVolt / (ReferenceMilliamps/1000)
// whenever the reference current is nonzero; when it is zero the record
// carries RatioDefined=false instead of a NaN.
type CalibrationRecord struct {
	ChannelID string

	// DeviceMilliamps is the current the device arithmetic reports, computed
	// from the mean shunt voltage and the configured shunt resistance.
	DeviceMilliamps float64

	// ReferenceMilliamps is the externally supplied truth.
	ReferenceMilliamps float64

	// ConfiguredShuntOhms is the resistance the channel was set up with.
	ConfiguredShuntOhms float64

	// DerivedShuntOhms is the resistance the shunt must actually have for the
	// measured voltage to match the reference current. Meaningless when
	// RatioDefined is false.
	DerivedShuntOhms float64

	// Ratio is DeviceMilliamps / ReferenceMilliamps.
	Ratio float64

	// RatioDefined is false when the reference current was zero.
	RatioDefined bool

	Anomaly AnomalyClass
}

// ShuntFit is the result of fitting the affine shunt model v = i*R + v0 over
// a calibration sweep. It separates a true resistance error from a constant
// voltage offset that a single-point inverse cannot distinguish.
type ShuntFit struct {
	// Ohms is the fitted shunt resistance.
	Ohms float64

	// OffsetVolt is the fitted constant voltage offset.
	OffsetVolt float64

	// ResidualVolt is the root-mean-square residual of the fit.
	ResidualVolt float64
}
