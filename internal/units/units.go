// Package units centralizes every volt/millivolt and amp/milliamp conversion
// in the module.
//
// The dominant historical failure mode in shunt sensing is a missed or
// duplicated scale factor. No other package writes a bare *1000 or /1000
// scale literal; every cross-unit computation routes through these named
// functions so that a missing decade shows up in a unit test instead of a
// manual trace.
package units

const milliPerUnit = 1000.0

// MillivoltsToVolts converts millivolts to volts.
func MillivoltsToVolts(mv float64) float64 {
	return mv / milliPerUnit
}

// VoltsToMillivolts converts volts to millivolts.
func VoltsToMillivolts(v float64) float64 {
	return v * milliPerUnit
}

// MilliampsToAmps converts milliamps to amps.
func MilliampsToAmps(ma float64) float64 {
	return ma / milliPerUnit
}

// AmpsToMilliamps converts amps to milliamps.
func AmpsToMilliamps(a float64) float64 {
	return a * milliPerUnit
}
