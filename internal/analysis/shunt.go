package analysis

import "github.com/sensorlab/shuntscope/internal/domain"

// ForwardCurrentAmps applies Ohm's law forward: the current a shunt of
// shuntOhms carries when dropping voltageVolts across it.
// Returns domain.ErrNonPositiveResistance if shuntOhms <= 0.
func ForwardCurrentAmps(voltageVolts, shuntOhms float64) (float64, error) {
	if shuntOhms <= 0 {
		return 0, domain.ErrNonPositiveResistance
	}
	return voltageVolts / shuntOhms, nil
}

// InverseShuntOhms applies Ohm's law inverse: the resistance a shunt must
// have for voltageVolts to correspond to referenceCurrentAmps.
//
// Returns domain.ErrUndefinedInverse if the reference current is zero; a
// zero reference is a reported condition, never a division fault. Sign is
// preserved: a negative reference with a positive voltage yields a negative
// resistance, which callers classify as a sign mismatch, distinct from any
// scale error.
func InverseShuntOhms(voltageVolts, referenceCurrentAmps float64) (float64, error) {
	if referenceCurrentAmps == 0 {
		return 0, domain.ErrUndefinedInverse
	}
	return voltageVolts / referenceCurrentAmps, nil
}
