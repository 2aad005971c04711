package analysis

import (
	"github.com/sensorlab/shuntscope/internal/domain"
	"github.com/sensorlab/shuntscope/internal/units"
)

// Comparator cross-checks a device-reported current against the reference
// current for the same channel and instant, and classifies the ratio.
type Comparator struct {
	Classifier Classifier
}

// Compare computes the device current from the configured shunt, the derived
// shunt from the reference current, and the ratio between the two currents.
//
// A zero reference current yields a record with an undefined ratio and
// anomaly NO_REFERENCE_SIGNAL together with domain.ErrNoReferenceSignal; the
// record is excluded from ratio classification, not dropped. A negative
// derived resistance is classified as a sign mismatch before any scale band
// is consulted.
func (c Comparator) Compare(channel domain.ChannelConfig, deviceMeanVolt, referenceMilliamps float64) (domain.CalibrationRecord, error) {
	deviceAmps, err := ForwardCurrentAmps(deviceMeanVolt, channel.ShuntOhms)
	if err != nil {
		return domain.CalibrationRecord{}, err
	}

	rec := domain.CalibrationRecord{
		ChannelID:           channel.ID,
		DeviceMilliamps:     units.AmpsToMilliamps(deviceAmps),
		ReferenceMilliamps:  referenceMilliamps,
		ConfiguredShuntOhms: channel.ShuntOhms,
	}

	if referenceMilliamps == 0 {
		rec.Anomaly = domain.AnomalyNoReference
		return rec, domain.ErrNoReferenceSignal
	}

	derived, err := InverseShuntOhms(deviceMeanVolt, units.MilliampsToAmps(referenceMilliamps))
	if err != nil {
		return domain.CalibrationRecord{}, err
	}
	rec.DerivedShuntOhms = derived
	rec.Ratio = rec.DeviceMilliamps / referenceMilliamps
	rec.RatioDefined = true

	if derived < 0 {
		rec.Anomaly = domain.AnomalySignMismatch
		return rec, domain.ErrSignMismatch
	}

	rec.Anomaly = c.Classifier.Classify(rec.Ratio)
	return rec, nil
}
