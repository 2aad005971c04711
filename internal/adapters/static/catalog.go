package static

import "github.com/sensorlab/shuntscope/internal/domain"

// defaultRanges is the bipolar gain ladder common to general-purpose DAQ
// front ends: +-10 V down to +-10 mV in decade steps.
var defaultRanges = []domain.RangeCandidate{
	{MinVolt: -10, MaxVolt: 10},
	{MinVolt: -1, MaxVolt: 1},
	{MinVolt: -0.1, MaxVolt: 0.1},
	{MinVolt: -0.01, MaxVolt: 0.01},
}

// Catalog serves per-device range tables through the range-catalog port.
type Catalog struct {
	ranges map[string][]domain.RangeCandidate
}

// NewCatalog creates a catalog from a device-to-ranges map. Devices absent
// from the map fall back to the default ladder.
func NewCatalog(ranges map[string][]domain.RangeCandidate) *Catalog {
	return &Catalog{ranges: ranges}
}

// DefaultCatalog returns a catalog that serves the default ladder for every
// device.
func DefaultCatalog() *Catalog {
	return NewCatalog(nil)
}

// SupportedRanges returns the device's range table.
func (c *Catalog) SupportedRanges(deviceID string) []domain.RangeCandidate {
	if ranges, ok := c.ranges[deviceID]; ok {
		return ranges
	}
	return defaultRanges
}
