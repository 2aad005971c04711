package ports

import "github.com/sensorlab/shuntscope/internal/domain"

// RangeCatalog lists the acquisition ranges a device supports. Catalogs are
// hardware-specific and static per device.
type RangeCatalog interface {
	// SupportedRanges returns the candidate ranges for a device.
	SupportedRanges(deviceID string) []domain.RangeCandidate
}
