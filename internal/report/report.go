// Package report renders diagnostic outcomes into a stable, human-diffable
// tabular structure. Building a report has no side effects; delivering it to
// a sink (stdout, file, PDF) is an adapter concern.
package report

import (
	"time"

	"github.com/sensorlab/shuntscope/internal/domain"
)

// Row is one channel's line in the diagnostic report.
type Row struct {
	ChannelID    string
	TerminalMode string

	// Currents in milliamps. Meaningful only when HasRecord is true.
	DeviceMilliamps    float64
	ReferenceMilliamps float64

	Ratio        float64
	RatioDefined bool
	Anomaly      string

	ConfiguredShuntOhms float64
	DerivedShuntOhms    float64

	// Fitted shunt parameters, present when a calibration sweep was fitted.
	FittedShuntOhms  float64
	FittedOffsetVolt float64
	HasFit           bool

	// Recommended acquisition range, when one fits.
	RangeLabel    string
	HeadroomRatio float64
	HasRange      bool

	HasRecord bool

	// Failure names the channel's error, empty on full success.
	Failure string
}

// Report is the run summary: one row per requested channel, in request
// order, so consecutive runs diff cleanly.
type Report struct {
	DeviceID    string
	GeneratedAt time.Time
	Rows        []Row
}

// Build converts per-channel outcomes into report rows. It is a pure
// rendering of the outcome set; outcomes with partial results (a record but
// no fitting range, say) produce a row carrying both the numbers and the
// failure name.
func Build(deviceID string, outcomes []domain.ChannelOutcome) Report {
	rep := Report{
		DeviceID:    deviceID,
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]Row, 0, len(outcomes)),
	}

	for _, o := range outcomes {
		row := Row{
			ChannelID:           o.Channel.ID,
			TerminalMode:        o.TerminalMode.String(),
			ConfiguredShuntOhms: o.Channel.ShuntOhms,
		}
		if o.Record != nil {
			row.HasRecord = true
			row.DeviceMilliamps = o.Record.DeviceMilliamps
			row.ReferenceMilliamps = o.Record.ReferenceMilliamps
			row.Ratio = o.Record.Ratio
			row.RatioDefined = o.Record.RatioDefined
			row.Anomaly = o.Record.Anomaly.String()
			row.DerivedShuntOhms = o.Record.DerivedShuntOhms
		}
		if o.Fit != nil {
			row.HasFit = true
			row.FittedShuntOhms = o.Fit.Ohms
			row.FittedOffsetVolt = o.Fit.OffsetVolt
		}
		if o.Range != nil {
			row.HasRange = true
			row.RangeLabel = domain.Range{
				MinVolt: o.Range.Candidate.MinVolt,
				MaxVolt: o.Range.Candidate.MaxVolt,
			}.String()
			row.HeadroomRatio = o.Range.HeadroomRatio
		}
		if o.Err != nil {
			row.Failure = o.Err.Error()
		}
		rep.Rows = append(rep.Rows, row)
	}

	return rep
}
