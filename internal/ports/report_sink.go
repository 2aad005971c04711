package ports

import (
	"context"

	"github.com/sensorlab/shuntscope/internal/report"
)

// ReportSink receives a built diagnostic report. Writing a report anywhere
// (stdout, file, PDF) is an adapter concern; the core only produces the
// structure.
type ReportSink interface {
	// Write delivers the report to the sink.
	Write(ctx context.Context, rep report.Report) error
}
