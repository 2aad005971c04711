// Package fs persists rendered diagnostic reports to the filesystem.
package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/sensorlab/shuntscope/internal/report"
)

// ReportFileSink implements ports.ReportSink by writing the text rendering
// of a report to a file.
type ReportFileSink struct {
	path string
}

// NewReportFileSink creates a sink that writes to the given path.
func NewReportFileSink(path string) *ReportFileSink {
	return &ReportFileSink{path: path}
}

// Write renders the report and persists it atomically.
// Uses atomic write (write to temp file, then rename) to prevent a reader
// ever seeing a partial report.
func (s *ReportFileSink) Write(ctx context.Context, rep report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.RenderText(&buf, rep); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Path returns the sink's target path.
func (s *ReportFileSink) Path() string {
	return s.path
}
