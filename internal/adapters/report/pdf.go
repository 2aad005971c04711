// Package report renders diagnostic reports to PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/sensorlab/shuntscope/internal/report"
)

const (
	inchToMm       = 25.4
	pageWidth      = 11 * inchToMm // Letter landscape
	pageMargin     = 0.5 * inchToMm
	contentWidth   = pageWidth - 2*pageMargin
	rowHeight      = 6.0
	headerFontSize = 9.0
	cellFontSize   = 9.0
)

// column widths in mm, summing to contentWidth
var columnWidths = []float64{22, 22, 26, 30, 18, 46, 26, 26, 28, 20}

var columnTitles = []string{
	"Channel", "Mode", "Device mA", "Reference mA", "Ratio",
	"Anomaly", "Shunt cfg", "Shunt derived", "Range", "Headroom",
}

// PDFSink implements ports.ReportSink by rendering the report as a PDF
// table and writing it atomically to a file.
type PDFSink struct {
	path string
}

// NewPDFSink creates a sink that writes to the given path.
func NewPDFSink(path string) *PDFSink {
	return &PDFSink{path: path}
}

// Write renders and persists the report.
func (s *PDFSink) Write(ctx context.Context, rep report.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(contentWidth, 10, "Shunt Calibration Diagnostic Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(contentWidth, 6,
		fmt.Sprintf("Device: %s    Generated: %s", rep.DeviceID, rep.GeneratedAt.Format(time.RFC3339)),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeHeaderRow(pdf)
	for _, row := range rep.Rows {
		writeDataRow(pdf, row)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Path returns the sink's target path.
func (s *PDFSink) Path() string {
	return s.path
}

func writeHeaderRow(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", headerFontSize)
	pdf.SetFillColor(200, 200, 200)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], rowHeight, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeDataRow(pdf *gofpdf.Fpdf, row report.Row) {
	anomalous := row.HasRecord && row.Anomaly != "CONSISTENT"
	if anomalous || row.Failure != "" {
		pdf.SetFont("Arial", "B", cellFontSize)
		pdf.SetTextColor(200, 0, 0)
	} else {
		pdf.SetFont("Arial", "", cellFontSize)
		pdf.SetTextColor(50, 50, 50)
	}

	cells := rowCells(row)
	for i, cell := range cells {
		pdf.CellFormat(columnWidths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)

	if row.Failure != "" {
		pdf.SetFont("Arial", "I", cellFontSize)
		pdf.CellFormat(contentWidth, rowHeight, "  "+row.Failure, "1", 1, "L", false, 0, "")
	}
}

func rowCells(row report.Row) []string {
	dash := "-"
	cells := make([]string, len(columnTitles))
	for i := range cells {
		cells[i] = dash
	}
	cells[0] = row.ChannelID
	cells[1] = row.TerminalMode
	if row.HasRecord {
		cells[2] = formatFloat(row.DeviceMilliamps)
		cells[3] = formatFloat(row.ReferenceMilliamps)
		if row.RatioDefined {
			cells[4] = formatFloat(row.Ratio)
		}
		cells[5] = row.Anomaly
		cells[6] = formatFloat(row.ConfiguredShuntOhms)
		if row.RatioDefined {
			cells[7] = formatFloat(row.DerivedShuntOhms)
		}
	}
	if row.HasRange {
		cells[8] = row.RangeLabel
		cells[9] = formatFloat(row.HeadroomRatio)
	}
	return cells
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
