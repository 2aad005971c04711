package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// RenderText writes the report as an aligned plain-text table. Column set
// and ordering are fixed so that two runs over the same channels diff
// line-by-line.
func RenderText(w io.Writer, rep Report) error {
	fmt.Fprintf(w, "shunt diagnostics for %s at %s\n\n",
		rep.DeviceID, rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANNEL\tMODE\tDEVICE mA\tREFERENCE mA\tRATIO\tANOMALY\tSHUNT cfg/derived\tRANGE\tHEADROOM\tNOTE")

	for _, row := range rep.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.ChannelID,
			row.TerminalMode,
			cell(row.HasRecord, "%.4g", row.DeviceMilliamps),
			cell(row.HasRecord, "%.4g", row.ReferenceMilliamps),
			cell(row.RatioDefined, "%.3f", row.Ratio),
			orDash(row.Anomaly),
			shuntCell(row),
			orDash(row.RangeLabel),
			cell(row.HasRange, "%.2f", row.HeadroomRatio),
			orDash(row.Failure),
		)
	}
	return tw.Flush()
}

func shuntCell(row Row) string {
	if !row.HasRecord || !row.RatioDefined {
		return fmt.Sprintf("%.4g / -", row.ConfiguredShuntOhms)
	}
	s := fmt.Sprintf("%.4g / %.4g", row.ConfiguredShuntOhms, row.DerivedShuntOhms)
	if row.HasFit {
		s += fmt.Sprintf(" (fit %.4g, offset %.3g V)", row.FittedShuntOhms, row.FittedOffsetVolt)
	}
	return s
}

func cell(ok bool, format string, v float64) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf(format, v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
