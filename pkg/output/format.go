// Package output renders reports for the terminal.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/grain-loss/internal/report"
	"github.com/iwvelando/grain-loss/pkg/constants"
	"golang.org/x/text/width"
)

// Write renders rep in the named output format.
func Write(w io.Writer, outputFormat string, rep *report.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty, "":
		return PrettyFormat(w, rep)
	case constants.OutputFormatCSV:
		return CsvFormat(w, rep)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// PrettyFormat outputs a human-readable table of the report's inputs and
// results. Labels are padded by display width so CJK text lines up.
func PrettyFormat(w io.Writer, rep *report.Report) error {
	labelWidth := 0
	for _, f := range rep.Fields {
		labelWidth = max(labelWidth, displayWidth(f.Label))
	}
	for _, r := range rep.Rows {
		labelWidth = max(labelWidth, displayWidth(r.Label))
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "--- %s ---\n", rep.Title)
	if unit := rep.Header.Unit(); unit != "" {
		_, _ = fmt.Fprintf(&b, "%s | %s\n", pad("填报单位", labelWidth), unit)
	}
	if rep.Header.LocationNumber != "" {
		_, _ = fmt.Fprintf(&b, "%s | %s\n", pad("货位号", labelWidth), rep.Header.LocationNumber)
	}
	for _, f := range rep.Fields {
		_, _ = fmt.Fprintf(&b, "%s | %s\n", pad(f.Label, labelWidth), orEmpty(f.Value))
	}
	_, _ = fmt.Fprintf(&b, "%s\n", strings.Repeat("_", labelWidth+12))
	for _, r := range rep.Rows {
		marker := ""
		if r.Warning {
			marker = " !"
		}
		_, _ = fmt.Fprintf(&b, "%s | %s%s\n", pad(r.Label, labelWidth), r.Value, marker)
	}
	for _, n := range rep.Notices {
		_, _ = fmt.Fprintf(&b, "* %s\n", n.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs the report as label,value records: inputs first, then
// results.
func CsvFormat(w io.Writer, rep *report.Report) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"label", "value", "warning"}}
	for _, f := range rep.Fields {
		records = append(records, []string{f.Label, f.Value, ""})
	}
	for _, r := range rep.Rows {
		warning := ""
		if r.Warning {
			warning = constants.YesLabel
		}
		records = append(records, []string{r.Label, r.Value, warning})
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, to int) string {
	if gap := to - displayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.EmptyCell
	}
	return s
}
