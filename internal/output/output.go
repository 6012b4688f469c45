// Package output provides formatted output rendering for optimization
// results. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/promptslim/promptslim/internal/config"
	"github.com/promptslim/promptslim/internal/engine"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Report pairs an optimization result with the input it came from.
type Report struct {
	Source string      `json:"source,omitempty"`
	Mode   config.Mode `json:"mode"`
	engine.Result
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteReports outputs a slice of reports in the configured format.
func (wr *Writer) WriteReports(reports []Report) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(reports)
	case FormatTable:
		return wr.writeTable(reports)
	default:
		return wr.writeText(reports)
	}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (wr *Writer) writeText(reports []Report) error {
	for i, r := range reports {
		if len(reports) > 1 {
			if i > 0 {
				fmt.Fprintln(wr.w)
			}
			fmt.Fprintf(wr.w, "==> %s <==\n", r.Source)
		}
		fmt.Fprintln(wr.w, r.Optimized)
	}
	return nil
}

func (wr *Writer) writeTable(reports []Report) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tMODE\tINTENT\tTOKENS\tOPTIMIZED\tSAVED")
	fmt.Fprintln(tw, "------\t----\t------\t------\t---------\t-----")

	for _, r := range reports {
		source := r.Source
		if source == "" {
			source = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d%%\n",
			source, r.Mode, r.Intent, r.OriginalTokens, r.OptimizedTokens, r.SavingsPercent)
	}

	return tw.Flush()
}
