// Package render writes balancing reports for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/syohex/go-texttable"

	"github.com/okian/teamgen/internal/domain/types"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Write renders rep in the given format.
func Write(w io.Writer, format string, rep types.Report) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return Table(w, rep)
	case FormatJSON:
		return JSON(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Table prints one text table per team followed by the run summary.
func Table(w io.Writer, rep types.Report) error {
	var b strings.Builder
	for _, team := range rep.Teams {
		tbl := &texttable.TextTable{}
		_ = tbl.SetHeader("#", "Player", "Rating")
		for i, m := range team.Members {
			name := m.Name
			if m.Guest && !strings.Contains(name, "(Guest)") {
				name += " (Guest)"
			}
			_ = tbl.AddRow(fmt.Sprintf("%d", i+1), name, formatRating(m.Rating))
		}
		fmt.Fprintf(&b, "%s  total %s  avg %s\n", team.Name, formatRating(team.Total), formatRating(team.Average))
		b.WriteString(tbl.Draw())
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "strategy %s  imbalance %s", rep.Strategy, formatRating(rep.Imbalance))
	if rep.Generations > 0 {
		fmt.Fprintf(&b, "  generations %d", rep.Generations)
	}
	if rep.EarlyExit {
		b.WriteString("  (early exit)")
	}
	b.WriteString("\n")
	if len(rep.Unmatched) > 0 {
		fmt.Fprintf(&b, "unmatched: %s\n", strings.Join(rep.Unmatched, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes rep as an indented JSON document.
func JSON(w io.Writer, rep types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func formatRating(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
