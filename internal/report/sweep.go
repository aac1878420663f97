package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goapriori/internal/apriori"
)

// SweepRow summarizes one run of a support sweep.
type SweepRow struct {
	MinSupport     float64 `json:"min_support" yaml:"min_support"`
	Levels         int     `json:"levels" yaml:"levels"`
	Itemsets       int     `json:"itemsets" yaml:"itemsets"`
	Candidates     int     `json:"candidates" yaml:"candidates"`
	Rules          int     `json:"rules" yaml:"rules"`
	BestConfidence float64 `json:"best_confidence" yaml:"best_confidence"`
}

// NewSweepRow condenses a Result.
func NewSweepRow(res *apriori.Result) SweepRow {
	row := SweepRow{
		MinSupport: res.Params.MinSupport,
		Levels:     res.Table.Len(),
		Itemsets:   res.Table.Count(),
		Candidates: res.Stats.Candidates,
		Rules:      len(res.Rules),
	}
	if len(res.Rules) > 0 {
		row.BestConfidence = res.Rules[0].Confidence
	}
	return row
}

var sweepColumns = []string{"min support", "levels", "itemsets", "candidates", "rules", "best confidence"}

// RenderSweep writes one row per result, in the order given.
func RenderSweep(w io.Writer, results []*apriori.Result, opts Options) error {
	rows := make([]SweepRow, 0, len(results))
	for _, res := range results {
		rows = append(rows, NewSweepRow(res))
	}

	switch opts.Format {
	case FormatText, "":
		return renderSweepText(w, rows, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

func renderSweepText(w io.Writer, rows []SweepRow, opts Options) error {
	p := painter{enabled: opts.Color}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			formatPercent(r.MinSupport),
			fmt.Sprint(r.Levels),
			fmt.Sprint(r.Itemsets),
			fmt.Sprint(r.Candidates),
			fmt.Sprint(r.Rules),
			fmt.Sprintf("%.2f", r.BestConfidence),
		})
	}

	widths := make([]int, len(sweepColumns))
	for i, c := range sweepColumns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range cells {
		for i, c := range row {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	writeHeader(&sb, p, "Support sweep")
	sb.WriteString("\n")

	header := make([]string, len(sweepColumns))
	for i, c := range sweepColumns {
		header[i] = runewidth.FillRight(c, widths[i])
	}
	sb.WriteString(p.paint(headerStyle, strings.TrimRight(strings.Join(header, "  "), " ")))
	sb.WriteString("\n")

	for _, row := range cells {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = runewidth.FillLeft(c, widths[i])
		}
		sb.WriteString(strings.Join(line, "  "))
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
