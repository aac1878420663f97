package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goapriori/internal/apriori"
)

type painter struct {
	enabled bool
}

func (p painter) paint(style color.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Sprint(s)
}

var (
	headerStyle = color.Style{color.FgCyan, color.OpBold}
	numberStyle = color.Style{color.FgYellow}
	ruleStyle   = color.Style{color.FgGreen}
	dimStyle    = color.Style{color.FgGray}
)

func renderText(w io.Writer, res *apriori.Result, opts Options) error {
	p := painter{enabled: opts.Color}
	var sb strings.Builder

	fmt.Fprintf(&sb, "Number of items: %d\n", res.ItemCount)
	fmt.Fprintf(&sb, "Number of transactions: %d\n", res.TransactionCount)
	sb.WriteString("\n")
	writeHeader(&sb, p, "Apriori")
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Minimum support: %s (%d transactions)\n",
		p.paint(numberStyle, formatPercent(res.Params.MinSupport)), res.TransactionCount)
	fmt.Fprintf(&sb, "Minimum confidence: %s\n",
		p.paint(numberStyle, fmt.Sprintf("%g", res.Params.MinConfidence)))
	fmt.Fprintf(&sb, "Itemset level: %d\n", res.Params.ItemsetLevel)

	if opts.ShowItemsets {
		sb.WriteString("\n")
		writeItemsets(&sb, p, res)
	}

	sb.WriteString("\n")
	writeHeader(&sb, p, "Best association rules")
	if len(res.Rules) == 0 {
		sb.WriteString("\n")
		sb.WriteString(p.paint(dimStyle, "No rules met the thresholds."))
		sb.WriteString("\n")
	}
	width := len(fmt.Sprint(len(res.Rules)))
	for i, r := range res.Rules {
		num := fmt.Sprintf("%*d.", width, i+1)
		fmt.Fprintf(&sb, "\n%s %s ==> %s %s\n",
			num,
			p.paint(ruleStyle, r.Antecedent.String()),
			p.paint(ruleStyle, r.Consequent.String()),
			p.paint(dimStyle, fmt.Sprintf("<conf:(%.2f)> [support: %.2f]", r.Confidence, r.Support)),
		)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHeader(sb *strings.Builder, p painter, title string) {
	sb.WriteString(p.paint(headerStyle, title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", runewidth.StringWidth(title)))
	sb.WriteString("\n")
}

// writeItemsets prints each level as two aligned columns. Widths are
// measured in terminal cells so wide item names line up.
func writeItemsets(sb *strings.Builder, p painter, res *apriori.Result) {
	writeHeader(sb, p, "Frequent itemsets")
	for _, k := range res.Table.Sizes() {
		level := res.Table.Level(k)
		fmt.Fprintf(sb, "\n[Level %d] %d itemsets\n", k, level.Len())

		entries := level.Entries()
		labels := make([]string, len(entries))
		colWidth := 0
		for i, e := range entries {
			labels[i] = e.Itemset.String()
			if w := runewidth.StringWidth(labels[i]); w > colWidth {
				colWidth = w
			}
		}
		for i, e := range entries {
			fmt.Fprintf(sb, "  %s  %s\n",
				runewidth.FillRight(labels[i], colWidth),
				p.paint(numberStyle, fmt.Sprintf("%.2f", e.Support)),
			)
		}
	}
}

func formatPercent(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v*100), "0"), ".") + "%"
}
