// Package report renders mining results for the CLI.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goapriori/internal/apriori"
	"github.com/dbsmedya/goapriori/internal/rules"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options controls rendering.
type Options struct {
	Format       string
	ShowItemsets bool
	Color        bool
}

// Render writes res to w in the requested format.
func Render(w io.Writer, res *apriori.Result, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, res, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(res, opts.ShowItemsets))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(res, opts.ShowItemsets)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// Document is the structured form of a Result used by json and yaml output.
type Document struct {
	Items         int          `json:"items" yaml:"items"`
	Transactions  int          `json:"transactions" yaml:"transactions"`
	MinSupport    float64      `json:"min_support" yaml:"min_support"`
	MinConfidence float64      `json:"min_confidence" yaml:"min_confidence"`
	ItemsetLevel  int          `json:"itemset_level" yaml:"itemset_level"`
	Strategy      string       `json:"strategy" yaml:"strategy"`
	Itemsets      []LevelView  `json:"itemsets,omitempty" yaml:"itemsets,omitempty"`
	Rules         []rules.Rule `json:"rules" yaml:"rules"`
	Stats         StatsView    `json:"stats" yaml:"stats"`
}

// LevelView lists the frequent itemsets of one size.
type LevelView struct {
	Size     int         `json:"size" yaml:"size"`
	Itemsets []EntryView `json:"itemsets" yaml:"itemsets"`
}

// EntryView is one frequent itemset.
type EntryView struct {
	Items   []string `json:"items" yaml:"items"`
	Support float64  `json:"support" yaml:"support"`
}

// StatsView carries run counters.
type StatsView struct {
	Levels      int    `json:"levels" yaml:"levels"`
	Candidates  int    `json:"candidates" yaml:"candidates"`
	CacheHits   int    `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses int    `json:"cache_misses" yaml:"cache_misses"`
	Duration    string `json:"duration" yaml:"duration"`
}

// NewDocument converts a Result. Itemsets are included only on request.
func NewDocument(res *apriori.Result, withItemsets bool) Document {
	doc := Document{
		Items:         res.ItemCount,
		Transactions:  res.TransactionCount,
		MinSupport:    res.Params.MinSupport,
		MinConfidence: res.Params.MinConfidence,
		ItemsetLevel:  res.Params.ItemsetLevel,
		Strategy:      res.Params.Strategy,
		Rules:         res.Rules,
		Stats: StatsView{
			Levels:      res.Table.Len(),
			Candidates:  res.Stats.Candidates,
			CacheHits:   res.Stats.CacheHits,
			CacheMisses: res.Stats.CacheMisses,
			Duration:    res.Stats.Duration.String(),
		},
	}
	if doc.Rules == nil {
		doc.Rules = []rules.Rule{}
	}

	if withItemsets {
		for _, k := range res.Table.Sizes() {
			lv := LevelView{Size: k, Itemsets: []EntryView{}}
			for _, e := range res.Table.Level(k).Entries() {
				lv.Itemsets = append(lv.Itemsets, EntryView{Items: e.Itemset.Items(), Support: e.Support})
			}
			doc.Itemsets = append(doc.Itemsets, lv)
		}
	}
	return doc
}
