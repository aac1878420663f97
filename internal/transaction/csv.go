package transaction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVSource reads one transaction per line from a delimited text file.
type CSVSource struct {
	Path      string
	Delimiter rune
}

// NewCSVSource creates a CSVSource. A zero delimiter defaults to comma.
func NewCSVSource(path string, delimiter rune) *CSVSource {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSource{Path: path, Delimiter: delimiter}
}

// Describe returns a human-readable identifier for logs.
func (s *CSVSource) Describe() string {
	return "csv:" + s.Path
}

// Load reads the whole file. Blank records are discarded.
func (s *CSVSource) Load(ctx context.Context) (*Set, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return Empty(), loadError(s, err)
	}
	defer f.Close()

	set, err := s.read(ctx, f)
	if err != nil {
		return Empty(), loadError(s, err)
	}
	return set, nil
}

// Read parses transactions from r using the source's delimiter.
func (s *CSVSource) Read(ctx context.Context, r io.Reader) (*Set, error) {
	set, err := s.read(ctx, r)
	if err != nil {
		return Empty(), loadError(s, err)
	}
	return set, nil
}

func (s *CSVSource) read(ctx context.Context, r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var txs []Transaction
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		items := SplitRecord(record)
		if len(items) == 0 {
			continue
		}
		txs = append(txs, New(items...))
	}
	return NewSet(txs...), nil
}
