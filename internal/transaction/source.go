package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/goapriori/internal/config"
)

// ErrUnknownSourceType is returned when the configured source type is not supported.
var ErrUnknownSourceType = errors.New("unknown transaction source type")

// Source loads a transaction set from an external store.
//
// Load fails softly: on any read error it returns an empty, non-nil Set
// together with the error so callers can continue with zero transactions.
type Source interface {
	Load(ctx context.Context) (*Set, error)
	Describe() string
}

// SplitRecord turns one raw record into its item identifiers. Fields are
// trimmed and empty fields are dropped.
func SplitRecord(fields []string) []string {
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			items = append(items, f)
		}
	}
	return items
}

// NewSource builds the Source selected by cfg.Type. db is only used by the
// mysql source and may be nil otherwise.
func NewSource(cfg *config.SourceConfig, db *sql.DB) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source configuration is nil")
	}
	switch cfg.Type {
	case config.SourceCSV, "":
		return NewCSVSource(cfg.Path, cfg.DelimiterRune()), nil
	case config.SourceMySQL:
		return NewSQLSource(db, cfg.Table, cfg.TransactionColumn, cfg.ItemColumn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceType, cfg.Type)
	}
}

func loadError(src Source, err error) error {
	return fmt.Errorf("failed to load transactions from %s: %w", src.Describe(), err)
}
