package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/goapriori/internal/sqlutil"
)

// SQLSource reads transactions from a table holding one (transaction, item)
// pair per row.
type SQLSource struct {
	db    *sql.DB
	table string
	query string
}

// NewSQLSource validates the identifiers and creates an SQLSource.
func NewSQLSource(db *sql.DB, table, txColumn, itemColumn string) (*SQLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	query, err := sqlutil.SelectOrdered(table, txColumn, itemColumn)
	if err != nil {
		return nil, err
	}
	return &SQLSource{db: db, table: table, query: query}, nil
}

// Describe returns a human-readable identifier for logs.
func (s *SQLSource) Describe() string {
	return "mysql:" + s.table
}

// Query returns the SELECT statement used by Load.
func (s *SQLSource) Query() string {
	return s.query
}

// Load groups consecutive rows sharing a transaction id into one Transaction.
func (s *SQLSource) Load(ctx context.Context) (*Set, error) {
	rows, err := s.db.QueryContext(ctx, s.Query())
	if err != nil {
		return Empty(), loadError(s, err)
	}
	defer rows.Close()

	var (
		txs     []Transaction
		current string
		items   []string
		started bool
	)
	flush := func() {
		if started && len(items) > 0 {
			txs = append(txs, New(items...))
		}
		items = items[:0]
	}

	for rows.Next() {
		var txID string
		var item sql.NullString
		if err := rows.Scan(&txID, &item); err != nil {
			return Empty(), loadError(s, err)
		}
		if !started || txID != current {
			flush()
			current = txID
			started = true
		}
		if item.Valid {
			items = append(items, SplitRecord([]string{item.String})...)
		}
	}
	if err := rows.Err(); err != nil {
		return Empty(), loadError(s, err)
	}
	flush()

	return NewSet(txs...), nil
}
