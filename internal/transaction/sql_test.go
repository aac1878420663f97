package transaction

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goapriori/internal/sqlutil"
)

func TestNewSQLSource_InvalidIdentifier(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLSource(db, "orders; DROP TABLE x", "tx_id", "item")
	require.Error(t, err)

	var identErr *sqlutil.InvalidIdentifierError
	require.ErrorAs(t, err, &identErr)
	assert.Equal(t, "orders; DROP TABLE x", identErr.Name)
}

func TestNewSQLSource_NilDB(t *testing.T) {
	_, err := NewSQLSource(nil, "orders", "tx_id", "item")
	assert.Error(t, err)
}

func TestSQLSource_Query(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	src, err := NewSQLSource(db, "basket_items", "basket_id", "product")
	require.NoError(t, err)

	assert.Equal(t, "SELECT `basket_id`, `product` FROM `basket_items` ORDER BY `basket_id`", src.Query())
	assert.Equal(t, "mysql:basket_items", src.Describe())
}

func TestSQLSource_LoadGroupsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"tx_id", "item"}).
		AddRow("1", "milk").
		AddRow("1", "bread").
		AddRow("2", "butter").
		AddRow("3", nil).
		AddRow("4", " milk ").
		AddRow("4", "butter").
		AddRow("5", "bread")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `tx_id`, `item` FROM `transactions` ORDER BY `tx_id`")).
		WillReturnRows(rows)

	src, err := NewSQLSource(db, "transactions", "tx_id", "item")
	require.NoError(t, err)

	set, err := src.Load(context.Background())
	require.NoError(t, err)

	// Transaction 3 has only a NULL item and is discarded.
	require.Equal(t, 4, set.Len())
	assert.Equal(t, []string{"bread", "milk"}, set.At(0).Items())
	assert.Equal(t, []string{"butter"}, set.At(1).Items())
	assert.Equal(t, []string{"butter", "milk"}, set.At(2).Items())
	assert.Equal(t, []string{"bread"}, set.At(3).Items())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_QueryErrorFailsSoftly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	src, err := NewSQLSource(db, "transactions", "tx_id", "item")
	require.NoError(t, err)

	set, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql:transactions")
	require.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
}

func TestSQLSource_RowErrorFailsSoftly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"tx_id", "item"}).
		AddRow("1", "milk").
		AddRow("2", "bread").
		RowError(1, errors.New("read timeout"))
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	src, err := NewSQLSource(db, "transactions", "tx_id", "item")
	require.NoError(t, err)

	set, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, set.Len())
}
