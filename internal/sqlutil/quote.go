// Package sqlutil quotes and validates MySQL identifiers used by the SQL
// transaction source.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier wraps a MySQL identifier in backticks, doubling any
// embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Only ASCII letters, digits and underscore are accepted, which is stricter
// than MySQL itself.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier reports whether name is safe to splice into a query.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe validates name and returns it quoted.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// SelectOrdered builds "SELECT c1, c2 FROM table ORDER BY c1" with every
// identifier validated and quoted. Rows come back grouped by the first
// column.
func SelectOrdered(table string, columns ...string) (string, error) {
	if len(columns) == 0 {
		return "", &InvalidIdentifierError{Name: ""}
	}
	quotedTable, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		if quoted[i], err = QuoteIdentifierSafe(c); err != nil {
			return "", err
		}
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + quotedTable +
		" ORDER BY " + quoted[0], nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
