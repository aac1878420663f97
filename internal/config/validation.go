package config

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSource()...)
	errors = append(errors, c.Mining.validate()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// Validate checks the mining parameters alone. It is run again by the
// runner so library callers get the same guarantees as the CLI.
func (m *MiningConfig) Validate() error {
	if errs := m.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (m *MiningConfig) validate() ValidationErrors {
	var errors ValidationErrors

	if !inUnitInterval(m.MinConfidence) {
		errors = append(errors, ValidationError{
			Field:   "mining.min_confidence",
			Message: "min_confidence must be between 0 and 1",
		})
	}

	if !inUnitInterval(m.MinSupport) {
		errors = append(errors, ValidationError{
			Field:   "mining.min_support",
			Message: "min_support must be between 0 and 1",
		})
	}

	if m.NumRules <= 0 {
		errors = append(errors, ValidationError{
			Field:   "mining.num_rules",
			Message: "num_rules must be positive",
		})
	}

	if m.ItemsetLevel <= 0 {
		errors = append(errors, ValidationError{
			Field:   "mining.itemset_level",
			Message: "itemset_level must be positive",
		})
	}

	validStrategies := map[string]bool{StrategyExhaustive: true, StrategyApriori: true, "": true}
	if !validStrategies[m.Strategy] {
		errors = append(errors, ValidationError{
			Field:   "mining.strategy",
			Message: "strategy must be 'exhaustive' or 'apriori'",
		})
	}

	if m.MaxLevel < 0 {
		errors = append(errors, ValidationError{
			Field:   "mining.max_level",
			Message: "max_level cannot be negative",
		})
	}

	return errors
}

func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors
	src := &c.Source

	switch src.Type {
	case SourceCSV, "":
		if src.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "source.path",
				Message: "path is required for csv sources",
			})
		}
		if src.Delimiter != "" && utf8.RuneCountInString(src.Delimiter) != 1 {
			errors = append(errors, ValidationError{
				Field:   "source.delimiter",
				Message: "delimiter must be a single character",
			})
		}
	case SourceMySQL:
		errors = append(errors, validateDatabase("source.database", &src.Database)...)
		if src.Table == "" {
			errors = append(errors, ValidationError{
				Field:   "source.table",
				Message: "table is required for mysql sources",
			})
		}
		if src.TransactionColumn == "" {
			errors = append(errors, ValidationError{
				Field:   "source.transaction_column",
				Message: "transaction_column is required for mysql sources",
			})
		}
		if src.ItemColumn == "" {
			errors = append(errors, ValidationError{
				Field:   "source.item_column",
				Message: "item_column is required for mysql sources",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "source.type",
			Message: "type must be 'csv' or 'mysql'",
		})
	}

	return errors
}

func validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"text": true, "json": true, "yaml": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'text', 'json', or 'yaml'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
