package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault behaves like Load but returns DefaultConfig when the file
// does not exist and allowMissing is set.
func LoadOrDefault(configPath string, allowMissing bool) (*Config, error) {
	if allowMissing {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := substituteEnvVars(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Source.Path = expandEnvVar(cfg.Source.Path)

	db := &cfg.Source.Database
	db.Host = expandEnvVar(db.Host)
	db.User = expandEnvVar(db.User)
	db.Password = expandEnvVar(db.Password)
	db.Database = expandEnvVar(db.Database)

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// Overrides carries CLI flag values. Zero values leave the config untouched.
type Overrides struct {
	LogLevel      string
	LogFormat     string
	Input         string
	MinConfidence *float64
	MinSupport    *float64
	NumRules      *int
	ItemsetLevel  *int
	Strategy      string
	Format        string
	ShowItemsets  bool
	NoColor       bool
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied; numeric mining parameters are
// pointers so an explicit 0 still overrides and is caught by Validate.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Input != "" {
		c.Source.Type = SourceCSV
		c.Source.Path = o.Input
	}
	if o.MinConfidence != nil {
		c.Mining.MinConfidence = *o.MinConfidence
	}
	if o.MinSupport != nil {
		c.Mining.MinSupport = *o.MinSupport
	}
	if o.NumRules != nil {
		c.Mining.NumRules = *o.NumRules
	}
	if o.ItemsetLevel != nil {
		c.Mining.ItemsetLevel = *o.ItemsetLevel
	}
	if o.Strategy != "" {
		c.Mining.Strategy = o.Strategy
	}
	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.ShowItemsets {
		c.Output.ShowItemsets = true
	}
	if o.NoColor {
		c.Output.Color = false
	}
}
