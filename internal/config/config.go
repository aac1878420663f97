// Package config provides configuration structures and loading for GoApriori.
package config

// Config represents the complete application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Mining  MiningConfig  `yaml:"mining" mapstructure:"mining"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// SourceConfig describes where transactions are loaded from.
type SourceConfig struct {
	Type      string `yaml:"type" mapstructure:"type"`           // csv or mysql
	Path      string `yaml:"path" mapstructure:"path"`           // csv file path
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"` // single character

	Database          DatabaseConfig `yaml:"database" mapstructure:"database"`
	Table             string         `yaml:"table" mapstructure:"table"`
	TransactionColumn string         `yaml:"transaction_column" mapstructure:"transaction_column"`
	ItemColumn        string         `yaml:"item_column" mapstructure:"item_column"`
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// MiningConfig holds the parameters of one mining run.
type MiningConfig struct {
	MinConfidence    float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	MinSupport       float64 `yaml:"min_support" mapstructure:"min_support"`
	NumRules         int     `yaml:"num_rules" mapstructure:"num_rules"`
	ItemsetLevel     int     `yaml:"itemset_level" mapstructure:"itemset_level"`
	Strategy         string  `yaml:"strategy" mapstructure:"strategy"`   // exhaustive or apriori
	MaxLevel         int     `yaml:"max_level" mapstructure:"max_level"` // 0 = unlimited
	SupportCacheSize int     `yaml:"support_cache_size" mapstructure:"support_cache_size"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format       string `yaml:"format" mapstructure:"format"` // text, json or yaml
	ShowItemsets bool   `yaml:"show_itemsets" mapstructure:"show_itemsets"`
	Color        bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// Source types.
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// Candidate generation strategies.
const (
	StrategyExhaustive = "exhaustive"
	StrategyApriori    = "apriori"
)

// Strategies lists the supported candidate generation strategies.
func Strategies() []string {
	return []string{StrategyExhaustive, StrategyApriori}
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:      SourceCSV,
			Path:      "food.csv",
			Delimiter: ",",
			Database: DatabaseConfig{
				Port:               3306,
				TLS:                "preferred",
				MaxConnections:     4,
				MaxIdleConnections: 2,
			},
			TransactionColumn: "transaction_id",
			ItemColumn:        "item",
		},
		Mining: MiningConfig{
			MinConfidence:    0.5,
			MinSupport:       0.1,
			NumRules:         5,
			ItemsetLevel:     3,
			Strategy:         StrategyExhaustive,
			MaxLevel:         0,
			SupportCacheSize: 4096,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DelimiterRune returns the configured delimiter, defaulting to comma.
func (s *SourceConfig) DelimiterRune() rune {
	for _, r := range s.Delimiter {
		return r
	}
	return ','
}
