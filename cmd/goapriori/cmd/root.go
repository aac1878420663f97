package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/goapriori/internal/config"
	"github.com/dbsmedya/goapriori/internal/database"
	"github.com/dbsmedya/goapriori/internal/logger"
	"github.com/dbsmedya/goapriori/internal/transaction"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "goapriori.yaml"

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	inputFile     string
	minConfidence float64
	minSupport    float64
	numRules      int
	itemsetLevel  int
	strategyName  string
	noColor       bool
)

var rootCmd = &cobra.Command{
	Use:   "goapriori",
	Short: "Frequent itemset miner and association rule generator",
	Long: `Mine frequent itemsets from a transaction set and derive association
rules ranked by confidence.

Features:
  - Transactions from delimited text files or a MySQL table
  - Exhaustive or Apriori join-and-prune candidate generation
  - Rules ranked by confidence and truncated to the requested count
  - Text, JSON and YAML reports`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (defaults are used when the default file is missing)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Source overrides
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "",
		"Read transactions from this delimited file instead of the configured source")

	// Mining overrides
	rootCmd.PersistentFlags().Float64Var(&minConfidence, "min-confidence", 0,
		"Override minimum rule confidence in [0,1]")
	rootCmd.PersistentFlags().Float64Var(&minSupport, "min-support", 0,
		"Override minimum itemset support in [0,1]")
	rootCmd.PersistentFlags().IntVar(&numRules, "num-rules", 0,
		"Override the number of rules to report")
	rootCmd.PersistentFlags().IntVar(&itemsetLevel, "itemset-level", 0,
		"Override the itemset size rules are derived from")
	rootCmd.PersistentFlags().StringVar(&strategyName, "strategy", "",
		"Override candidate generation strategy (exhaustive, apriori)")

	// Output overrides
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured text output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides = config.Overrides

// GetCLIOverrides returns the CLI flag override values. Numeric mining
// parameters are only set when their flag was given, so an explicit 0
// reaches validation instead of falling back to the config value.
func GetCLIOverrides() CLIOverrides {
	o := CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Input:     inputFile,
		Strategy:  strategyName,
		NoColor:   noColor,
	}
	flags := rootCmd.PersistentFlags()
	if flags.Changed("min-confidence") {
		v := minConfidence
		o.MinConfidence = &v
	}
	if flags.Changed("min-support") {
		v := minSupport
		o.MinSupport = &v
	}
	if flags.Changed("num-rules") {
		v := numRules
		o.NumRules = &v
	}
	if flags.Changed("itemset-level") {
		v := itemsetLevel
		o.ItemsetLevel = &v
	}
	return o
}

// loadConfig reads the config file, applies CLI overrides and validates the
// result. A missing file is tolerated only for the default path.
func loadConfig(extra func(*CLIOverrides)) (*config.Config, error) {
	configFile := GetConfigFile()
	allowMissing := configFile == defaultConfigFile && !rootCmd.PersistentFlags().Changed("config")

	cfg, err := config.LoadOrDefault(configFile, allowMissing)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	if extra != nil {
		extra(&overrides)
	}
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setup loads configuration and initializes the logger.
func setup(extra func(*CLIOverrides)) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(extra)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

// openSource builds the configured transaction source. The returned close
// function releases the database connection, if any.
func openSource(ctx context.Context, cfg *config.Config) (transaction.Source, func() error, error) {
	closeFn := func() error { return nil }

	var conn *sql.DB
	if cfg.Source.Type == config.SourceMySQL {
		dbManager := database.NewManager(&cfg.Source.Database)
		if err := dbManager.Connect(ctx); err != nil {
			return nil, closeFn, err
		}
		conn = dbManager.DB
		closeFn = dbManager.Close
	}

	src, err := transaction.NewSource(&cfg.Source, conn)
	if err != nil {
		closeFn()
		return nil, func() error { return nil }, fmt.Errorf("failed to create transaction source: %w", err)
	}
	return src, closeFn, nil
}

// loadTransactions opens the configured source and loads the transaction
// set. Load errors are logged and mining continues on the empty set the
// source returns; only connection and construction errors are fatal.
func loadTransactions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*transaction.Set, error) {
	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	srcLog := log.WithSource(src.Describe())
	srcLog.Debug("Loading transactions")

	set, err := src.Load(ctx)
	if err != nil {
		srcLog.Warnw("Failed to load transactions, continuing with an empty set", "error", err)
	}
	srcLog.Infow("Transactions loaded",
		"transactions", set.Len(),
		"items", set.ItemCount(),
	)
	return set, nil
}
