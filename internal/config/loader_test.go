package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
source:
  type: csv
  path: baskets.csv
  delimiter: ";"

mining:
  min_confidence: 0.6
  min_support: 0.25
  num_rules: 10
  itemset_level: 2
  strategy: apriori
  support_cache_size: 128

output:
  format: json
  show_itemsets: true

logging:
  level: debug
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.Path != "baskets.csv" {
		t.Errorf("expected source path 'baskets.csv', got %s", cfg.Source.Path)
	}
	if cfg.Source.DelimiterRune() != ';' {
		t.Errorf("expected delimiter ';', got %q", cfg.Source.DelimiterRune())
	}
	if cfg.Mining.MinConfidence != 0.6 {
		t.Errorf("expected min_confidence 0.6, got %v", cfg.Mining.MinConfidence)
	}
	if cfg.Mining.MinSupport != 0.25 {
		t.Errorf("expected min_support 0.25, got %v", cfg.Mining.MinSupport)
	}
	if cfg.Mining.NumRules != 10 {
		t.Errorf("expected num_rules 10, got %d", cfg.Mining.NumRules)
	}
	if cfg.Mining.ItemsetLevel != 2 {
		t.Errorf("expected itemset_level 2, got %d", cfg.Mining.ItemsetLevel)
	}
	if cfg.Mining.Strategy != StrategyApriori {
		t.Errorf("expected strategy 'apriori', got %s", cfg.Mining.Strategy)
	}
	if cfg.Mining.SupportCacheSize != 128 {
		t.Errorf("expected support_cache_size 128, got %d", cfg.Mining.SupportCacheSize)
	}
	if cfg.Output.Format != "json" || !cfg.Output.ShowItemsets {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}

	// Unset keys keep their defaults
	if cfg.Source.Database.Port != 3306 {
		t.Errorf("expected default database port 3306, got %d", cfg.Source.Database.Port)
	}
	if !cfg.Output.Color {
		t.Error("expected color to stay enabled by default")
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("TEST_DB_HOST", "env-host")
	os.Setenv("TEST_DB_USER", "env-user")
	os.Setenv("TEST_DB_PASS", "env-pass")
	os.Setenv("TEST_DATA_DIR", "/data")
	defer func() {
		os.Unsetenv("TEST_DB_HOST")
		os.Unsetenv("TEST_DB_USER")
		os.Unsetenv("TEST_DB_PASS")
		os.Unsetenv("TEST_DATA_DIR")
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-env.yaml")

	configContent := `
source:
  type: mysql
  path: ${TEST_DATA_DIR}/food.csv
  database:
    host: ${TEST_DB_HOST}
    user: ${TEST_DB_USER}
    password: ${TEST_DB_PASS}
    database: retail
  table: basket_items
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.Database.Host != "env-host" {
		t.Errorf("expected database host 'env-host', got %s", cfg.Source.Database.Host)
	}
	if cfg.Source.Database.User != "env-user" {
		t.Errorf("expected database user 'env-user', got %s", cfg.Source.Database.User)
	}
	if cfg.Source.Database.Password != "env-pass" {
		t.Errorf("expected database password 'env-pass', got %s", cfg.Source.Database.Password)
	}
	if cfg.Source.Path != "/data/food.csv" {
		t.Errorf("expected source path '/data/food.csv', got %s", cfg.Source.Path)
	}
}

func TestExpandEnvVar(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadOrDefault(missing, true)
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Mining.NumRules != 5 {
		t.Errorf("expected default num_rules 5, got %d", cfg.Mining.NumRules)
	}

	if _, err := LoadOrDefault(missing, false); err == nil {
		t.Error("expected error for missing file when allowMissing is false")
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("mining.num_rules", 20)
	v.Set("mining.min_support", 0.05)

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("LoadFromViper failed: %v", err)
	}
	if cfg.Mining.NumRules != 20 {
		t.Errorf("expected num_rules 20, got %d", cfg.Mining.NumRules)
	}
	if cfg.Mining.MinSupport != 0.05 {
		t.Errorf("expected min_support 0.05, got %v", cfg.Mining.MinSupport)
	}
	if cfg.Mining.ItemsetLevel != 3 {
		t.Errorf("expected default itemset_level 3, got %d", cfg.Mining.ItemsetLevel)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	conf := 0.8
	sup := 0.0
	rules := 12
	level := 2
	cfg.ApplyOverrides(Overrides{
		LogLevel:      "debug",
		LogFormat:     "json",
		Input:         "other.csv",
		MinConfidence: &conf,
		MinSupport:    &sup,
		NumRules:      &rules,
		ItemsetLevel:  &level,
		Strategy:      StrategyApriori,
		Format:        "yaml",
		ShowItemsets:  true,
		NoColor:       true,
	})

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Source.Path != "other.csv" || cfg.Source.Type != SourceCSV {
		t.Errorf("expected csv source 'other.csv', got %s:%s", cfg.Source.Type, cfg.Source.Path)
	}
	if cfg.Mining.MinConfidence != 0.8 {
		t.Errorf("expected min_confidence 0.8, got %v", cfg.Mining.MinConfidence)
	}
	if cfg.Mining.MinSupport != 0 {
		t.Errorf("expected explicit min_support 0 to override, got %v", cfg.Mining.MinSupport)
	}
	if cfg.Mining.NumRules != 12 {
		t.Errorf("expected num_rules 12, got %d", cfg.Mining.NumRules)
	}
	if cfg.Mining.ItemsetLevel != 2 {
		t.Errorf("expected itemset_level 2, got %d", cfg.Mining.ItemsetLevel)
	}
	if cfg.Mining.Strategy != StrategyApriori {
		t.Errorf("expected strategy 'apriori', got %s", cfg.Mining.Strategy)
	}
	if cfg.Output.Format != "yaml" || !cfg.Output.ShowItemsets || cfg.Output.Color {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{})

	defaults := DefaultConfig()
	if cfg.Mining != defaults.Mining {
		t.Errorf("expected mining config unchanged, got %+v", cfg.Mining)
	}
	if cfg.Output != defaults.Output {
		t.Errorf("expected output config unchanged, got %+v", cfg.Output)
	}
	if cfg.Logging != defaults.Logging {
		t.Errorf("expected logging config unchanged, got %+v", cfg.Logging)
	}
}

func TestApplyOverridesExplicitZeroCounts(t *testing.T) {
	cfg := DefaultConfig()

	zero := 0
	cfg.ApplyOverrides(Overrides{NumRules: &zero, ItemsetLevel: &zero})

	if cfg.Mining.NumRules != 0 || cfg.Mining.ItemsetLevel != 0 {
		t.Fatalf("expected explicit zeros to override, got num_rules=%d itemset_level=%d",
			cfg.Mining.NumRules, cfg.Mining.ItemsetLevel)
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for zero num_rules and itemset_level")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	if !fields["mining.num_rules"] || !fields["mining.itemset_level"] {
		t.Errorf("expected num_rules and itemset_level errors, got %v", verrs)
	}
}
