package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goapriori/internal/report"
)

const groceryMining = "  min_support: 0.5\n" +
	"  min_confidence: 0.6\n" +
	"  num_rules: 5\n" +
	"  itemset_level: 2\n"

func resetMineFlags(t *testing.T) {
	t.Helper()
	originalFormat := mineFormat
	originalShow := mineShowItemsets
	t.Cleanup(func() {
		mineFormat = originalFormat
		mineShowItemsets = originalShow
	})
	mineFormat = ""
	mineShowItemsets = false
}

func TestMineCommandStructure(t *testing.T) {
	assert.NotNil(t, mineCmd)
	assert.Equal(t, "mine", mineCmd.Use)
	assert.NotEmpty(t, mineCmd.Short)
	assert.NotEmpty(t, mineCmd.Long)
	assert.NotNil(t, mineCmd.RunE)
}

func TestMineCommandFlags(t *testing.T) {
	flags := mineCmd.Flags()

	formatFlag := flags.Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "", formatFlag.DefValue)

	showFlag := flags.Lookup("show-itemsets")
	require.NotNil(t, showFlag)
	assert.Equal(t, "false", showFlag.DefValue)
}

func TestMineIsAddedToRoot(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "mine" {
			found = true
			break
		}
	}
	assert.True(t, found, "mine command should be added to root command")
}

func TestMineCommandExample(t *testing.T) {
	assert.Contains(t, mineCmd.Long, "Example:")
	assert.Contains(t, mineCmd.Long, "goapriori mine")
}

func TestRunMine_Text(t *testing.T) {
	resetMineFlags(t)
	writeFixture(t, groceries, groceryMining)

	var buf bytes.Buffer
	mineCmd.SetOut(&buf)

	require.NoError(t, runMine(mineCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Number of items: 3")
	assert.Contains(t, out, "Number of transactions: 4")
	assert.Contains(t, out, "1. [butter] ==> [bread] <conf:(1.00)> [support: 0.50]")
	assert.Contains(t, out, "2. [bread] ==> [butter] <conf:(0.67)> [support: 0.50]")
	assert.Contains(t, out, "3. [bread] ==> [milk] <conf:(0.67)> [support: 0.50]")
	assert.Contains(t, out, "4. [milk] ==> [bread] <conf:(0.67)> [support: 0.50]")
}

func TestRunMine_JSONWithItemsets(t *testing.T) {
	resetMineFlags(t)
	writeFixture(t, groceries, groceryMining)
	mineFormat = "json"
	mineShowItemsets = true

	var buf bytes.Buffer
	mineCmd.SetOut(&buf)

	require.NoError(t, runMine(mineCmd, nil))

	var doc report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 3, doc.Items)
	assert.Equal(t, 4, doc.Transactions)
	assert.Len(t, doc.Rules, 4)
	require.Len(t, doc.Itemsets, 2)
	assert.Len(t, doc.Itemsets[0].Itemsets, 3)
	assert.Len(t, doc.Itemsets[1].Itemsets, 2)
}

func TestRunMine_MissingInputContinues(t *testing.T) {
	resetMineFlags(t)
	writeFixture(t, groceries, groceryMining)

	originalInput := inputFile
	defer func() { inputFile = originalInput }()
	inputFile = filepath.Join(t.TempDir(), "missing.csv")

	var buf bytes.Buffer
	mineCmd.SetOut(&buf)

	require.NoError(t, runMine(mineCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "Number of items: 0")
	assert.Contains(t, out, "Number of transactions: 0")
	assert.Contains(t, out, "No rules met the thresholds.")
}

func TestRunMine_InvalidConfig(t *testing.T) {
	resetMineFlags(t)
	writeFixture(t, groceries, "  num_rules: -1\n")

	err := runMine(mineCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mining.num_rules")
}

func TestRunMine_UnknownFormat(t *testing.T) {
	resetMineFlags(t)
	writeFixture(t, groceries, groceryMining)
	mineFormat = "xml"

	err := runMine(mineCmd, nil)
	require.Error(t, err)
}
