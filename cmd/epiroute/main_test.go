package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/population"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Definition(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"validate", "pair", "migrate", "export-torus"})

	lvl := root.PersistentFlags().Lookup("log-level")
	require.NotNil(t, lvl)
	assert.Equal(t, "info", lvl.DefValue)
}

// TestExportThenMigrate writes a torus file and drives the file-based
// factory with it.
func TestExportThenMigrate(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "export-torus", "--size", "3", "--out", filepath.Join(dir, "local.bin"), "--id-reference", "Gridded world")
	require.NoError(t, err)
	assert.Contains(t, out, "9 nodes")

	cfg := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
id_reference: Gridded world
seed: 7
file_paths: [`+dir+`]
migration:
  model: FIXED_RATE_MIGRATION
  source: FILE
  local: {enabled: true, filename: local.bin, multiplier: 1}
`), 0o644))

	out, err = run(t, "validate", "--config", cfg, "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "9 nodes, 0 fortresses, enabled [LOCAL_MIGRATION]")
	assert.Contains(t, out, "ok")

	out, err = run(t, "migrate", "--config", cfg, "--travelers", "200", "--cdf-cache", "8", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCAL_MIGRATION")
	assert.NotContains(t, out, "NO_MIGRATION")
	assert.Contains(t, out, "fortresses: 0")
	assert.Contains(t, out, "reachable from node 1: 9 of 9")
	assert.Contains(t, out, `epiroute_migration_decisions_total{type="LOCAL_MIGRATION"} 200`)

	// an IdReference mismatch fails validation
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte(`
id_reference: Legacy
file_paths: [`+dir+`]
migration:
  model: FIXED_RATE_MIGRATION
  local: {enabled: true, filename: local.bin, multiplier: 1}
`), 0o644))
	_, err = run(t, "validate", "--config", other)
	require.Error(t, err)
}

func TestPair(t *testing.T) {
	cfg := filepath.Join("..", "..", "config", "testdata", "simulation.yaml")
	out, err := run(t, "pair", "--config", cfg, "--rel", "TRANSITORY", "--population", "300", "--draws", "500", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "TRANSITORY with INDIVIDUAL_PROPERTY: 500 draws over 150 males and 150 females")
	assert.Contains(t, out, "MALE")
	// HIGH only pairs with HIGH
	assert.NotRegexp(t, regexp.MustCompile(`(?m)^HIGH\s+(LOW|MEDIUM)\s`), out)
	assert.Regexp(t, regexp.MustCompile(`(?m)^HIGH\s+HIGH\s+\d+`), out)
	assert.Contains(t, out, "epiroute_partner_selections_total")

	// INFORMAL has not started yet: everyone pairs with the first candidate
	out, err = run(t, "pair", "--config", cfg, "--rel", "INFORMAL", "--population", "10", "--draws", "5")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`(?m)^\*\s+\*\s+5`), out)
}

// TestValidate_DumpState prints one restorable document per engine.
func TestValidate_DumpState(t *testing.T) {
	cfg := filepath.Join("..", "..", "config", "testdata", "simulation.yaml")
	out, err := run(t, "validate", "--config", cfg, "--dump-state")
	require.NoError(t, err)
	assert.Contains(t, out, "16 nodes, 0 fortresses, enabled [LOCAL_MIGRATION]")

	docs := strings.Split(out, "---\n")[1:]
	require.Len(t, docs, 4)
	last := docs[3]
	last = last[:strings.LastIndex(last, "ok\n")]
	e, err := assort.Restore([]byte(docs[0]))
	require.NoError(t, err)
	assert.Equal(t, population.Transitory, e.Relationship())
	assert.Equal(t, assort.IndividualProperty, e.Group())
	_, err = assort.Restore([]byte(last))
	require.NoError(t, err)
}

func TestCommandErrors(t *testing.T) {
	cfg := filepath.Join("..", "..", "config", "testdata", "simulation.yaml")
	tests := []struct {
		name string
		args []string
	}{
		{"missing config flag", []string{"validate"}},
		{"missing config file", []string{"validate", "--config", filepath.Join(t.TempDir(), "none.yaml")}},
		{"log level", []string{"--log-level", "loud", "validate", "--config", cfg}},
		{"log format", []string{"--log-format", "xml", "validate", "--config", cfg}},
		{"relationship", []string{"pair", "--config", cfg, "--rel", "FRIENDS"}},
		{"population", []string{"pair", "--config", cfg, "--population", "1"}},
		{"torus size", []string{"export-torus", "--size", "1", "--out", filepath.Join(t.TempDir(), "x.bin")}},
		{"stray argument", []string{"migrate", "--config", cfg, "extra"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.Error(t, err)
		})
	}
}
