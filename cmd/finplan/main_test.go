package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FINPLAN_LOG_LEVEL", "error")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "finplan dev"))
}

func TestExampleCommand(t *testing.T) {
	out, err := runCLI(t, "example", "net_worth")
	require.NoError(t, err)
	assert.Contains(t, out, "cash_savings")

	file := filepath.Join(t.TempDir(), "retirement.yaml")
	_, err = runCLI(t, "example", "retirement", "--output", file)
	require.NoError(t, err)

	in, err := config.NewInputParser().LoadRetirement(file)
	require.NoError(t, err)
	assert.Equal(t, 35, in.CurrentAge)

	_, err = runCLI(t, "example", "lottery")
	assert.Error(t, err)
}

func TestCalculatorCommands(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		command string
		kind    string
		want    string
	}{
		{"mortgage", "mortgage", "MORTGAGE PAYMENT ANALYSIS"},
		{"compound", "compound-interest", "COMPOUND INTEREST PROJECTION"},
		{"retirement", "retirement", "RETIREMENT READINESS"},
		{"networth", "net-worth", "NET WORTH STATEMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			input := filepath.Join(dir, tt.kind+".yaml")
			_, err := runCLI(t, "example", tt.kind, "-o", input)
			require.NoError(t, err)

			chart := filepath.Join(dir, tt.kind+".png")
			out, err := runCLI(t, tt.command, "--input", input, "--chart", chart)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)

			png, err := os.ReadFile(chart)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
		})
	}
}

func TestCalculatorCommandFormats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "mortgage.yaml")
	_, err := runCLI(t, "example", "mortgage", "-o", input)
	require.NoError(t, err)

	out, err := runCLI(t, "mortgage", "-i", input, "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.InDelta(t, 1216.04, decoded["monthly_payment"], 0.001)

	report := filepath.Join(dir, "schedule.csv")
	_, err = runCLI(t, "mortgage", "-i", input, "-f", "csv", "-o", report)
	require.NoError(t, err)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 31)

	_, err = runCLI(t, "mortgage", "-i", input, "-f", "pdf")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestCalculatorCommandErrors(t *testing.T) {
	_, err := runCLI(t, "mortgage")
	assert.ErrorContains(t, err, `required flag(s) "input" not set`)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("loan_amount: 100\ndown_payment: 200\n"), 0o644))
	_, err = runCLI(t, "mortgage", "-i", bad)
	assert.ErrorContains(t, err, "down_payment")
}

func TestOpenBackendsMemory(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Cache.MaxEntries = 0

	b, err := openBackends(context.Background(), cfg, common.NewSilentLogger())
	require.NoError(t, err)
	_, ok := b.cache.(*store.MemoryCache)
	assert.True(t, ok)
	_, ok = b.snapshots.(*store.MemorySnapshots)
	assert.True(t, ok)
	assert.Len(t, b.closers, 1, "the memory cache sweeper is stopped on shutdown")
	assert.Equal(t, store.DefaultMaxEntries, cacheMaxEntries(cfg))
	b.Close()

	cfg.Cache.Backend = "none"
	b, err = openBackends(context.Background(), cfg, common.NewSilentLogger())
	require.NoError(t, err)
	assert.Equal(t, store.NopCache{}, b.cache)
	assert.Empty(t, b.closers)
}
