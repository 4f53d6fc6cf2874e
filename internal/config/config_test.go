package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 360, cfg.Financing.TermMonths)
	assert.InDelta(t, 0.05, cfg.Financing.ClosingCostRate, 0.001)
	assert.Zero(t, cfg.Financing.InterestRate)
	assert.Equal(t, "mortgage-cli.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 10.0, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentScenarios)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
financing:
  interest_rate: 0.0625
  term_months: 180
search:
  tax_rate: 0.019
  hoa_monthly: 125
store:
  path: /tmp/runs.db
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.InDelta(t, 0.0625, cfg.Financing.InterestRate, 1e-9)
	assert.Equal(t, 180, cfg.Financing.TermMonths)
	// unset field keeps its default
	assert.InDelta(t, 0.05, cfg.Financing.ClosingCostRate, 0.001)
	assert.InDelta(t, 0.019, cfg.Search.TaxRate, 1e-9)
	assert.InDelta(t, 125.0, cfg.Search.HOAMonthly, 1e-9)
	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestFinancingTerms(t *testing.T) {
	fc := FinancingConfig{InterestRate: 0.06, TermMonths: 360, ClosingCostRate: 0.04}
	terms := fc.Terms()
	assert.InDelta(t, 0.06, terms.InterestRate, 1e-9)
	assert.Equal(t, 360, terms.TermMonths)
	assert.InDelta(t, 0.04, terms.ClosingCostRate, 1e-9)
	assert.Zero(t, terms.DownPayment)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	assert.Error(t, err)
}
