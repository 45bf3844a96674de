package container

import (
	"context"
	"path/filepath"
	"testing"

	"expensereport/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Format = "text"
	cfg.AI.Enabled = false
	cfg.Report.Format = "csv"
	cfg.Report.Delimiter = ","
	cfg.Batch.Workers = 2
	cfg.Data.RecordsFile = filepath.Join(dir, "records.csv")
	cfg.Data.SplitsFile = filepath.Join(dir, "splits.csv")
	return cfg
}

func TestNewContainerWiresComponents(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer func() {
		_ = c.Close()
	}()

	assert.NotNil(t, c.Logger())
	assert.NotNil(t, c.Classifier())
	assert.NotNil(t, c.Validator())
	assert.NotNil(t, c.Allocator())
	assert.NotNil(t, c.Layout())
	assert.NotNil(t, c.Renderer())
	assert.NotNil(t, c.Records())
}

func TestNewContainerRejectsNilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewProcessorRequiresExtractor(t *testing.T) {
	c, err := NewContainer(context.Background(), testConfig(t))
	require.NoError(t, err)

	_, err = c.NewProcessor()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI extraction is disabled")
}

func TestNewContainerLoadsRuleOverrides(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.RulesFile = filepath.Join(t.TempDir(), "missing-rules.yaml")

	// A missing rules file silently falls back to the built-in table.
	c, err := NewContainer(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.Classifier())
}
