package ingest

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adquant/adroi/internal/dataset"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeValidBatch(t *testing.T, dir string) {
	writeFixture(t, dir, AdSpendFile,
		"campaign,channel,creative,cost,installs,network_installs,network_clicks\n"+
			"campaign 1,channel 1,creative 1,100,10,12,40\n")
	writeFixture(t, dir, InstallsFile,
		"userId,channel,campaign,creative,installedAt\n"+
			"u1,channel 1,campaign 1,creative 1,2024-01-01\n")
	writeFixture(t, dir, RevenueFile,
		"userId,createdAt,countryCode,platform,amount\n"+
			"u1,2024-01-01T10:00:00Z,US,ios,5.0\n")
}

func TestLoaderLoadsAllThreeDatasets(t *testing.T) {
	dir := t.TempDir()
	writeValidBatch(t, dir)

	tables, err := NewLoader(dir, discardLog()).Load()
	require.NoError(t, err)
	assert.Len(t, tables.AdSpend.Rows, 1)
	assert.Len(t, tables.Installs.Rows, 1)
	assert.Len(t, tables.Revenue.Rows, 1)
}

func TestLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeValidBatch(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, RevenueFile)))

	_, err := NewLoader(dir, discardLog()).Load()
	assert.Error(t, err)
}

func TestLoaderSchemaErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeValidBatch(t, dir)
	// drop the amount column
	writeFixture(t, dir, RevenueFile, "userId,createdAt,countryCode,platform\nu1,2024-01-01T10:00:00Z,US,ios\n")

	_, err := NewLoader(dir, discardLog()).Load()
	require.Error(t, err)

	var se *dataset.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, RevenueFile, se.Dataset)
	assert.Equal(t, []string{"amount"}, se.Missing)
}
