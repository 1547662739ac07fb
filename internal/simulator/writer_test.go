package simulator

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
)

func countLines(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	n := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		n++
	}
	require.NoError(t, scanner.Err())
	return n
}

func TestWriteAllJSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumOrders = 20
	sim := generate(t, cfg)

	require.NoError(t, NewBatchWriter(cfg).WriteAll(sim.OrderEvents, sim.CourierEvents, sim.Report))

	orderPath := filepath.Join(cfg.OutputDir, "order_events.json")
	courierPath := filepath.Join(cfg.OutputDir, "courier_events.json")
	assert.Equal(t, len(sim.OrderEvents), countLines(t, orderPath))
	assert.Equal(t, len(sim.CourierEvents), countLines(t, courierPath))

	// First line round-trips as an order event.
	f, err := os.Open(orderPath)
	require.NoError(t, err)
	defer f.Close()
	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var ev models.OrderEvent
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
	assert.NotEmpty(t, ev.EventID)
	assert.NotEmpty(t, ev.EventType)

	reportPath := filepath.Join(cfg.OutputDir, "validation_report.json")
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report ValidationReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, len(sim.OrderEvents), report.TotalOrderEvents)
}

func TestWriteAllBothFormats(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumOrders = 20
	cfg.OutputFormat = "both"
	sim := generate(t, cfg)

	require.NoError(t, NewBatchWriter(cfg).WriteAll(sim.OrderEvents, sim.CourierEvents, sim.Report))

	for _, name := range []string{
		"order_events.json", "courier_events.json",
		"order_events.parquet", "courier_events.parquet",
		"validation_report.json",
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, "expected %s to exist", name)
		assert.Greater(t, info.Size(), int64(0), "%s must not be empty", name)
	}
}

func TestWriteAllFailsOnUnwritableDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.NumOrders = 10
	sim := generate(t, cfg)

	cfg.OutputDir = filepath.Join(cfg.OutputDir, "file-in-the-way", "out")
	require.NoError(t, os.WriteFile(filepath.Dir(cfg.OutputDir), []byte("x"), 0o644))

	err := NewBatchWriter(cfg).WriteAll(sim.OrderEvents, sim.CourierEvents, sim.Report)
	assert.Error(t, err)
}
