package runner

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedkit/halgen/internal/cparse"
)

// Test Plan:
// - A full batch over the vendor fixtures produces one wrapper per input:
//   hal class mode, ll class mode, and the namespace fallback
// - _ex inputs are counted as skipped, never as failures
// - Progress callbacks fire once per file plus batch start/complete
// - A cancelled context stops the batch and surfaces the cancellation

type recordingReporter struct {
	mu        sync.Mutex
	total     int
	processed []string
	completed *Stats
}

func (r *recordingReporter) OnBatchStart(totalFiles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = totalFiles
}

func (r *recordingReporter) OnFileProcessed(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed = append(r.processed, file)
}

func (r *recordingReporter) OnBatchComplete(stats *Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = stats
}

func newTestRunner(t *testing.T, outDir string, progress ProgressReporter) *Runner {
	t.Helper()
	db, err := cparse.LoadCompilationDatabase("../../testdata/compile_commands.json")
	require.NoError(t, err)
	cache, err := NewParseCache(16)
	require.NoError(t, err)
	t.Cleanup(cache.Close)
	return NewRunner(db, cache, Options{OutDir: outDir, Workers: 2, Progress: progress})
}

func discoverVendorFiles(t *testing.T) []string {
	t.Helper()
	fd, err := NewFileDiscovery("../../testdata/vendor", nil)
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)
	require.Len(t, files, 4)
	return files
}

func TestRun_VendorBatch(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	reporter := &recordingReporter{}
	r := newTestRunner(t, outDir, reporter)

	stats, err := r.Run(context.Background(), discoverVendorFiles(t))
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Generated)
	assert.Equal(t, 1, stats.Skipped) // the _ex module
	assert.Equal(t, 0, stats.Failed)

	uart, err := os.ReadFile(filepath.Join(outDir, "stm32f4xx_hal_uart.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(uart), "namespace hal {")
	assert.Contains(t, string(uart), "class Uart {")
	assert.Contains(t, string(uart), "UART_HandleTypeDef * handle;")
	assert.Contains(t, string(uart),
		"inline HAL_StatusTypeDef transmit(uint8_t * pData, uint16_t Size, uint32_t Timeout) { return HAL_UART_Transmit(this->handle, pData, Size, Timeout); }")

	spi, err := os.ReadFile(filepath.Join(outDir, "stm32f4xx_ll_spi.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(spi), "namespace ll {")
	assert.Contains(t, string(spi), "class Spi {")
	assert.Contains(t, string(spi),
		"inline void enable() { return LL_SPI_Enable(this->handle); }")
	assert.Contains(t, string(spi),
		"inline void transmit_data8(uint8_t TxData) { return LL_SPI_TransmitData8(this->handle, TxData); }")

	rcc, err := os.ReadFile(filepath.Join(outDir, "stm32f4xx_hal_rcc.hpp"))
	require.NoError(t, err)
	assert.Contains(t, string(rcc), "namespace Rcc {")
	assert.Contains(t, string(rcc),
		"inline uint32_t get_sys_clock_freq() { return HAL_RCC_GetSysClockFreq(); }")
	assert.NotContains(t, string(rcc), "class ")

	// No wrapper for the skipped _ex input.
	_, err = os.Stat(filepath.Join(outDir, "stm32f4xx_hal_uart_ex.hpp"))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, 4, reporter.total)
	assert.Len(t, reporter.processed, 4)
	require.NotNil(t, reporter.completed)
	assert.Equal(t, 3, reporter.completed.Generated)
}

func TestRun_CachedReRun(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	r := newTestRunner(t, outDir, nil)
	files := discoverVendorFiles(t)

	_, err := r.Run(context.Background(), files)
	require.NoError(t, err)

	// Second pass over unchanged inputs produces identical results from
	// the parse cache.
	stats, err := r.Run(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Generated)
	assert.Equal(t, 1, stats.Skipped)
}

func TestRun_FailuresStayLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "not_a_vendor_file.c")
	require.NoError(t, os.WriteFile(bad, []byte("int x;\n"), 0644))

	r := newTestRunner(t, t.TempDir(), nil)

	stats, err := r.Run(context.Background(), []string{
		bad,
		"../../testdata/vendor/rcc/stm32f4xx_hal_rcc.c",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 1, stats.Generated)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestRunner(t, t.TempDir(), nil)

	_, err := r.Run(ctx, discoverVendorFiles(t))
	assert.ErrorIs(t, err, context.Canceled)
}
