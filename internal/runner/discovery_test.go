package runner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_DefaultPatterns(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery("../../testdata/vendor", nil)
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	// Sorted, one directory level deep, hal sources plus ll headers. The
	// hal header is not an input on its own.
	assert.Equal(t, []string{
		"stm32f4xx_hal_rcc.c",
		"stm32f4xx_ll_spi.h",
		"stm32f4xx_hal_uart.c",
		"stm32f4xx_hal_uart_ex.c",
	}, names)
}

func TestDiscoverFiles_CustomPatterns(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery("../../testdata/vendor", []string{"uart/*.c"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "stm32f4xx_hal_uart.c", filepath.Base(files[0]))
	assert.Equal(t, "stm32f4xx_hal_uart_ex.c", filepath.Base(files[1]))
}

func TestMatches(t *testing.T) {
	t.Parallel()

	fd, err := NewFileDiscovery(".", nil)
	require.NoError(t, err)

	assert.True(t, fd.Matches("uart/stm32f4xx_hal_uart.c"))
	assert.True(t, fd.Matches("spi/stm32f4xx_ll_spi.h"))
	assert.False(t, fd.Matches("uart/stm32f4xx_hal_uart.h"))
	assert.False(t, fd.Matches("stm32f4xx_hal_uart.c")) // root level, not a vendor subdir
	assert.False(t, fd.Matches("uart/nested/stm32f4xx_hal_uart.c"))
}

func TestNewFileDiscovery_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(".", []string{"[unterminated"})
	assert.Error(t, err)
}
