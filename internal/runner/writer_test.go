package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedkit/halgen/internal/generator"
)

func TestWriteUnit(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "generated") // does not exist yet
	unit := generator.GeneratedUnit{
		OutputName: "stm32f4xx_hal_uart.hpp",
		Content:    "#pragma once\n",
	}

	path, err := WriteUnit(outDir, unit)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "stm32f4xx_hal_uart.hpp"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#pragma once\n", string(content))
}

func TestWriteUnit_OverwritesExisting(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	unit := generator.GeneratedUnit{OutputName: "x.hpp", Content: "old\n"}
	_, err := WriteUnit(outDir, unit)
	require.NoError(t, err)

	unit.Content = "new\n"
	path, err := WriteUnit(outDir, unit)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestWriteUnit_NoTempLeftovers(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	_, err := WriteUnit(outDir, generator.GeneratedUnit{OutputName: "x.hpp", Content: "c"})
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.hpp", entries[0].Name())
}
