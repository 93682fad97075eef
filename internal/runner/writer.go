package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/embeddedkit/halgen/internal/generator"
)

// WriteUnit writes a generated unit into outDir and returns the final path.
// The content lands in a uniquely named temp file first and is renamed into
// place, so a crashed or cancelled run never leaves a half-written wrapper
// under the output name.
func WriteUnit(outDir string, unit generator.GeneratedUnit) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	finalPath := filepath.Join(outDir, unit.OutputName)
	tmpPath := finalPath + ".tmp-" + uuid.NewString()

	if err := os.WriteFile(tmpPath, []byte(unit.Content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", unit.OutputName, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", unit.OutputName, err)
	}
	return finalPath, nil
}
