package generator

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two vendor API layers.
type Kind string

const (
	// KindHAL wraps handle-struct APIs (HAL_* functions).
	KindHAL Kind = "hal"
	// KindLL wraps register-block APIs (LL_* functions).
	KindLL Kind = "ll"
)

// Prefix returns the function-name prefix the kind's API uses.
func (k Kind) Prefix() string {
	if k == KindLL {
		return "LL_"
	}
	return "HAL_"
}

// FileClassification is the parsed form of a vendor source filename such as
// stm32f4xx_hal_uart.c. Derived once per file, immutable.
type FileClassification struct {
	Version     string // e.g. "stm32f4xx"
	Kind        Kind
	Peripheral  string // e.g. "uart"
	Stem        string // filename without extension, names the output unit
	IsExtension bool
}

// Classify parses a bare filename (extension present, no directory) into a
// FileClassification. Extension modules classify with IsExtension set and a
// typed ErrExtensionModule so callers can skip them uniformly.
func Classify(filename string) (FileClassification, error) {
	stem, ok := strings.CutSuffix(filename, ".c")
	if !ok {
		stem, ok = strings.CutSuffix(filename, ".h")
	}
	if !ok {
		return FileClassification{}, fmt.Errorf("%w: %s", ErrBadExtension, filename)
	}

	version, rest, ok := strings.Cut(stem, "_")
	if !ok {
		return FileClassification{}, fmt.Errorf("%w: %s", ErrMalformedName, stem)
	}
	kind, peripheral, ok := strings.Cut(rest, "_")
	if !ok {
		return FileClassification{}, fmt.Errorf("%w: %s", ErrMalformedName, stem)
	}

	c := FileClassification{
		Version:    version,
		Kind:       Kind(kind),
		Peripheral: peripheral,
		Stem:       stem,
	}

	if strings.HasSuffix(peripheral, "_ex") {
		c.IsExtension = true
		return c, fmt.Errorf("%w: %s", ErrExtensionModule, stem)
	}
	if c.Kind != KindHAL && c.Kind != KindLL {
		return FileClassification{}, fmt.Errorf("%w: %q in %s", ErrUnknownKind, kind, stem)
	}
	return c, nil
}
