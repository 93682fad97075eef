package generator

import (
	"strings"

	"github.com/embeddedkit/halgen/internal/cparse"
)

// ResolveHandleTypes finds the C types that identify the hardware unit the
// peripheral's API operates on.
//
// HAL peripherals are addressed through a managed handle struct, so the
// struct/typedef names are scanned for the *_HandleTypeDef suffix. LL
// peripherals take a pointer to the memory-mapped register block as the
// first parameter of every call, so the type has to be inferred from actual
// first-argument types instead of a struct tag.
//
// The result is deduplicated in first-seen order. Empty is valid: the
// peripheral then exposes only free functions and the emitter falls back to
// a static namespace.
func ResolveHandleTypes(c FileClassification, unit *cparse.SourceUnit) []string {
	if c.Kind == KindHAL {
		return resolveHALHandles(c.Peripheral, unit.Structs)
	}
	return resolveLLHandles(c.Peripheral, unit.Functions)
}

func resolveHALHandles(peripheral string, structs []cparse.StructDecl) []string {
	lower := strings.ToLower(peripheral)
	var handles []string
	seen := make(map[string]bool)
	for _, s := range structs {
		if !strings.HasSuffix(s.Name, "_HandleTypeDef") {
			continue
		}
		if !strings.Contains(strings.ToLower(s.Name), lower) {
			continue
		}
		if strings.Contains(s.Name, "const") {
			continue
		}
		handle := s.Name + " *"
		if !seen[handle] {
			seen[handle] = true
			handles = append(handles, handle)
		}
	}
	return handles
}

func resolveLLHandles(peripheral string, functions []cparse.FunctionDecl) []string {
	upper := strings.ToUpper(peripheral)
	var handles []string
	seen := make(map[string]bool)
	for _, fn := range functions {
		if !strings.Contains(fn.Name, upper) {
			continue
		}
		if len(fn.Arguments) == 0 {
			continue
		}
		name := fn.Arguments[0].TypeText
		if name == "" || !strings.Contains(name, "TypeDef") {
			continue
		}
		if strings.Contains(name, "const") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			handles = append(handles, name)
		}
	}
	return handles
}
