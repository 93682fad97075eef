package generator

import (
	"strings"

	"github.com/embeddedkit/halgen/internal/cparse"
)

// SelectFunctions filters the translation unit down to the wrapper
// candidates for the given kind: functions carrying the kind's prefix,
// minus interrupt and callback hooks, which the vendor runtime invokes and
// user code never calls.
//
// The result is in reverse declaration order (last-declared-first). Output
// stability depends on this ordering; do not change it.
func SelectFunctions(functions []cparse.FunctionDecl, kind Kind) []cparse.FunctionDecl {
	prefix := kind.Prefix()
	var selected []cparse.FunctionDecl
	for i := len(functions) - 1; i >= 0; i-- {
		fn := functions[i]
		if !strings.HasPrefix(fn.Name, prefix) {
			continue
		}
		if strings.HasSuffix(fn.Name, "IRQHandler") || strings.HasSuffix(fn.Name, "Callback") {
			continue
		}
		selected = append(selected, fn)
	}
	return selected
}
