package generator

import (
	"github.com/embeddedkit/halgen/internal/cparse"
)

// GeneratedUnit is the final text blob for one input file, plus the output
// file name it should be written under (input stem with the wrapper
// extension).
type GeneratedUnit struct {
	OutputName string
	Content    string
}

// OutputExtension is the extension of generated wrapper files.
const OutputExtension = ".hpp"

// Generate runs the per-file pipeline for an already-classified file:
// resolve handle types, select candidates, synthesize methods, emit. Pure
// function of its inputs; nothing is shared across invocations.
//
// When no handle type is found the unit degrades to a static namespace of
// free wrappers. Only when that fallback is also empty — nothing in the
// file matched the peripheral at all — does the file fail with
// ErrNoHandleType.
func Generate(c FileClassification, unit *cparse.SourceUnit) (GeneratedUnit, error) {
	handleTypes := ResolveHandleTypes(c, unit)
	candidates := SelectFunctions(unit.Functions, c.Kind)

	var mode RenderMode
	if len(handleTypes) == 0 {
		methods := synthesizeAll(candidates, "", c.Peripheral)
		if len(methods) == 0 {
			return GeneratedUnit{}, ErrNoHandleType
		}
		mode = RenderNamespace{Methods: methods}
	} else {
		classes := make([]ClassSpec, 0, len(handleTypes))
		for _, handleType := range handleTypes {
			classes = append(classes, ClassSpec{
				HandleType: handleType,
				Methods:    synthesizeAll(candidates, handleType, c.Peripheral),
			})
		}
		mode = RenderClasses{Classes: classes}
	}

	return GeneratedUnit{
		OutputName: c.Stem + OutputExtension,
		Content:    Emit(c, mode),
	}, nil
}

func synthesizeAll(candidates []cparse.FunctionDecl, handleType, peripheral string) []MethodDescriptor {
	var methods []MethodDescriptor
	for _, fn := range candidates {
		if d, ok := SynthesizeMethod(fn, handleType, peripheral); ok {
			methods = append(methods, d)
		}
	}
	return methods
}
