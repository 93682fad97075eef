package generator

import (
	"strings"

	"github.com/embeddedkit/halgen/internal/cparse"
)

// MethodKind is the three-way outcome of classifying one candidate function
// against one handle type.
type MethodKind int

const (
	// MethodDiscard: the function does not pertain to this peripheral or
	// handle combination (it may belong to a sibling sharing the prefix).
	MethodDiscard MethodKind = iota
	// MethodInstance: first argument is the handle; it is dropped from the
	// parameter list and supplied from the wrapper's stored handle.
	MethodInstance
	// MethodStatic: peripheral-scoped but not handle-scoped; arguments are
	// forwarded unchanged.
	MethodStatic
)

// MethodDescriptor is one synthesized wrapper method, ready for rendering.
// Pure value; consumed only by the emitter.
type MethodDescriptor struct {
	Kind           MethodKind
	ReturnTypeText string
	Name           string
	Params         []cparse.Argument
	CallArgs       []string
	OriginalName   string
}

// handleField is the call-site expression replacing a dropped handle
// argument.
const handleField = "this->handle"

// SynthesizeMethod maps one candidate function to at most one method
// descriptor. handleType is empty in static-namespace mode, where no
// instance methods can exist. The second return is false when the function
// is discarded or any piece needed for the descriptor is missing — a single
// unresolvable declaration skips that function, never the file.
func SynthesizeMethod(fn cparse.FunctionDecl, handleType, peripheral string) (MethodDescriptor, bool) {
	name, ok := deriveMethodName(fn.Name, peripheral)
	if !ok || fn.ReturnTypeText == "" {
		return MethodDescriptor{}, false
	}

	d := MethodDescriptor{
		ReturnTypeText: fn.ReturnTypeText,
		Name:           name,
		OriginalName:   fn.Name,
	}

	if len(fn.Arguments) == 0 {
		if !MatchesPeripheral(fn.Name, peripheral) {
			return MethodDescriptor{}, false
		}
		d.Kind = MethodStatic
		return d, true
	}

	switch classifyFirstArg(fn.Arguments[0], fn.Name, handleType, peripheral) {
	case MethodInstance:
		d.Kind = MethodInstance
		d.Params = fn.Arguments[1:]
		d.CallArgs = append(d.CallArgs, handleField)
	case MethodStatic:
		d.Kind = MethodStatic
		d.Params = fn.Arguments
	default:
		return MethodDescriptor{}, false
	}

	for _, arg := range d.Params {
		if arg.Name == "" || arg.PrettyText == "" {
			return MethodDescriptor{}, false
		}
		d.CallArgs = append(d.CallArgs, arg.Name)
	}
	return d, true
}

// classifyFirstArg is the decision table keyed on
// (first-arg-matches-handle, name-matches-peripheral).
func classifyFirstArg(first cparse.Argument, funcName, handleType, peripheral string) MethodKind {
	if handleType != "" {
		// Register-block typedefs keep a __ tag prefix in some vendor
		// headers that the argument's display type does not carry.
		stripped := strings.TrimPrefix(handleType, "__")
		if strings.Contains(first.TypeText, stripped) {
			return MethodInstance
		}
	}
	if MatchesPeripheral(funcName, peripheral) {
		return MethodStatic
	}
	return MethodDiscard
}

// deriveMethodName strips all peripheral and prefix redundancy from the
// original function name: HAL_UART_Transmit against uart becomes transmit,
// LL_USART_EnableIT_RXNE against usart becomes enable_it_rxne.
func deriveMethodName(funcName, peripheral string) (string, bool) {
	_, rest, ok := strings.Cut(funcName, "_")
	if !ok {
		return "", false
	}
	rest = strings.TrimPrefix(rest, strings.ToUpper(peripheral))
	rest = strings.TrimPrefix(rest, "_")

	name := ToSnakeCase(rest)
	name = strings.TrimPrefix(name, strings.ToLower(peripheral))
	name = strings.TrimPrefix(name, "_")
	if name == "" {
		return "", false
	}
	return name, true
}
