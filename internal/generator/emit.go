package generator

import (
	"log"
	"strings"
)

// RenderMode selects between the two output shapes: one class per handle
// type, or a single static namespace when the peripheral exposes no
// handle-scoped API.
type RenderMode interface {
	isRenderMode()
}

// ClassSpec is one wrapper class: a handle type plus its synthesized
// methods in selector order.
type ClassSpec struct {
	HandleType string
	Methods    []MethodDescriptor
}

// RenderClasses emits one class per handle type.
type RenderClasses struct {
	Classes []ClassSpec
}

// RenderNamespace emits a single namespace of static wrappers, the fallback
// for handle-less peripherals.
type RenderNamespace struct {
	Methods []MethodDescriptor
}

func (RenderClasses) isRenderMode()   {}
func (RenderNamespace) isRenderMode() {}

// Emit renders the full output unit: guard, include of the original header,
// kind namespace, and the mode's classes or namespace. Deterministic given
// its inputs.
func Emit(c FileClassification, mode RenderMode) string {
	var b strings.Builder
	b.WriteString("#pragma once\n")
	b.WriteString("#include \"" + c.Stem + ".h\"\n")
	b.WriteString("namespace " + string(c.Kind) + " {\n")

	switch m := mode.(type) {
	case RenderClasses:
		for _, class := range m.Classes {
			emitClass(&b, class)
		}
	case RenderNamespace:
		b.WriteString("namespace " + ToPascalCase(c.Peripheral) + " {\n")
		for _, method := range m.Methods {
			emitMethod(&b, method, false)
		}
		b.WriteString("};\n")
	}

	b.WriteString("};\n")
	return b.String()
}

// emitClass renders one wrapper class: public handle field, converting
// constructor, then the method bodies.
func emitClass(b *strings.Builder, class ClassSpec) {
	idx := strings.LastIndex(class.HandleType, "_")
	if idx < 0 {
		// Unexpected handle name shape; skip rather than crash the run.
		log.Printf("skipping handle type without separator: %s", class.HandleType)
		return
	}
	name := ToPascalCase(class.HandleType[:idx])

	b.WriteString("class " + name + " {\n")
	b.WriteString("public:\n")
	b.WriteString(class.HandleType + " handle;\n")
	b.WriteString(name + "(" + class.HandleType + " _handle) : handle(_handle) {}\n")
	for _, method := range class.Methods {
		emitMethod(b, method, true)
	}
	b.WriteString("};\n")
}

// emitMethod renders one forwarding wrapper. Inside a class, static methods
// carry the static specifier; in namespace mode every wrapper is a plain
// inline function.
func emitMethod(b *strings.Builder, m MethodDescriptor, inClass bool) {
	b.WriteString("\t")
	if inClass && m.Kind == MethodStatic {
		b.WriteString("static ")
	}
	b.WriteString("inline " + m.ReturnTypeText + " " + m.Name + "(")
	for i, p := range m.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.PrettyText)
	}
	b.WriteString(") { return " + m.OriginalName + "(")
	b.WriteString(strings.Join(m.CallArgs, ", "))
	b.WriteString("); }\n")
}
