package cparse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// ErrParse marks files the front end could not turn into a translation unit.
var ErrParse = errors.New("parse failure")

// Parser is the AST collaborator: it turns one C file into a SourceUnit of
// function and struct declarations with resolved type text.
//
// The sitter.Language is shared and read-only; every ParseFile call creates
// its own sitter.Parser, so a Parser value is safe for concurrent use.
type Parser struct {
	language *sitter.Language
}

// NewParser creates a C declaration parser.
func NewParser() *Parser {
	return &Parser{language: sitter.NewLanguage(c.Language())}
}

// ParseFile parses a C source or header file. flags carries the -D/-I
// compiler flags resolved for this file; defines are substituted and quoted
// includes inlined before parsing so the buffer contains the declarations
// the compiler would have seen.
func (p *Parser) ParseFile(ctx context.Context, path string, flags []string) (*SourceUnit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source = expandIncludes(path, source, IncludePaths(flags), nil)
	source = applyDefines(source, Defines(flags))

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, path)
	}
	defer tree.Close()

	unit := &SourceUnit{}
	seenFn := make(map[string]bool)
	seenStruct := make(map[string]bool)

	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Kind() {
		case "function_definition":
			if fn, ok := extractFunction(n, source); ok && !seenFn[fn.Name] {
				seenFn[fn.Name] = true
				unit.Functions = append(unit.Functions, fn)
			}
			return false
		case "declaration":
			if !isTopLevel(n) {
				return false
			}
			if fn, ok := extractFunction(n, source); ok && !seenFn[fn.Name] {
				seenFn[fn.Name] = true
				unit.Functions = append(unit.Functions, fn)
			}
			return false
		case "struct_specifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name := nodeText(nameNode, source)
				if name != "" && !seenStruct[name] {
					seenStruct[name] = true
					unit.Structs = append(unit.Structs, StructDecl{Name: name})
				}
			}
			return true
		case "type_definition":
			for _, name := range typedefNames(n, source) {
				if name != "" && !seenStruct[name] {
					seenStruct[name] = true
					unit.Structs = append(unit.Structs, StructDecl{Name: name})
				}
			}
			return true
		}
		return true
	})

	return unit, nil
}

// extractFunction builds a FunctionDecl from a function_definition or a
// prototype declaration. Returns false when the node declares no function.
func extractFunction(node *sitter.Node, source []byte) (FunctionDecl, bool) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return FunctionDecl{}, false
	}

	declarator, pointers := unwrapPointers(node.ChildByFieldName("declarator"))
	if declarator == nil || declarator.Kind() != "function_declarator" {
		return FunctionDecl{}, false
	}

	name := declaratorName(declarator.ChildByFieldName("declarator"), source)
	if name == "" {
		return FunctionDecl{}, false
	}

	fn := FunctionDecl{
		Name:           name,
		ReturnTypeText: typeWithPointers(typeQualifiers(node, source), nodeText(typeNode, source), pointers),
	}

	params := declarator.ChildByFieldName("parameters")
	if params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			child := params.Child(i)
			if child.Kind() != "parameter_declaration" {
				continue
			}
			arg, ok := extractParameter(child, source)
			if !ok {
				continue
			}
			fn.Arguments = append(fn.Arguments, arg)
		}
	}
	return fn, true
}

// extractParameter builds an Argument. A lone "void" parameter reports
// false so zero-argument prototypes come out with an empty argument list.
func extractParameter(node *sitter.Node, source []byte) (Argument, bool) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return Argument{}, false
	}

	declarator, pointers := unwrapPointers(node.ChildByFieldName("declarator"))
	baseType := nodeText(typeNode, source)
	name := declaratorName(declarator, source)

	if baseType == "void" && pointers == 0 && name == "" {
		return Argument{}, false
	}

	typeText := typeWithPointers(typeQualifiers(node, source), baseType, pointers)
	arg := Argument{
		Name:     name,
		TypeText: typeText,
	}
	if name != "" {
		arg.PrettyText = typeText + " " + name + arraySuffix(declarator, source)
	} else {
		arg.PrettyText = typeText
	}
	return arg, true
}

// unwrapPointers strips pointer_declarator wrappers, counting them.
func unwrapPointers(node *sitter.Node) (*sitter.Node, int) {
	pointers := 0
	for node != nil && node.Kind() == "pointer_declarator" {
		node = node.ChildByFieldName("declarator")
		pointers++
	}
	return node, pointers
}

// declaratorName digs the identifier out of a (possibly nested) declarator.
func declaratorName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "identifier":
		return nodeText(node, source)
	case "pointer_declarator", "array_declarator", "parenthesized_declarator", "function_declarator":
		return declaratorName(node.ChildByFieldName("declarator"), source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "identifier" {
			return nodeText(child, source)
		}
	}
	return ""
}

// typeQualifiers collects leading qualifiers (const, volatile) that
// tree-sitter keeps outside the type field.
func typeQualifiers(node *sitter.Node, source []byte) string {
	var quals []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "type_qualifier" {
			quals = append(quals, nodeText(child, source))
		}
	}
	return strings.Join(quals, " ")
}

// typeWithPointers renders type text in the "Base *" display format the
// naming heuristics match against.
func typeWithPointers(qualifiers, base string, pointers int) string {
	text := base
	if qualifiers != "" {
		text = qualifiers + " " + base
	}
	if pointers > 0 {
		text += " " + strings.Repeat("*", pointers)
	}
	return text
}

// arraySuffix renders trailing [] dimensions of an array parameter.
func arraySuffix(node *sitter.Node, source []byte) string {
	if node == nil || node.Kind() != "array_declarator" {
		return ""
	}
	text := nodeText(node, source)
	if idx := strings.Index(text, "["); idx >= 0 {
		return text[idx:]
	}
	return ""
}

// typedefNames returns the alias names a type_definition introduces. The
// underlying type is identified by the "type" field so its own name is not
// mistaken for an alias.
func typedefNames(node *sitter.Node, source []byte) []string {
	typeNode := node.ChildByFieldName("type")
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if typeNode != nil && child.StartByte() == typeNode.StartByte() {
			continue
		}
		switch child.Kind() {
		case "type_identifier":
			names = append(names, nodeText(child, source))
		case "pointer_declarator", "array_declarator":
			if name := declaratorName(child, source); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// isTopLevel reports whether a declaration sits at file scope.
func isTopLevel(node *sitter.Node) bool {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "function_definition", "compound_statement":
			return false
		case "translation_unit":
			return true
		}
	}
	return true
}

// nodeText extracts the source text of a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree visits every node until the visitor returns false for a subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
