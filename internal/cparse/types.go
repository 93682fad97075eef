package cparse

// Argument is a single function parameter.
type Argument struct {
	Name       string // may be empty for unnamed prototype parameters
	TypeText   string // e.g. "UART_HandleTypeDef *"
	PrettyText string // e.g. "UART_HandleTypeDef * huart"
}

// FunctionDecl is one function prototype or definition.
type FunctionDecl struct {
	Name           string
	Arguments      []Argument
	ReturnTypeText string
}

// StructDecl records a struct tag or typedef name. Only the name matters to
// the generator; field layout is never inspected.
type StructDecl struct {
	Name string
}

// SourceUnit is the parse result for one translation unit: every function
// and struct declaration in source order. It is immutable once produced.
type SourceUnit struct {
	Functions []FunctionDecl
	Structs   []StructDecl
}
