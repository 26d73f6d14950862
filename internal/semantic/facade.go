// Package semantic resolves C# syntax nodes to symbols and type descriptors.
package semantic

import "cs2kt.dev/pkg/cs2kt/internal/ast"

// SymbolKind classifies a Symbol.
type SymbolKind int

// Available SymbolKind values.
const (
	UnknownSymbol SymbolKind = iota
	TypeSymbol
	MethodSymbol
	PropertySymbol
	FieldSymbol
	LocalSymbol
	ParameterSymbol
	EnumMemberSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case TypeSymbol:
		return "type"
	case MethodSymbol:
		return "method"
	case PropertySymbol:
		return "property"
	case FieldSymbol:
		return "field"
	case LocalSymbol:
		return "local"
	case ParameterSymbol:
		return "parameter"
	case EnumMemberSymbol:
		return "enum member"
	default:
		return "unknown"
	}
}

// Symbol is an opaque handle to a named entity. Two symbols denote the same
// entity only when they are the same handle.
type Symbol interface {
	Name() string
	Kind() SymbolKind
	ContainingType() Symbol
	IsStatic() bool
}

// Facade answers the semantic questions the translator asks about a unit.
type Facade interface {
	// SymbolOf returns the symbol a node declares or refers to, or nil.
	SymbolOf(node ast.Node) Symbol
	// TypeOf resolves a syntactic type. The result is never nil.
	TypeOf(ref ast.TypeRef) *TypeDescriptor
	// TypeOfExpr returns the static type of an expression when known.
	TypeOfExpr(x ast.Expr) *TypeDescriptor
	// IsStatic reports whether sym is a static member.
	IsStatic(sym Symbol) bool
	// ImplementedMembers lists interface members implemented by sym.
	ImplementedMembers(sym Symbol) []Symbol
	// InSource reports whether sym is declared in the translated project.
	InSource(sym Symbol) bool
}
