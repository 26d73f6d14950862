// Package ast defines the C# syntax tree consumed by the translator.
//
// Every node is a pointer to a concrete struct. The Decl, Stmt, Expr and
// TypeRef interfaces are closed by unexported marker methods, so a type
// switch over them only has to cover the variants declared here.
package ast

import "strings"

// Span locates a node in its source file and keeps the node's verbatim text.
type Span struct {
	Line   int
	Column int
	Text   string
}

// Node is implemented by every syntax tree node.
type Node interface {
	Span() Span
}

// Decl is a declaration node.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// TypeRef is a syntactic type reference.
type TypeRef interface {
	Node
	typeNode()
}

// Pos is embedded by every node to carry its Span.
type Pos struct {
	Src Span
}

// Span implements Node.
func (p *Pos) Span() Span { return p.Src }

// Modifiers is the declared modifier set of a member, in source order.
type Modifiers []string

// Has reports whether the modifier set contains mod.
func (m Modifiers) Has(mod string) bool {
	for _, v := range m {
		if v == mod {
			return true
		}
	}

	return false
}

// Any reports whether the modifier set contains one of mods.
func (m Modifiers) Any(mods ...string) bool {
	for _, mod := range mods {
		if m.Has(mod) {
			return true
		}
	}

	return false
}

// Member is a declaration that carries modifiers and belongs to a type body.
type Member interface {
	Decl
	Mods() Modifiers
}

// Unsupported stands for a construct with no translation rule. It keeps the
// original text so the emitter can reproduce it verbatim inside a marker.
type Unsupported struct {
	Pos
	Construct string
}

func (*Unsupported) declNode() {}
func (*Unsupported) stmtNode() {}
func (*Unsupported) exprNode() {}
func (*Unsupported) typeNode() {}

// Mods implements Member so unsupported members can sit in type bodies.
func (*Unsupported) Mods() Modifiers { return nil }

// ConstructName turns a grammar node kind such as "using_statement" into the
// human readable construct name used in markers.
func ConstructName(kind string) string {
	return strings.ReplaceAll(kind, "_", " ")
}
