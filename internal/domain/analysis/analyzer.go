// Package analysis runs the pre-pass that finds which symbols are assigned
// after their declaration.
package analysis

import (
	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

// Site is one place where a symbol is written.
type Site struct {
	Node ast.Node
	Line int
}

// Table holds the write sites of one unit, keyed by symbol identity. It is
// only read once Analyze returns.
type Table struct {
	facade semantic.Facade
	sites  map[semantic.Symbol][]Site
}

// Analyze walks root and records every assignment, increment, decrement and
// ref/out argument whose target resolves to a symbol. Targets the facade
// cannot resolve are skipped.
func Analyze(root ast.Node, facade semantic.Facade) *Table {
	t := &Table{facade: facade, sites: map[semantic.Symbol][]Site{}}
	if root == nil || facade == nil {
		return t
	}

	ast.Walk(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Assign:
			t.record(n.L, n)
		case *ast.Unary:
			if n.Op == "++" || n.Op == "--" {
				t.record(n.X, n)
			}
		case *ast.Argument:
			if n.Modifier == "ref" || n.Modifier == "out" {
				t.record(n.X, n)
			}
		}

		return true
	})

	return t
}

func (t *Table) record(target ast.Expr, site ast.Node) {
	for {
		p, ok := target.(*ast.Paren)
		if !ok {
			break
		}

		target = p.X
	}

	switch target.(type) {
	case *ast.Ident, *ast.MemberAccess:
	default:
		// a[i] = x writes an element, not a.
		return
	}

	sym := t.facade.SymbolOf(target)
	if sym == nil {
		return
	}

	t.sites[sym] = append(t.sites[sym], Site{Node: site, Line: site.Span().Line})
}

// IsMutated reports whether sym has at least one recorded write.
func (t *Table) IsMutated(sym semantic.Symbol) bool {
	if t == nil || sym == nil {
		return false
	}

	return len(t.sites[sym]) > 0
}

// Sites returns the recorded writes of sym in walk order.
func (t *Table) Sites(sym semantic.Symbol) []Site {
	if t == nil || sym == nil {
		return nil
	}

	return t.sites[sym]
}

// Len returns the number of distinct mutated symbols.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.sites)
}

// IsStatic reports whether member is static: its modifiers say static or
// const, or the facade reports its symbol static.
func (t *Table) IsStatic(member ast.Member) bool {
	if member == nil {
		return false
	}

	if member.Mods().Any("static", "const") {
		return true
	}

	if t == nil || t.facade == nil {
		return false
	}

	if field, ok := member.(*ast.FieldDecl); ok {
		for _, v := range field.Vars {
			if sym := t.facade.SymbolOf(v); sym != nil && t.facade.IsStatic(sym) {
				return true
			}
		}

		return false
	}

	sym := t.facade.SymbolOf(member)

	return sym != nil && t.facade.IsStatic(sym)
}
