package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/alexaandru/go-sitter-forest/c_sharp"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// ErrNoRootNode is returned when the parser produces a tree without a root.
var ErrNoRootNode = errors.New("no root node")

// CSharpFileAdapter turns C# source text into the translator's syntax tree so
// the domain layer never sees the grammar's concrete node kinds.
type CSharpFileAdapter interface {
	// Parse lowers src into a compilation unit. Regions the grammar could not
	// parse are kept as unsupported nodes and reported as diagnostics.
	Parse(ctx context.Context, path m.Path, src []byte) (*ParsedUnit, error)
}

// ParsedUnit is the result of parsing one file.
type ParsedUnit struct {
	Unit        *ast.CompilationUnit
	Diagnostics []m.Diagnostic
}

// LocalCSharpFileAdapter is a CSharpFileAdapter backed by tree-sitter.
// Parsers are pooled, so one adapter may be shared between goroutines.
type LocalCSharpFileAdapter struct {
	parsers sync.Pool
}

var csharpLanguage = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(c_sharp.GetLanguage())
})

// NewLocalCSharpFileAdapter constructs a LocalCSharpFileAdapter.
func NewLocalCSharpFileAdapter() *LocalCSharpFileAdapter {
	return &LocalCSharpFileAdapter{
		parsers: sync.Pool{
			New: func() any {
				p := sitter.NewParser()
				p.SetLanguage(csharpLanguage())

				return p
			},
		},
	}
}

// Parse implements CSharpFileAdapter.
func (a *LocalCSharpFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*ParsedUnit, error) {
	parser, ok := a.parsers.Get().(*sitter.Parser)
	if !ok {
		return nil, fmt.Errorf("parser pool returned %T", parser)
	}
	defer a.parsers.Put(parser)

	tree, err := parser.ParseString(ctx, nil, src)
	if err != nil {
		slog.Error("Failed to parse source", "path", path, "error", err)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNoRootNode)
	}

	l := &lowering{src: src, path: path}
	unit := l.unit(root)

	return &ParsedUnit{Unit: unit, Diagnostics: l.diagnostics}, nil
}

// lowering converts one tree-sitter tree. Field names are tried first and
// positional lookups second, so small grammar revisions still lower.
type lowering struct {
	src         []byte
	path        m.Path
	diagnostics []m.Diagnostic
	// binding is the receiver of the innermost `a?.` still waiting for its
	// member binding.
	binding ast.Expr
}

func (l *lowering) text(n sitter.Node) string {
	return string(l.src[n.StartByte():n.EndByte()])
}

func (l *lowering) pos(n sitter.Node) ast.Pos {
	p := n.StartPoint()

	return ast.Pos{Src: ast.Span{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Text: l.text(n)}}
}

func (l *lowering) unsupported(n sitter.Node) *ast.Unsupported {
	kind := n.Type()
	if kind == "ERROR" {
		kind = "unparsed source"

		pos := l.pos(n)
		l.diagnostics = append(l.diagnostics, m.Diagnostic{
			Path:    l.path,
			Line:    pos.Src.Line,
			Column:  pos.Src.Column,
			Message: "syntax error near " + strings.TrimSpace(firstLine(pos.Src.Text)),
		})
	}

	return &ast.Unsupported{Pos: l.pos(n), Construct: ast.ConstructName(kind)}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}

func named(n sitter.Node) []sitter.Node {
	out := make([]sitter.Node, 0, n.NamedChildCount())
	for idx := range n.NamedChildCount() {
		c := n.NamedChild(idx)
		if c.Type() == "comment" {
			continue
		}

		out = append(out, c)
	}

	return out
}

func children(n sitter.Node) []sitter.Node {
	out := make([]sitter.Node, 0, n.ChildCount())
	for i := range n.ChildCount() {
		out = append(out, n.Child(i))
	}

	return out
}

func field(n sitter.Node, name string) (sitter.Node, bool) {
	c := n.ChildByFieldName(name)

	return c, !c.IsNull()
}

func firstOf(n sitter.Node, kinds ...string) (sitter.Node, bool) {
	for _, c := range named(n) {
		for _, kind := range kinds {
			if c.Type() == kind {
				return c, true
			}
		}
	}

	return sitter.Node{}, false
}

func same(a, b sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// tokens returns the text of the anonymous children of n.
func (l *lowering) tokens(n sitter.Node) []string {
	var out []string

	for _, c := range children(n) {
		if !c.IsNamed() {
			out = append(out, l.text(c))
		}
	}

	return out
}

func (l *lowering) hasToken(n sitter.Node, token string) bool {
	for _, t := range l.tokens(n) {
		if t == token {
			return true
		}
	}

	return false
}

// operator returns the operator of a unary, binary or assignment node.
func (l *lowering) operator(n sitter.Node) string {
	if op, ok := field(n, "operator"); ok {
		return l.text(op)
	}

	if op, ok := firstOf(n, "assignment_operator"); ok {
		return l.text(op)
	}

	for _, t := range l.tokens(n) {
		if t != "(" && t != ")" {
			return t
		}
	}

	return ""
}

func (l *lowering) name(n sitter.Node) string {
	if c, ok := field(n, "name"); ok {
		return l.text(c)
	}

	if c, ok := firstOf(n, "identifier"); ok {
		return l.text(c)
	}

	return ""
}

func (l *lowering) modifiers(n sitter.Node) ast.Modifiers {
	var mods ast.Modifiers

	for _, c := range named(n) {
		if c.Type() == "modifier" || c.Type() == "parameter_modifier" {
			mods = append(mods, l.text(c))
		}
	}

	return mods
}

func (l *lowering) unit(root sitter.Node) *ast.CompilationUnit {
	unit := &ast.CompilationUnit{Pos: l.pos(root), Path: string(l.path)}

	// A file scoped namespace owns the declarations after it, whether the
	// grammar nests them or leaves them as siblings.
	var scoped *ast.Namespace

	add := func(d ast.Decl) {
		if d == nil {
			return
		}

		if scoped != nil {
			scoped.Members = append(scoped.Members, d)
			return
		}

		unit.Members = append(unit.Members, d)
	}

	for _, c := range named(root) {
		switch c.Type() {
		case "using_directive":
			unit.Usings = append(unit.Usings, l.using(c))
		case "extern_alias_directive", "attribute_list", "global_attribute", "global_attribute_list":
		case "file_scoped_namespace_declaration":
			scoped = &ast.Namespace{Pos: l.pos(c), FileScoped: true}
			if n, ok := field(c, "name"); ok {
				scoped.Name = l.text(n)
			}

			unit.Members = append(unit.Members, scoped)

			for _, inner := range named(c) {
				if inner.Type() == "using_directive" {
					unit.Usings = append(unit.Usings, l.using(inner))
					continue
				}

				if n, ok := field(c, "name"); ok && same(n, inner) {
					continue
				}

				add(l.decl(inner))
			}
		default:
			add(l.decl(c))
		}
	}

	return unit
}

func (l *lowering) using(n sitter.Node) string {
	text := strings.TrimSpace(l.text(n))
	text = strings.TrimPrefix(text, "global ")
	text = strings.TrimPrefix(text, "using")
	text = strings.TrimSuffix(text, ";")

	return strings.TrimSpace(text)
}
