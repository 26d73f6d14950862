// Package emitter walks a C# syntax tree and writes the Kotlin text for it.
package emitter

import (
	"errors"
	"fmt"
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/domain/analysis"
	"cs2kt.dev/pkg/cs2kt/internal/domain/rules"
	"cs2kt.dev/pkg/cs2kt/internal/domain/typemap"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

// ErrUnsupportedShape is returned when a node has a form the emitter has no
// case for at all. It is fatal for the unit.
var ErrUnsupportedShape = errors.New("unsupported shape")

// MarkerPrefix starts every unsupported construct marker.
const MarkerPrefix = "/* unsupported: "

type scopeKind int

const (
	loopScope scopeKind = iota
	switchScope
)

// Option customizes an Emitter.
type Option func(*Emitter)

// WithIndent sets the number of spaces per indentation level.
func WithIndent(width int) Option {
	return func(e *Emitter) {
		e.indent = width
	}
}

// Emitter renders one unit. It keeps per-unit state and must not be shared
// between goroutines; the facade, mapper and registry it reads may be.
type Emitter struct {
	facade   semantic.Facade
	table    *analysis.Table
	mapper   *typemap.Mapper
	registry *rules.Registry
	indent   int

	w        *Writer
	err      error
	aliases  map[semantic.Symbol]string
	scopes   []scopeKind
	owners   []owner
	catches  []string
	temps    int
	markers  int
	sequence bool
	pkg      bool
}

// owner describes the type whose members are being emitted.
type owner struct {
	decl      ast.Decl
	iface     bool
	singleton bool
	baseClass bool
}

// New returns an Emitter for one unit.
func New(facade semantic.Facade, table *analysis.Table, mapper *typemap.Mapper, registry *rules.Registry, options ...Option) *Emitter {
	if mapper == nil {
		mapper = typemap.New()
	}

	e := &Emitter{
		facade:   facade,
		table:    table,
		mapper:   mapper,
		registry: registry,
		indent:   DefaultIndent,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// Emit renders unit. The output is returned even when err is non-nil, so a
// caller can report how far emission got.
func (e *Emitter) Emit(unit *ast.CompilationUnit) (string, error) {
	e.w = NewWriter(e.indent)
	e.err = nil
	e.aliases = map[semantic.Symbol]string{}
	e.scopes = nil
	e.owners = nil
	e.catches = nil
	e.temps = 0
	e.markers = 0
	e.sequence = false
	e.pkg = false

	if unit != nil {
		e.unit(unit)
	}

	return e.w.String(), e.err
}

// Markers returns the number of unsupported construct markers written by
// the last Emit.
func (e *Emitter) Markers() int { return e.markers }

// Write implements rules.Context.
func (e *Emitter) Write(text string) { e.w.Write(text) }

// Expr implements rules.Context.
func (e *Emitter) Expr(x ast.Expr) { e.expr(x) }

// Args implements rules.Context.
func (e *Emitter) Args(args []*ast.Argument) {
	for i, arg := range args {
		if i > 0 {
			e.w.Write(", ")
		}

		if arg.Name != "" {
			e.w.Write(ident(arg.Name) + " = ")
		}

		e.expr(arg.X)
	}
}

// CallArgs implements rules.Context.
func (e *Emitter) CallArgs(args []*ast.Argument) {
	if len(args) == 1 && args[0].Name == "" {
		if lambda, ok := args[0].X.(*ast.Lambda); ok {
			e.w.Write(" ")
			e.lambda(lambda)

			return
		}
	}

	e.w.Write("(")
	e.Args(args)
	e.w.Write(")")
}

// TypeArgs implements rules.Context.
func (e *Emitter) TypeArgs(access *ast.MemberAccess) []string {
	if access == nil {
		return nil
	}

	return e.typeList(access.TypeArgs)
}

// IsTypeName implements rules.Context.
func (e *Emitter) IsTypeName(x ast.Expr) bool {
	sym := e.symbol(x)

	return sym != nil && sym.Kind() == semantic.TypeSymbol
}

func (e *Emitter) symbol(n ast.Node) semantic.Symbol {
	if e.facade == nil || n == nil {
		return nil
	}

	return e.facade.SymbolOf(n)
}

func (e *Emitter) typeOf(ref ast.TypeRef) *semantic.TypeDescriptor {
	switch {
	case ref == nil:
		return semantic.UnresolvedType("")
	case e.facade == nil:
		return semantic.UnresolvedType(ref.Span().Text)
	}

	return e.facade.TypeOf(ref)
}

func (e *Emitter) typeOfExpr(x ast.Expr) *semantic.TypeDescriptor {
	if e.facade == nil {
		return semantic.UnresolvedType("")
	}

	return e.facade.TypeOfExpr(x)
}

func (e *Emitter) typeText(ref ast.TypeRef) string {
	return e.mapper.MapType(e.typeOf(ref))
}

func (e *Emitter) typeList(refs []ast.TypeRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, e.typeText(ref))
	}

	return out
}

func (e *Emitter) isMutated(n ast.Node) bool {
	return e.table.IsMutated(e.symbol(n))
}

// fail records the first fatal error of the unit.
func (e *Emitter) fail(construct string, n ast.Node) {
	if e.err != nil {
		return
	}

	line := 0
	if n != nil {
		line = n.Span().Line
	}

	e.err = fmt.Errorf("%w: %s at line %d", ErrUnsupportedShape, construct, line)
}

// marker returns an unsupported construct comment embedding the node's
// source text verbatim.
func (e *Emitter) marker(construct string, n ast.Node) string {
	e.markers++

	text := ""
	if n != nil {
		text = n.Span().Text
	}

	if text == "" {
		return MarkerPrefix + construct + " */"
	}

	return MarkerPrefix + construct + " " + commentSafe.Replace(text) + " */"
}

// commentSafe breaks comment delimiters in embedded source. Kotlin block
// comments nest, so openers are broken as well as closers.
var commentSafe = strings.NewReplacer("*/", "* /", "/*", "/ *")

// markerLine writes a marker as a statement of its own.
func (e *Emitter) markerLine(construct string, n ast.Node) {
	e.w.Raw(e.marker(construct, n))
	e.w.Line("")
}

// state is the part of the emitter a speculative emission may change.
type state struct {
	mark    Mark
	temps   int
	markers int
	err     error
}

func (e *Emitter) save() state {
	return state{mark: e.w.Mark(), temps: e.temps, markers: e.markers, err: e.err}
}

func (e *Emitter) restore(s state) {
	e.w.Truncate(s.mark)
	e.temps = s.temps
	e.markers = s.markers
	e.err = s.err
}

// capture renders fn into a scratch writer and discards its side effects.
func (e *Emitter) capture(fn func()) string {
	saved := e.w
	s := state{temps: e.temps, markers: e.markers, err: e.err}
	e.w = NewWriter(e.indent)

	fn()

	out := e.w.String()
	e.w = saved
	e.temps = s.temps
	e.markers = s.markers
	e.err = s.err

	return out
}

func (e *Emitter) tempName() string {
	name := fmt.Sprintf("tmp%d", e.temps)
	e.temps++

	return name
}

func (e *Emitter) pushScope(kind scopeKind) { e.scopes = append(e.scopes, kind) }
func (e *Emitter) popScope()                { e.scopes = e.scopes[:len(e.scopes)-1] }

// breakEndsSwitch reports whether a break at this point belongs to a switch
// rather than a loop.
func (e *Emitter) breakEndsSwitch() bool {
	return len(e.scopes) > 0 && e.scopes[len(e.scopes)-1] == switchScope
}

func (e *Emitter) currentOwner() owner {
	if len(e.owners) == 0 {
		return owner{}
	}

	return e.owners[len(e.owners)-1]
}

var kotlinKeywords = map[string]bool{
	"as":        true,
	"fun":       true,
	"in":        true,
	"is":        true,
	"object":    true,
	"typealias": true,
	"typeof":    true,
	"val":       true,
	"var":       true,
	"when":      true,
}

// ident spells a C# identifier in Kotlin, escaping target keywords.
func ident(name string) string {
	name = strings.TrimPrefix(name, "@")
	if kotlinKeywords[name] {
		return "`" + name + "`"
	}

	return name
}

// lowerFirst lower-cases the leading capital run of a member name:
// Name → name, UTF8 → utf8, IOStream → ioStream.
func lowerFirst(name string) string {
	runes := []rune(strings.TrimPrefix(name, "@"))

	n := 0
	for n < len(runes) && isUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return ident(string(runes))
	case n > 1 && n < len(runes) && isLower(runes[n]):
		n--
	}

	for i := range n {
		runes[i] = toLower(runes[i])
	}

	return ident(string(runes))
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func toLower(r rune) rune {
	if isUpper(r) {
		return r + ('a' - 'A')
	}

	return r
}
