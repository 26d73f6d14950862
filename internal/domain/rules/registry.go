// Package rules holds the registry of custom emission rules for well-known
// library calls.
package rules

import (
	"errors"
	"strings"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

// ErrNotApplicable is returned by a handler that declines an invocation, for
// example because its arity is not covered. The caller then falls back to
// the generic call form.
var ErrNotApplicable = errors.New("rule not applicable")

// Context is the part of the emitter a handler may drive.
type Context interface {
	// Write appends raw target text.
	Write(text string)
	// Expr emits an expression.
	Expr(x ast.Expr)
	// Args emits arguments comma separated, without parentheses.
	Args(args []*ast.Argument)
	// CallArgs emits a parenthesized argument list, switching to a trailing
	// lambda when the only argument is a lambda.
	CallArgs(args []*ast.Argument)
	// TypeArgs returns the mapped type arguments of a generic member access.
	TypeArgs(access *ast.MemberAccess) []string
	// IsTypeName reports whether x names a type, as in a static call.
	IsTypeName(x ast.Expr) bool
}

// Handler emits a whole invocation. access is the member access the call is
// made through and may be nil for unqualified calls.
type Handler func(ctx Context, call *ast.Invocation, access *ast.MemberAccess) error

// Registry maps signatures of the form "Type.Member" to handlers. It is never
// modified after Build and may be shared across goroutines.
type Registry struct {
	rules map[string]Handler
}

// Builder collects rules for a Registry.
type Builder struct {
	rules map[string]Handler
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{rules: map[string]Handler{}}
}

// Register stores h under signature and under the bare member name. A later
// registration for the same key replaces the earlier one.
func (b *Builder) Register(signature string, h Handler) *Builder {
	b.rules[signature] = h

	if bare := BareName(signature); bare != signature {
		b.rules[bare] = h
	}

	return b
}

// Build returns an immutable registry holding the rules registered so far.
func (b *Builder) Build() *Registry {
	rules := make(map[string]Handler, len(b.rules))
	for k, v := range b.rules {
		rules[k] = v
	}

	return &Registry{rules: rules}
}

// Resolve looks up containingType.member, then member alone.
func (r *Registry) Resolve(containingType, member string) (Handler, bool) {
	if r == nil {
		return nil, false
	}

	if containingType != "" {
		if h, ok := r.rules[containingType+"."+member]; ok {
			return h, true
		}
	}

	h, ok := r.rules[member]

	return h, ok
}

// ResolveExact looks up containingType.member only.
func (r *Registry) ResolveExact(containingType, member string) (Handler, bool) {
	if r == nil || containingType == "" {
		return nil, false
	}

	h, ok := r.rules[containingType+"."+member]

	return h, ok
}

// Len returns the number of keys in the registry.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	return len(r.rules)
}

// BareName returns the member part of a signature.
func BareName(signature string) string {
	if i := strings.LastIndex(signature, "."); i >= 0 {
		return signature[i+1:]
	}

	return signature
}
