// Package domain holds the translation pipeline and the host workflow that
// drives it over a project.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/domain/analysis"
	"cs2kt.dev/pkg/cs2kt/internal/domain/emitter"
	"cs2kt.dev/pkg/cs2kt/internal/domain/rules"
	"cs2kt.dev/pkg/cs2kt/internal/domain/typemap"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

// TranslateResult is the Kotlin rendering of one unit.
type TranslateResult struct {
	Output       string
	Markers      int
	Declarations int
}

// Translator renders one parsed unit as Kotlin.
type Translator interface {
	// TranslateUnit resolves unit against index, analyzes it and emits it.
	// A nil index resolves the unit on its own against the default catalog.
	// The partial output is returned together with a fatal emission error.
	TranslateUnit(ctx context.Context, unit *ast.CompilationUnit, index *semantic.Index) (TranslateResult, error)
}

type translator struct {
	mapper   *typemap.Mapper
	registry *rules.Registry
	indent   int
}

// NewTranslator creates a Translator sharing mapper and registry between
// units. Both are read-only, so the translator is safe for concurrent use.
func NewTranslator(mapper *typemap.Mapper, registry *rules.Registry, indent int) Translator {
	if mapper == nil {
		mapper = typemap.New()
	}

	if registry == nil {
		registry = rules.Default()
	}

	return &translator{mapper: mapper, registry: registry, indent: indent}
}

func (t *translator) TranslateUnit(ctx context.Context, unit *ast.CompilationUnit, index *semantic.Index) (TranslateResult, error) {
	if err := ctx.Err(); err != nil {
		return TranslateResult{}, err
	}

	if unit == nil {
		return TranslateResult{}, nil
	}

	var options []semantic.ResolverOption
	if index != nil {
		options = append(options, semantic.WithIndex(index))
	}

	facade := semantic.NewResolver(unit, options...)
	table := analysis.Analyze(unit, facade)
	e := emitter.New(facade, table, t.mapper, t.registry, emitter.WithIndent(t.indent))

	out, err := e.Emit(unit)
	result := TranslateResult{Output: out, Markers: e.Markers(), Declarations: countDeclarations(unit)}

	slog.Debug("translated unit", "path", unit.Path, "symbols", table.Len(), "markers", result.Markers)

	if err != nil {
		return result, fmt.Errorf("translate %s: %w", unit.Path, err)
	}

	return result, nil
}

// countDeclarations counts the type level declarations of unit.
func countDeclarations(unit *ast.CompilationUnit) int {
	count := 0

	ast.Walk(unit, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.TypeDecl, *ast.EnumDecl, *ast.DelegateDecl:
			count++
		case *ast.Block:
			return false
		}

		return true
	})

	return count
}
