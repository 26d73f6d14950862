package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/domain/emitter"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

func sampleUnit() *ast.CompilationUnit {
	return &ast.CompilationUnit{Path: "Sample.cs", Members: []ast.Decl{&ast.Namespace{
		Name: "Demo",
		Members: []ast.Decl{
			&ast.TypeDecl{Kind: ast.ClassKind, Name: "Empty"},
			&ast.EnumDecl{Name: "Color", Members: []*ast.EnumMember{{Name: "Red"}}},
		},
	}}}
}

func TestTranslator_TranslateUnit(t *testing.T) {
	result, err := NewTranslator(nil, nil, 4).TranslateUnit(context.Background(), sampleUnit(), nil)
	require.NoError(t, err)

	require.Contains(t, result.Output, "package demo\n")
	require.Contains(t, result.Output, "class Empty")
	require.Equal(t, 2, result.Declarations)
	require.Equal(t, 0, result.Markers)
}

func TestTranslator_UsesProjectIndex(t *testing.T) {
	unit := sampleUnit()
	index := semantic.NewIndex(nil, unit)

	_, ok := index.Lookup("Empty")
	require.True(t, ok)

	result, err := NewTranslator(nil, nil, 2).TranslateUnit(context.Background(), unit, index)
	require.NoError(t, err)
	require.Contains(t, result.Output, "class Empty")
}

func TestTranslator_CountsMarkers(t *testing.T) {
	unit := &ast.CompilationUnit{Path: "Odd.cs", Members: []ast.Decl{
		&ast.Unsupported{Pos: ast.Pos{Src: ast.Span{Line: 1, Text: "extern alias X;"}}, Construct: "extern alias"},
	}}

	result, err := NewTranslator(nil, nil, 4).TranslateUnit(context.Background(), unit, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Markers)
	require.Contains(t, result.Output, emitter.MarkerPrefix)
}

func TestTranslator_FatalShapeIsWrapped(t *testing.T) {
	call := &ast.Invocation{Fn: &ast.Literal{Kind: ast.IntLiteral, Value: "1"}}
	call.Src = ast.Span{Line: 7}

	unit := &ast.CompilationUnit{Path: "Bad.cs", Members: []ast.Decl{&ast.TypeDecl{
		Kind: ast.ClassKind,
		Name: "Bad",
		Members: []ast.Decl{&ast.MethodDecl{
			Return: &ast.PredefinedType{Name: "void"},
			Name:   "Run",
			Body:   &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{X: call}}},
		}},
	}}}

	_, err := NewTranslator(nil, nil, 4).TranslateUnit(context.Background(), unit, nil)
	require.ErrorIs(t, err, emitter.ErrUnsupportedShape)
	require.ErrorContains(t, err, "translate Bad.cs")
}

func TestTranslator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTranslator(nil, nil, 4).TranslateUnit(ctx, sampleUnit(), nil)
	require.ErrorIs(t, err, context.Canceled)
}
