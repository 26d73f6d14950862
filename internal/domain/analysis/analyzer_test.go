package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
	"cs2kt.dev/pkg/cs2kt/internal/semantic"
)

func intType() ast.TypeRef { return &ast.PredefinedType{Name: "int"} }

func intLit(v string) *ast.Literal { return &ast.Literal{Kind: ast.IntLiteral, Value: v} }

func local(name string, init ast.Expr) (*ast.LocalDecl, *ast.VarDeclarator) {
	v := &ast.VarDeclarator{Name: name, Init: init}

	return &ast.LocalDecl{Type: intType(), Vars: []*ast.VarDeclarator{v}}, v
}

func classWith(members ...ast.Decl) *ast.CompilationUnit {
	return &ast.CompilationUnit{Members: []ast.Decl{
		&ast.TypeDecl{Kind: ast.ClassKind, Name: "Sample", Members: members},
	}}
}

func methodWith(stmts ...ast.Stmt) *ast.MethodDecl {
	return &ast.MethodDecl{
		Return: &ast.PredefinedType{Name: "void"},
		Name:   "Run",
		Body:   &ast.Block{Stmts: stmts},
	}
}

func TestAnalyze_ReassignedLocalIsMutated(t *testing.T) {
	declX, x := local("x", intLit("1"))
	declY, y := local("y", intLit("2"))
	assign := &ast.ExprStmt{X: &ast.Assign{Op: "=", L: &ast.Ident{Name: "x"}, R: intLit("3")}}

	unit := classWith(methodWith(declX, declY, assign))
	facade := semantic.NewResolver(unit)

	table := Analyze(unit, facade)

	require.True(t, table.IsMutated(facade.SymbolOf(x)))
	require.False(t, table.IsMutated(facade.SymbolOf(y)))
	require.Len(t, table.Sites(facade.SymbolOf(x)), 1)
	require.Equal(t, 1, table.Len())
}

func TestAnalyze_ShadowedLocalsDoNotCrossContaminate(t *testing.T) {
	declFirst, first := local("i", intLit("0"))
	declSecond, second := local("i", intLit("0"))
	increment := &ast.ExprStmt{X: &ast.Unary{Op: "++", X: &ast.Ident{Name: "i"}, Postfix: true}}

	unit := classWith(methodWith(
		&ast.Block{Stmts: []ast.Stmt{declFirst, increment}},
		&ast.Block{Stmts: []ast.Stmt{declSecond}},
	))
	facade := semantic.NewResolver(unit)

	table := Analyze(unit, facade)

	require.NotSame(t, facade.SymbolOf(first), facade.SymbolOf(second))
	require.True(t, table.IsMutated(facade.SymbolOf(first)))
	require.False(t, table.IsMutated(facade.SymbolOf(second)))
}

func TestAnalyze_CompoundAndRefArguments(t *testing.T) {
	declA, a := local("a", intLit("0"))
	declB, b := local("b", intLit("0"))
	compound := &ast.ExprStmt{X: &ast.Assign{Op: "+=", L: &ast.Paren{X: &ast.Ident{Name: "a"}}, R: intLit("1")}}
	call := &ast.ExprStmt{X: &ast.Invocation{
		Fn:   &ast.Ident{Name: "Swap"},
		Args: []*ast.Argument{{Modifier: "ref", X: &ast.Ident{Name: "b"}}},
	}}

	unit := classWith(methodWith(declA, declB, compound, call))
	facade := semantic.NewResolver(unit)

	table := Analyze(unit, facade)

	require.True(t, table.IsMutated(facade.SymbolOf(a)))
	require.True(t, table.IsMutated(facade.SymbolOf(b)))
}

func TestAnalyze_ElementWriteAndUnresolvedTargetsAreSkipped(t *testing.T) {
	arr := &ast.VarDeclarator{Name: "values", Init: &ast.ArrayCreation{Elem: intType(), Sizes: []ast.Expr{intLit("3")}}}
	decl := &ast.LocalDecl{Type: &ast.ArrayType{Elem: intType(), Rank: 1}, Vars: []*ast.VarDeclarator{arr}}
	element := &ast.ExprStmt{X: &ast.Assign{
		Op: "=",
		L:  &ast.ElementAccess{X: &ast.Ident{Name: "values"}, Index: []*ast.Argument{{X: intLit("0")}}},
		R:  intLit("1"),
	}}
	unknown := &ast.ExprStmt{X: &ast.Assign{Op: "=", L: &ast.Ident{Name: "nowhere"}, R: intLit("1")}}

	unit := classWith(methodWith(decl, element, unknown))
	facade := semantic.NewResolver(unit)

	table := Analyze(unit, facade)

	require.False(t, table.IsMutated(facade.SymbolOf(arr)))
	require.Equal(t, 0, table.Len())
}

func TestAnalyze_FieldAssignedThroughThis(t *testing.T) {
	count := &ast.VarDeclarator{Name: "count"}
	field := &ast.FieldDecl{Modifiers: ast.Modifiers{"private"}, Type: intType(), Vars: []*ast.VarDeclarator{count}}
	assign := &ast.ExprStmt{X: &ast.Assign{
		Op: "=",
		L:  &ast.MemberAccess{X: &ast.This{}, Name: "count"},
		R:  intLit("1"),
	}}

	unit := classWith(field, methodWith(assign))
	facade := semantic.NewResolver(unit)

	table := Analyze(unit, facade)

	require.True(t, table.IsMutated(facade.SymbolOf(count)))
}

func TestTable_IsStatic(t *testing.T) {
	constant := &ast.FieldDecl{
		Modifiers: ast.Modifiers{"public", "const"},
		Type:      intType(),
		Vars:      []*ast.VarDeclarator{{Name: "Max", Init: intLit("10")}},
	}
	instance := &ast.FieldDecl{
		Modifiers: ast.Modifiers{"private"},
		Type:      intType(),
		Vars:      []*ast.VarDeclarator{{Name: "current"}},
	}
	static := &ast.MethodDecl{Modifiers: ast.Modifiers{"public", "static"}, Return: &ast.PredefinedType{Name: "void"}, Name: "Make"}
	helper := &ast.MethodDecl{Return: &ast.PredefinedType{Name: "void"}, Name: "Helper"}

	holder := &ast.CompilationUnit{Members: []ast.Decl{
		&ast.TypeDecl{Kind: ast.ClassKind, Name: "Holder", Modifiers: ast.Modifiers{"static"}, Members: []ast.Decl{helper}},
	}}
	unit := classWith(constant, instance, static)

	table := Analyze(unit, semantic.NewResolver(unit))
	holderTable := Analyze(holder, semantic.NewResolver(holder))

	require.True(t, table.IsStatic(constant))
	require.False(t, table.IsStatic(instance))
	require.True(t, table.IsStatic(static))
	require.True(t, holderTable.IsStatic(helper))
	require.False(t, table.IsStatic(nil))
}

func TestTable_NilAndUnknownDefaultToFalse(t *testing.T) {
	var table *Table

	require.False(t, table.IsMutated(nil))
	require.Nil(t, table.Sites(nil))
	require.Zero(t, table.Len())

	empty := Analyze(nil, nil)
	require.False(t, empty.IsMutated(nil))
}
