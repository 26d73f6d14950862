package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

func TestDefaultCatalog_Loads(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, catalog.Types)

	again, err := DefaultCatalog()
	require.NoError(t, err)
	require.Same(t, catalog, again)
}

func TestParseCatalog_RejectsUnknownKinds(t *testing.T) {
	_, err := ParseCatalog([]byte("types:\n  - {name: Widget, kind: gadget}\n"))
	require.ErrorContains(t, err, "unknown kind")

	_, err = ParseCatalog([]byte("types:\n  - {kind: class}\n"))
	require.ErrorContains(t, err, "has no name")

	_, err = ParseCatalog([]byte("types:\n  - {name: Widget, kind: class, members: [{name: Run, kind: verb}]}\n"))
	require.ErrorContains(t, err, "Widget.Run")
}

func TestCatalog_MergeReplacesByName(t *testing.T) {
	base := &Catalog{Types: []CatalogType{{Name: "A", Kind: "class"}, {Name: "B", Kind: "class"}}}
	extra := &Catalog{Types: []CatalogType{{Name: "B", Kind: "struct"}, {Name: "C", Kind: "enum"}}}

	merged := base.Merge(extra)

	require.Len(t, merged.Types, 3)
	require.Equal(t, "struct", merged.Types[1].Kind)
	require.Equal(t, "C", merged.Types[2].Name)
}

func TestResolver_LocalsAndParameters(t *testing.T) {
	n := &ast.Parameter{Name: "n", Type: &ast.PredefinedType{Name: "int"}}
	total := &ast.VarDeclarator{Name: "total", Init: &ast.Literal{Kind: ast.IntLiteral, Value: "0"}}
	useN := &ast.Ident{Name: "n"}
	useTotal := &ast.Ident{Name: "total"}

	unit := &ast.CompilationUnit{Members: []ast.Decl{&ast.TypeDecl{
		Kind: ast.ClassKind,
		Name: "Calc",
		Members: []ast.Decl{&ast.MethodDecl{
			Return: &ast.PredefinedType{Name: "int"},
			Name:   "Sum",
			Params: []*ast.Parameter{n},
			Body: &ast.Block{Stmts: []ast.Stmt{
				&ast.LocalDecl{Vars: []*ast.VarDeclarator{total}},
				&ast.ExprStmt{X: &ast.Assign{Op: "+=", L: useTotal, R: useN}},
			}},
		}},
	}}}

	r := NewResolver(unit)

	require.Same(t, r.SymbolOf(n), r.SymbolOf(useN))
	require.Same(t, r.SymbolOf(total), r.SymbolOf(useTotal))
	require.Equal(t, ParameterSymbol, r.SymbolOf(useN).Kind())
	require.Equal(t, LocalSymbol, r.SymbolOf(useTotal).Kind())
	require.True(t, r.InSource(r.SymbolOf(useTotal)))
	require.True(t, r.TypeOfExpr(useTotal).IsNamed("Int32"), "var takes the initializer type")
}

func TestResolver_MembersAndTypes(t *testing.T) {
	field := &ast.VarDeclarator{Name: "count"}
	viaThis := &ast.MemberAccess{X: &ast.This{}, Name: "count"}
	console := &ast.Ident{Name: "Console"}
	writeLine := &ast.MemberAccess{X: console, Name: "WriteLine"}

	unit := &ast.CompilationUnit{Members: []ast.Decl{&ast.TypeDecl{
		Kind: ast.ClassKind,
		Name: "Counter",
		Members: []ast.Decl{
			&ast.FieldDecl{Type: &ast.PredefinedType{Name: "int"}, Vars: []*ast.VarDeclarator{field}},
			&ast.MethodDecl{
				Return: &ast.PredefinedType{Name: "void"},
				Name:   "Bump",
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ExprStmt{X: &ast.Unary{Op: "++", X: viaThis, Postfix: true}},
					&ast.ExprStmt{X: &ast.Invocation{Fn: writeLine}},
				}},
			},
		},
	}}}

	r := NewResolver(unit)

	require.Same(t, r.SymbolOf(field), r.SymbolOf(viaThis))
	require.Equal(t, "Counter", ContainingTypeName(r.SymbolOf(viaThis)))

	require.Equal(t, TypeSymbol, r.SymbolOf(console).Kind())
	require.Equal(t, "Console", ContainingTypeName(r.SymbolOf(writeLine)))
	require.False(t, r.InSource(r.SymbolOf(writeLine)))
	require.True(t, r.IsStatic(r.SymbolOf(writeLine)))
}

func TestResolver_ImplementedMembers(t *testing.T) {
	area := &ast.MethodDecl{Return: &ast.PredefinedType{Name: "double"}, Name: "Area"}
	impl := &ast.MethodDecl{Return: &ast.PredefinedType{Name: "double"}, Name: "Area", Body: &ast.Block{}}
	other := &ast.MethodDecl{Return: &ast.PredefinedType{Name: "void"}, Name: "Draw", Body: &ast.Block{}}

	unit := &ast.CompilationUnit{Members: []ast.Decl{
		&ast.TypeDecl{Kind: ast.InterfaceKind, Name: "IShape", Members: []ast.Decl{area}},
		&ast.TypeDecl{
			Kind:    ast.ClassKind,
			Name:    "Square",
			Bases:   []ast.TypeRef{&ast.NamedType{Name: "IShape"}},
			Members: []ast.Decl{impl, other},
		},
	}}

	r := NewResolver(unit)

	implemented := r.ImplementedMembers(r.SymbolOf(impl))
	require.Len(t, implemented, 1)
	require.Same(t, r.SymbolOf(area), implemented[0])
	require.Empty(t, r.ImplementedMembers(r.SymbolOf(other)))
	require.Equal(t, Interface, r.TypeOf(unit.Members[1].(*ast.TypeDecl).Bases[0]).Kind)
}

func TestResolver_TypeOfUnknownNames(t *testing.T) {
	ref := &ast.NamedType{Name: "Widget", Pos: ast.Pos{Src: ast.Span{Text: "Acme.Widget"}}}
	r := NewResolver(&ast.CompilationUnit{})

	desc := r.TypeOf(ref)
	require.Equal(t, Unresolved, desc.Kind)
	require.Equal(t, "Acme.Widget", desc.Text)
	require.Nil(t, r.SymbolOf(&ast.Ident{Name: "nothing"}))
}

func TestResolver_ObjectInitializerTargets(t *testing.T) {
	name := &ast.Ident{Name: "Name"}
	prop := &ast.PropertyDecl{Type: &ast.PredefinedType{Name: "string"}, Name: "Name", Accessors: []*ast.Accessor{{Kind: "get"}, {Kind: "set"}}}
	create := &ast.ObjectCreation{
		Type: &ast.NamedType{Name: "Person"},
		Init: &ast.Initializer{Elems: []ast.Expr{&ast.Assign{Op: "=", L: name, R: &ast.Literal{Kind: ast.StringLiteral, Value: `"a"`}}}},
	}

	unit := &ast.CompilationUnit{Members: []ast.Decl{
		&ast.TypeDecl{Kind: ast.ClassKind, Name: "Person", Members: []ast.Decl{prop}},
		&ast.TypeDecl{Kind: ast.ClassKind, Name: "Factory", Members: []ast.Decl{&ast.MethodDecl{
			Return:   &ast.NamedType{Name: "Person"},
			Name:     "Make",
			ExprBody: create,
		}}},
	}}

	r := NewResolver(unit)

	require.Same(t, r.SymbolOf(prop), r.SymbolOf(name))
}

func TestNewIndex_NilCatalogUsesDefault(t *testing.T) {
	idx := NewIndex(nil, nil)

	info, ok := idx.Lookup("string")
	require.True(t, ok)
	require.Equal(t, "String", info.Name)

	_, ok = idx.Lookup("TimeSpan")
	require.True(t, ok)

	desc := NewResolver(nil).TypeOf(&ast.PredefinedType{Name: "string"})
	require.NotEqual(t, Unresolved, desc.Kind)
}
