package emitter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/ast"
)

func TestIntLiteral(t *testing.T) {
	cases := map[string]string{
		"42":   "42",
		"10l":  "10L",
		"10L":  "10L",
		"7UL":  "7uL",
		"7lu":  "7uL",
		"3u":   "3u",
		"0xFF": "0xFF",
	}

	for in, want := range cases {
		require.Equal(t, want, intLiteral(in), in)
	}
}

func TestRealLiteral(t *testing.T) {
	cases := map[string]string{
		"1.5":  "1.5",
		"2f":   "2f",
		"2.5F": "2.5f",
		"3d":   "3.0",
		"3.5d": "3.5",
		"1.5m": `java.math.BigDecimal("1.5")`,
	}

	for in, want := range cases {
		require.Equal(t, want, realLiteral(in), in)
	}
}

func TestEscapeRegular(t *testing.T) {
	require.Equal(t, `cost \$5`, escapeRegular("cost $5", true))
	require.Equal(t, `$`, escapeRegular("$", false))
	require.Equal(t, `a\u0000b`, escapeRegular(`a\0b`, true))
	require.Equal(t, `\u0041`, escapeRegular(`\x41`, true))
	require.Equal(t, `\\0`, escapeRegular(`\\0`, true))
	require.Equal(t, `line\n`, escapeRegular(`line\n`, true))
}

func TestVerbatimText(t *testing.T) {
	require.Equal(t, `say "hi" ${'$'}x`, verbatimText(`say ""hi"" $x`))
}

func render(t *testing.T, x ast.Expr) string {
	t.Helper()

	e := New(nil, nil, nil, nil)
	out, err := e.Emit(&ast.CompilationUnit{})
	require.NoError(t, err)
	require.Empty(t, out)

	return e.capture(func() { e.expr(x) })
}

func TestEmit_InterpolatedString(t *testing.T) {
	x := &ast.Interpolated{Parts: []ast.InterpolationPart{
		{Text: "Hi "},
		{X: id("name")},
		{Text: "! {{ok}} $"},
		{X: id("total"), Format: "N2"},
	}}

	require.Equal(t, `"Hi ${name}! {ok} \$${total /* format: N2 */}"`, render(t, x))
}

func TestEmit_VerbatimStrings(t *testing.T) {
	lit := &ast.Literal{Kind: ast.VerbatimStringLiteral, Value: `@"C:\dir ""q"""`}
	require.Equal(t, `"""C:\dir "q""""`, render(t, lit))

	char := &ast.Literal{Kind: ast.CharLiteral, Value: `'\0'`}
	require.Equal(t, `'\u0000'`, render(t, char))
}

func TestEmit_OperatorsWithoutFacade(t *testing.T) {
	cases := []struct {
		x    ast.Expr
		want string
	}{
		{&ast.Binary{Op: "&", L: id("a"), R: id("b")}, "a and b"},
		{&ast.Binary{Op: "<<", L: id("a"), R: intLit("2")}, "a shl 2"},
		{&ast.Binary{Op: "??", L: id("a"), R: id("b")}, "a ?: b"},
		{&ast.Unary{Op: "~", X: &ast.Binary{Op: "|", L: id("a"), R: id("b")}}, "(a or b).inv()"},
		{&ast.Unary{Op: "!", X: id("a"), Postfix: true}, "a!!"},
		{&ast.Assign{Op: "|=", L: id("a"), R: id("b")}, "a = a or b"},
		{&ast.Assign{Op: "??=", L: id("a"), R: id("b")}, "a = a ?: b"},
		{&ast.Tuple{Elems: []*ast.Argument{{X: id("a")}, {Name: "n", X: intLit("1")}}}, "Pair(a, 1)"},
		{&ast.MemberAccess{X: id("a"), Name: "b", NullSafe: true}, "a?.b"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, render(t, tc.x))
	}
}

func TestEmit_InterpolationClausesStayInComments(t *testing.T) {
	x := &ast.Interpolated{Parts: []ast.InterpolationPart{
		{X: id("n"), Alignment: "-5"},
		{Text: " "},
		{X: id("at"), Format: "HH*/mm"},
	}}

	require.Equal(t, `"${n /* alignment: -5 */} ${at /* format: HH* /mm */}"`, render(t, x))
}
