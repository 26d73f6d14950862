package emitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_IndentsAtLineStart(t *testing.T) {
	w := NewWriter(2)

	w.Line("class A {")
	w.Enter()
	w.Write("val x")
	w.Write(" = 1")
	w.Line("")
	w.Leave()
	w.Line("}")

	require.Equal(t, "class A {\n  val x = 1\n}\n", w.String())
}

func TestWriter_DefaultWidth(t *testing.T) {
	w := NewWriter(0)

	w.Enter()
	w.Line("x")

	require.Equal(t, "    x\n", w.String())
}

func TestWriter_LeaveStopsAtZero(t *testing.T) {
	w := NewWriter(4)

	w.Leave()
	w.Line("x")

	require.Zero(t, w.Depth())
	require.Equal(t, "x\n", w.String())
}

func TestWriter_TruncateRestoresDepth(t *testing.T) {
	w := NewWriter(4)
	w.Line("keep")

	m := w.Mark()

	w.Enter()
	w.Enter()
	w.Write("drop")

	w.Truncate(m)
	w.Line("next")

	require.Equal(t, "keep\nnext\n", w.String())
	require.Zero(t, w.Depth())
	require.True(t, w.AtLineStart())
}

func TestWriter_RawIndentsFirstLineOnly(t *testing.T) {
	w := NewWriter(4)
	w.Enter()

	w.Raw("a\nb")
	w.Write("c")
	w.Line("")

	require.Equal(t, "    a\nbc\n", w.String())
}
