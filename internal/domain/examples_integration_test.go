package domain_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/adapter"
	"cs2kt.dev/pkg/cs2kt/internal/controller"
	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func translateExample(t *testing.T, name string) (string, []m.Report) {
	t.Helper()

	out := t.TempDir()
	reports := t.TempDir()

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	wf := newWorkflow(controller.NewSimpleUI(cmd), domain.NewTranslator(nil, nil, 4))
	err := wf.Translate(context.Background(), domain.TranslateArgs{
		Source:   m.Path(filepath.Join("..", "..", "examples", name)),
		Output:   m.Path(out),
		Reports:  m.Path(reports),
		Parallel: 2,
	})
	require.NoError(t, err, buf.String())

	saved, err := adapter.NewYAMLReportStore().LoadReports(m.Path(reports))
	require.NoError(t, err)

	return out, saved
}

func readOutput(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func TestExamples_Basic(t *testing.T) {
	out, reports := translateExample(t, "basic")
	require.Len(t, reports, 2)

	person := readOutput(t, filepath.Join(out, "Models", "Person.kt"))
	assert.Contains(t, person, "package demo")
	assert.Contains(t, person, "class Person")
	assert.Contains(t, person, "var name : String")
	assert.Contains(t, person, `println("Hello")`)

	program := readOutput(t, filepath.Join(out, "Program.kt"))
	assert.Contains(t, program, "greet()")
	assert.NotContains(t, program, "new ")
}

func TestExamples_Loops(t *testing.T) {
	out, reports := translateExample(t, "loops")
	require.Len(t, reports, 1)
	assert.Equal(t, m.Translated, reports[0].Status)

	counter := readOutput(t, filepath.Join(out, "Counter.kt"))
	assert.Contains(t, counter, "for (i in 0 until n)")
	assert.Contains(t, counter, "var total : Int = 0")
	assert.True(t, strings.HasSuffix(counter, "\n"))
}

func TestExamples_InvalidSourceIsKept(t *testing.T) {
	out, reports := translateExample(t, "invalid")
	require.Len(t, reports, 1)

	assert.Equal(t, m.Partial, reports[0].Status)
	assert.NotEmpty(t, reports[0].Diagnostics)
	assert.FileExists(t, filepath.Join(out, "Broken.kt"))
}
