package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func TestYAMLReportStore_SaveAndLoad(t *testing.T) {
	store := NewYAMLReportStore()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	reports := []m.Report{
		{
			Source:   m.Source{Origin: &m.File{Path: "src/Program.cs", Hash: "abc"}, Relative: "Program.cs", Output: "out/Program.kt"},
			Status:   m.Partial,
			Markers:  2,
			Duration: 3 * time.Millisecond,
			Diagnostics: []m.Diagnostic{
				{Path: "src/Program.cs", Line: 4, Column: 9, Message: "syntax error near }"},
			},
		},
		{
			Source: m.Source{Origin: &m.File{Path: "src/Broken.cs", Hash: "def"}, Relative: "Broken.cs"},
			Status: m.Failed,
			Error:  "unsupported shape: invocation at line 3",
		},
	}

	require.NoError(t, store.SaveReports(dir, reports))

	loaded, err := store.LoadReports(dir)
	require.NoError(t, err)
	assert.Equal(t, reports, loaded)
}

func TestYAMLReportStore_LoadMissing(t *testing.T) {
	store := NewYAMLReportStore()

	loaded, err := store.LoadReports(m.Path(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestYAMLReportStore_RejectsUnknownVersion(t *testing.T) {
	store := NewYAMLReportStore()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ReportFile), []byte("version: 7\nreports: []\n"), 0o600))

	_, err := store.LoadReports(m.Path(dir))
	require.ErrorContains(t, err, "unsupported version 7")
}
