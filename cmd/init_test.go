package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into a fresh directory for the duration of t.
func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })

	return dir
}

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"init"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestInitCmd(t *testing.T) {
	t.Run("writes translation defaults", func(t *testing.T) {
		dir := chdirTemp(t)

		out, err := runInit(t)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote "+configFileName)

		contents, err := os.ReadFile(filepath.Join(dir, configFileName))
		require.NoError(t, err)
		assert.Contains(t, string(contents), defaultOutputDir)
		assert.Contains(t, string(contents), defaultReportsDir)
		assert.Contains(t, string(contents), "indent: 4")
	})

	t.Run("keeps an existing file", func(t *testing.T) {
		dir := chdirTemp(t)
		target := filepath.Join(dir, configFileName)
		require.NoError(t, os.WriteFile(target, []byte("output: out\n"), 0o644))

		_, err := runInit(t)
		require.Error(t, err)

		contents, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "output: out\n", string(contents))
	})

	t.Run("force overwrites", func(t *testing.T) {
		dir := chdirTemp(t)
		target := filepath.Join(dir, configFileName)
		require.NoError(t, os.WriteFile(target, []byte("output: out\n"), 0o644))

		_, err := runInit(t, "--force")
		require.NoError(t, err)

		contents, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(contents), defaultReportsDir)
	})
}
