package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "cs2kt", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{outputFlagName, reportsFlagName, noCacheFlagName, excludeFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "translates C# sources into Kotlin")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, csharpAdapter)
	assert.NotNil(t, reportStore)
	assert.NotNil(t, workflow)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"translate", "list", "view", "show", "init", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestSourceArg(t *testing.T) {
	assert.Equal(t, "./src", sourceArg([]string{"./src"}))

	t.Setenv(legacySourceEnv, "/legacy/src")
	assert.Equal(t, "/legacy/src", sourceArg(nil))
}

func TestLoadCatalog(t *testing.T) {
	t.Run("default only", func(t *testing.T) {
		catalog, err := loadCatalog(nil)
		require.NoError(t, err)
		assert.NotEmpty(t, catalog.Types)
	})

	t.Run("extra catalog replaces by name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extra.yaml")
		require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: Widget\n    kind: class\n"), 0o600))

		catalog, err := loadCatalog([]string{path})
		require.NoError(t, err)

		found := false
		for _, typ := range catalog.Types {
			found = found || typ.Name == "Widget"
		}

		assert.True(t, found)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadCatalog([]string{filepath.Join(t.TempDir(), "missing.yaml")})
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid kind", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: Widget\n    kind: gadget\n"), 0o600))

		_, err := loadCatalog([]string{path})
		require.ErrorContains(t, err, "unknown kind")
	})
}

func TestExecute_WithError(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() {
		rootCmd = originalRootCmd
	}()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("command failed")
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	// Execute would call os.Exit(1), so run the command directly.
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(_ *cobra.Command, _ []string) error {
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd

		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}
