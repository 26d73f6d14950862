package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func TestViewCmd_UsesDefaultReportsDir(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path(".cs2kt-reports")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_ReportsFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Reports == m.Path("./reports-dir")
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view", "--reports", "./reports-dir"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_PositionalArgsAreRejected(t *testing.T) {
	withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newViewCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"view", "./custom-reports"})
	require.Error(t, cmd.Execute())
}

func TestViewCmd_StatusFilter(t *testing.T) {
	t.Run("passes parsed statuses", func(t *testing.T) {
		mockWorkflow := withMockWorkflow(t)

		cmd := newRootCmd()
		cmd.AddCommand(newViewCmd())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
			return len(args.Statuses) == 2 && args.Statuses[0] == m.Failed && args.Statuses[1] == m.Partial
		})).Return(nil).Once()

		cmd.SetArgs([]string{"view", "--status", "failed,partial"})
		require.NoError(t, cmd.Execute())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		withMockWorkflow(t)

		cmd := newRootCmd()
		cmd.AddCommand(newViewCmd())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		cmd.SetArgs([]string{"view", "--status", "done"})
		err := cmd.Execute()
		require.ErrorIs(t, err, m.ErrUnknownStatus)
	})
}
