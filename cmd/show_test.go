package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func TestShowCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.ShowArgs
	}{
		{"translation", []string{"show", "Program.cs"}, domain.ShowArgs{Path: m.Path("Program.cs")}},
		{"syntax tree", []string{"show", "--ast", "Program.cs"}, domain.ShowArgs{Path: m.Path("Program.cs"), AST: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockWorkflow := withMockWorkflow(t)

			cmd := newRootCmd()
			cmd.AddCommand(newShowCmd())
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			mockWorkflow.On("Show", mock.Anything, tt.want).Return(nil).Once()

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestShowCmd_RequiresFile(t *testing.T) {
	withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newShowCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"show"})
	require.Error(t, cmd.Execute())
}
