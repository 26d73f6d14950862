package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

func TestListCmd_PassesSourceAndCache(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newListCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	mockWorkflow.On("Estimate", mock.Anything, mock.MatchedBy(func(args domain.EstimateArgs) bool {
		return args.Source == m.Path("./project") &&
			args.Reports == m.Path(".cs2kt-reports") &&
			!args.UseCache
	})).Return(nil).Once()

	cmd.SetArgs([]string{"list", "./project", "--no-cache"})
	require.NoError(t, cmd.Execute())
}
