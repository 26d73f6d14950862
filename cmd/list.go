package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [source]",
		Short: "List C# sources and their cache state",
		Long:  "List the C# files a translate run would see, with declaration counts and whether they changed since the last run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{
				Source:   m.Path(sourceArg(args)),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Reports:  m.Path(viper.GetString(reportsFlagName)),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				UseCache: !viper.GetBool(noCacheFlagName),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
