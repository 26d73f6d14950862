package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

var parallelFlag int
var indentFlag int
var catalogFlags []string
var diffFlag bool

// translateCmd represents the translate command.
var translateCmd = newTranslateCmd()

func newTranslateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [source]",
		Short: "Translate C# sources to Kotlin",
		Long:  translateLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Translate(cmd.Context(), domain.TranslateArgs{
				Source:   m.Path(sourceArg(args)),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Reports:  m.Path(viper.GetString(reportsFlagName)),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Parallel: viper.GetInt(parallelConfigKey),
				UseCache: !viper.GetBool(noCacheFlagName),
				Diff:     viper.GetBool(diffConfigKey),
			})
		},
	}

	configureTranslateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(translateCmd)
}

func configureTranslateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", defaultParallel, "number of parallel workers (0 uses every CPU)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().IntVar(&indentFlag, indentFlagName, defaultIndent, "spaces per indentation level in the output")
	bindFlagToConfig(cmd.Flags().Lookup(indentFlagName), indentConfigKey)

	cmd.Flags().StringArrayVar(&catalogFlags, catalogFlagName, nil, "extra library catalog file (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(catalogFlagName), catalogsConfigKey)

	cmd.Flags().BoolVar(&diffFlag, diffFlagName, defaultDiff, "print a unified diff of every rewritten output")
	bindFlagToConfig(cmd.Flags().Lookup(diffFlagName), diffConfigKey)
}
