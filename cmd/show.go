package cmd

import (
	"github.com/spf13/cobra"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

var astFlag bool

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file.cs>",
		Short: "Print the Kotlin translation of one file",
		Long:  "Translate a single C# file and print the result without writing anything. With --ast the parsed syntax tree is printed instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Show(cmd.Context(), domain.ShowArgs{Path: m.Path(args[0]), AST: astFlag})
		},
	}

	cmd.Flags().BoolVar(&astFlag, astFlagName, false, "print the syntax tree instead of the translation")

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}
