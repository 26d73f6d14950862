package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cs2kt.dev/pkg/cs2kt/internal/domain"
	m "cs2kt.dev/pkg/cs2kt/internal/model"
)

const statusFlagName = "status"

var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	var statuses []string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the reports of the last translation",
		Long: `View the reports saved by the last translate run. Use --status to keep
only files with the given outcomes (translated, partial, failed, cached).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseStatuses(statuses)
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Reports:  m.Path(viper.GetString(reportsFlagName)),
				Statuses: filter,
			})
		},
	}

	cmd.Flags().StringSliceVar(&statuses, statusFlagName, nil, "only show reports with these statuses")

	return cmd
}

func parseStatuses(names []string) ([]m.Status, error) {
	out := make([]m.Status, 0, len(names))

	for _, name := range names {
		s, err := m.ParseStatus(name)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", statusFlagName, err)
		}

		out = append(out, s)
	}

	return out, nil
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
