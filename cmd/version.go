package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// revision returns the VCS revision stamped into the binary, if any.
func revision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cs2kt version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("cs2kt version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)

			if rev := revision(info); rev != "" {
				cmd.Println("revision\t", rev)
			}
		},
	}
}

var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
