package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gotimber/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotimber",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotimber v%s\n", version.Version)
		fmt.Println("Timber Connection Design Tool")
		fmt.Printf("Based on %s\n", version.Code)
		if version.GitCommit != "unknown" {
			fmt.Printf("Commit %s, built %s\n", version.GitCommit, version.BuildTime)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
