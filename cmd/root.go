package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "skillscan",
	Short:        "Catalog skill and agent repos and find cross-repo overlaps",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Skillscan discovers skill and agent definitions across heterogeneous
repository layouts, normalizes them into a uniform catalog, and reports
which external components overlap with your own and which are gaps.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
