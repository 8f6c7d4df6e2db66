package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build version info, grounded on the teacher's
// cmd/dwscript/cmd/version.go.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the goslox version",
	RunE: func(c *cobra.Command, args []string) error {
		fmt.Printf("goslox %s (%s)\n", Version, GitCommit)
		return nil
	},
}
