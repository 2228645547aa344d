package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Project planning engine",
	Long: `planner computes concrete schedules for project documents: it resolves
working calendars, orders tasks by dependencies, levels resource contention
and derives costs.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (defaults apply when omitted)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
