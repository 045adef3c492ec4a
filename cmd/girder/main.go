package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "girder",
		Short: "Girder - critical path scheduling for construction projects",
		Long:  "Girder computes CPM schedules from project snapshots: early/late dates, float, criticality, and constraint violations.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScheduleCmd())
	cmd.AddCommand(newCriticalCmd())
	cmd.AddCommand(newCheckCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "girder %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
