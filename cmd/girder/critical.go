package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strutline/girder/internal/schedule"
)

func newCriticalCmd() *cobra.Command {
	var dataDate, mustFinishBy, mode string

	cmd := &cobra.Command{
		Use:   "critical <project.yaml>",
		Short: "Print only the critical path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := loadInput(args[0], dataDate, mustFinishBy, mode)
			if err != nil {
				return err
			}
			res, err := schedule.Calculate(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range res.Critical() {
				fmt.Fprintf(out, "%s\t%s to %s\n", a.ID, formatDay(a.EarlyStart), formatDay(a.EarlyFinish))
			}
			fmt.Fprintf(out, "Critical path: %s (%s)\n",
				strings.Join(res.CriticalPath(), " -> "), pluralDays(res.ProjectDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDate, "data-date", "", "override the snapshot data date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mustFinishBy, "must-finish-by", "", "impose a project finish date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mode, "progress-mode", "", "override progress handling (retained_logic or progress_override)")
	return cmd
}
