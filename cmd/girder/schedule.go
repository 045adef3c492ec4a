package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/strutline/girder/internal/models"
	"github.com/strutline/girder/internal/project"
	"github.com/strutline/girder/internal/schedule"
)

func newScheduleCmd() *cobra.Command {
	var dataDate, mustFinishBy, mode string

	cmd := &cobra.Command{
		Use:   "schedule <project.yaml>",
		Short: "Compute early/late dates, float, and the critical path",
		Long:  "Loads a project snapshot, runs the CPM passes, and prints the computed schedule with float and constraint violations.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, p, err := loadInput(args[0], dataDate, mustFinishBy, mode)
			if err != nil {
				return err
			}
			res, err := schedule.Calculate(in)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), p.Name, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDate, "data-date", "", "override the snapshot data date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mustFinishBy, "must-finish-by", "", "impose a project finish date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&mode, "progress-mode", "", "override progress handling (retained_logic or progress_override)")
	return cmd
}

// loadInput reads the snapshot and applies flag overrides for what-if runs
// against the same file.
func loadInput(path, dataDate, mustFinishBy, mode string) (schedule.Input, *project.Project, error) {
	p, err := project.Load(path)
	if err != nil {
		return schedule.Input{}, nil, err
	}
	in, err := p.Input()
	if err != nil {
		return schedule.Input{}, nil, err
	}
	if dataDate != "" {
		d, err := parseDay("data-date", dataDate)
		if err != nil {
			return schedule.Input{}, nil, err
		}
		in.DataDate = &d
	}
	if mustFinishBy != "" {
		d, err := parseDay("must-finish-by", mustFinishBy)
		if err != nil {
			return schedule.Input{}, nil, err
		}
		in.MustFinishBy = &d
	}
	if mode != "" {
		in.Mode = models.ProgressMode(mode)
	}
	return in, p, nil
}

func printSchedule(out io.Writer, name string, res *schedule.Result) {
	if name != "" {
		fmt.Fprintln(out, name)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDUR\tEARLY START\tEARLY FINISH\tLATE START\tLATE FINISH\tTF\tFF\tCRIT")
	for _, id := range res.Order {
		a := res.Activity(id)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			a.ID, a.Duration,
			formatDay(a.EarlyStart), formatDay(a.EarlyFinish),
			formatDay(a.LateStart), formatDay(a.LateFinish),
			a.TotalFloat, a.FreeFloat, markCritical(a.Critical))
	}
	w.Flush()

	fmt.Fprintf(out, "\nProject: %s to %s (%s)\n",
		formatDay(res.ProjectStart), formatDay(res.ProjectFinish), pluralDays(res.ProjectDuration))
	if path := res.CriticalPath(); len(path) > 0 {
		fmt.Fprintf(out, "Critical path: %s\n", strings.Join(path, " -> "))
	}
	for _, v := range res.Violations() {
		fmt.Fprintf(out, "VIOLATION %s: %s\n", v.ID, v.ViolationMessage)
	}
}
