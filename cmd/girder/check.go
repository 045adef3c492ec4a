package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strutline/girder/internal/project"
	"github.com/strutline/girder/internal/schedule"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <project.yaml>",
		Short: "Validate a project snapshot before scheduling",
		Long:  "Runs the upstream validation a caller owes the engine: snapshot parse, dangling relationship references, graph acyclicity, and constraint feasibility.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0])
		},
	}
}

type checkResult struct {
	name   string
	status string // "PASS", "FAIL", "WARN"
	detail string
}

func runCheck(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Girder Check")
	fmt.Fprintln(out, "============")

	var results []checkResult

	p, err := project.Load(path)
	if err != nil {
		results = append(results, checkResult{"Snapshot", "FAIL", err.Error()})
		printChecks(out, results)
		return fmt.Errorf("check failed")
	}
	results = append(results, checkResult{"Snapshot", "PASS",
		fmt.Sprintf("%d activities, %d relationships, %d calendars",
			len(p.Activities), len(p.Relationships), len(p.Calendars))})

	results = append(results, checkDangling(p))

	res, calcErr := calcCheck(p)
	results = append(results, res...)

	printChecks(out, results)
	if calcErr != nil {
		return calcErr
	}
	for _, r := range results {
		if r.status == "FAIL" {
			return fmt.Errorf("check failed")
		}
	}
	return nil
}

func checkDangling(p *project.Project) checkResult {
	if refs := p.DanglingReferences(); len(refs) > 0 {
		return checkResult{"References", "WARN",
			fmt.Sprintf("dangling: %s (links ignored by the engine)", strings.Join(refs, ", "))}
	}
	return checkResult{"References", "PASS", "all relationship endpoints resolve"}
}

// calcCheck runs a full calculation to prove the graph is schedulable and
// to surface constraint infeasibilities ahead of time.
func calcCheck(p *project.Project) ([]checkResult, error) {
	in, err := p.Input()
	if err != nil {
		return []checkResult{{"Calendars", "FAIL", err.Error()}}, fmt.Errorf("check failed")
	}
	res, err := schedule.Calculate(in)
	if err != nil {
		if errors.Is(err, schedule.ErrCycle) {
			return []checkResult{{"Graph", "FAIL", err.Error()}}, fmt.Errorf("check failed")
		}
		return []checkResult{{"Engine", "FAIL", err.Error()}}, fmt.Errorf("check failed")
	}

	results := []checkResult{{"Graph", "PASS", "acyclic, schedulable"}}
	if viols := res.Violations(); len(viols) > 0 {
		var ids []string
		for _, v := range viols {
			ids = append(ids, v.ID)
		}
		results = append(results, checkResult{"Constraints", "WARN",
			fmt.Sprintf("infeasible on %s", strings.Join(ids, ", "))})
	} else {
		results = append(results, checkResult{"Constraints", "PASS", "all feasible"})
	}
	return results, nil
}

func printChecks(out io.Writer, results []checkResult) {
	for _, r := range results {
		fmt.Fprintf(out, "[%s] %-12s %s\n", r.status, r.name, r.detail)
	}
}
