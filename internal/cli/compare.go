package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StickCut/internal/engine"
	"github.com/piwi3910/StickCut/internal/model"
	"github.com/piwi3910/StickCut/internal/project"
)

// newCompareCmd creates the compare command. It runs the optimizer once per
// optimization priority and prints a comparison table.
func newCompareCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "compare <project.json>",
		Short: "Compare optimization priorities on the same input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), args[0], timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "time budget per scenario")

	return cmd
}

func runCompare(ctx context.Context, projectPath string, timeout time.Duration) error {
	logger := loggerFromContext(ctx)

	proj, err := project.LoadProject(projectPath)
	if err != nil {
		return err
	}

	priorities := []model.OptimizationPriority{
		model.PriorityEfficiency,
		model.PriorityCost,
		model.PrioritySpeed,
	}

	scenarios := make([]engine.ComparisonScenario, 0, len(priorities))
	for _, pr := range priorities {
		params := proj.Parameters
		params.Priority = pr
		scenarios = append(scenarios, engine.ComparisonScenario{Name: string(pr), Params: params})
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout*time.Duration(len(scenarios)))
	defer cancel()

	logger.Info("comparing", "scenarios", len(scenarios), "stocks", len(proj.Inventory), "parts", len(proj.Parts))
	results := engine.CompareScenarios(runCtx, scenarios, proj.Inventory, proj.Parts)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSTICKS\tCUTS\tUTILIZATION\tCOST\tUNASSIGNED")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\t%.2f\t%d\n",
			r.Scenario.Name, r.SticksUsed, r.TotalCuts, r.Utilization,
			r.Result.Summary.TotalCost, r.UnassignedUnits)
	}
	return tw.Flush()
}
