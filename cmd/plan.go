package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opendev-labs/auto-notion/internal/export"
	"github.com/opendev-labs/auto-notion/internal/planner"
)

const defaultPlanDays = 7

func newPlanCommand(opts *rootOptions) *cobra.Command {
	var (
		page  string
		days  int
		seed  uint64
		align bool
		xlsx  string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a content plan and print it as JSON",
		Long: `Generate a content plan for a page.

Examples:
  # One week for the default page
  auto-notion plan

  # Reproducible two-week plan aligned to posting windows
  auto-notion plan --page CrystalEnergy --days 14 --seed 42 --align

  # Write the calendar to a spreadsheet instead of printing JSON
  auto-notion plan --days 30 --xlsx calendar.xlsx
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newCommandDeps(opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Logger.Sync() }()

			svc, err := newService(deps, nil, nil, nil)
			if err != nil {
				return err
			}

			req := planner.PlanRequest{Page: page, Days: days, Align: align}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			plan, err := svc.Plan(cmd.Context(), req)
			if err != nil {
				return err
			}
			if xlsx != "" {
				return writeCalendarFile(cmd, xlsx, plan)
			}
			return writeJSON(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().StringVarP(&page, "page", "p", "", "page name (default page when empty or unknown)")
	cmd.Flags().IntVarP(&days, "days", "d", defaultPlanDays, "number of days to plan")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible plan")
	cmd.Flags().BoolVar(&align, "align", false, "align items to upcoming posting windows")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "write the plan to this XLSX file")

	return cmd
}

func writeCalendarFile(cmd *cobra.Command, path string, plan planner.Plan) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if err = export.WriteCalendar(f, plan.Items); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d items for %s to %s\n", len(plan.Items), plan.Page, path)
	return nil
}
