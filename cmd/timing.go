package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const defaultWindowDays = 7

func newTimingCommand(opts *rootOptions) *cobra.Command {
	var (
		days   int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "timing",
		Short: "Show the lunar phase and upcoming posting windows",
		Args:  cobra.NoArgs,
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

			snapshot := svc.Timing()
			windows, err := svc.Windows(days)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"timing":  snapshot,
					"windows": windows,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Phase: %s %s (%.1f%%)\n", snapshot.Phase.Emoji, snapshot.Phase.Name, snapshot.Phase.Percentage)
			fmt.Fprintf(out, "Post now: %t (%s)\n", snapshot.Recommendation.ShouldPost, snapshot.Recommendation.Reason)
			if next := snapshot.Recommendation.NextWindow; next != nil {
				fmt.Fprintf(out, "Next window: %s\n", next.Format(time.RFC3339))
			}

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Start", "End", "Type", "Tier", "Description"})
			for _, w := range windows {
				t.AppendRow(table.Row{
					w.Start.Format("2006-01-02 15:04"),
					w.End.Format("2006-01-02 15:04"),
					w.Type,
					w.Auspiciousness,
					w.Description,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", defaultWindowDays, "number of days of windows to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print timing as JSON")
	return cmd
}
