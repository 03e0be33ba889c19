package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

func newStrategiesCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the registered page strategies",
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

			strategies := make([]domain.ContentStrategy, 0, len(svc.Strategies()))
			for _, name := range svc.Strategies() {
				strat, _ := svc.Strategy(name)
				strategies = append(strategies, strat)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), strategies)
			}
			renderStrategies(cmd, strategies)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print strategies as JSON")
	return cmd
}

func renderStrategies(cmd *cobra.Command, strategies []domain.ContentStrategy) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Page", "Theme", "Schedule", "Content Mix"})

	for _, s := range strategies {
		mix := make([]string, 0, len(s.ContentMix))
		for _, fw := range s.ContentMix {
			mix = append(mix, fmt.Sprintf("%s:%.2f", fw.Format, fw.Weight))
		}
		t.AppendRow(table.Row{
			s.PageName,
			s.Theme,
			strings.Join(s.PostingSchedule, " "),
			strings.Join(mix, " "),
		})
	}

	t.AppendFooter(table.Row{"Total", len(strategies), "", ""})
	t.Render()
}
