package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automoto/kradylechka/records"
)

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [level]",
		Short: "Show recorded episode results for a level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			} else {
				level, err := loadLevel("")
				if err != nil {
					return err
				}
				name = level.Name
			}

			store, err := a.openRecords()
			if err != nil {
				return err
			}
			results, err := store.History(name)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintf(a.stdout, "no episodes recorded for %s\n", name)
				return nil
			}

			for _, r := range results {
				_, _ = fmt.Fprintf(a.stdout, "seed %-6d %-8s %6d ticks  %s\n",
					r.Seed, r.Outcome, r.Ticks, strings.Join(r.Loot, ","))
			}
			_, _ = fmt.Fprintf(a.stdout, "%d/%d escaped\n", records.Escapes(results), len(results))
			return nil
		},
	}
}
