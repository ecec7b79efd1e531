package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level [tmx]",
		Short: "Print the parsed layout of a shop level",
		Long: `Parse a Tiled shop level and print its walls, spawns, routes and items.
Without an argument the built-in shop is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			level, err := loadLevel(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(a.stdout, level.Summary())
			return nil
		},
	}
}
