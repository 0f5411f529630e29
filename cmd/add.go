package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"runer/logging"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <cmd> [desc]",
		Short: "Add a new command, or update the one with the same name",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var desc *string
			if len(args) == 3 {
				desc = &args[2]
			}
			return a.add(args[0], args[1], desc)
		},
	}
}

func (a *app) add(name, cmdLine string, desc *string) error {
	prev, updated := a.store.Upsert(name, cmdLine, desc)
	if updated {
		fmt.Fprintf(a.out, "Updating command: %s, from '%s' to '%s'\n", name, prev.Cmd, cmdLine)
		if desc != nil {
			fmt.Fprintf(a.out, "Updating description: %s\n", *desc)
		}
	} else if desc != nil {
		fmt.Fprintf(a.out, "Adding command: %s '%s' %q\n", name, cmdLine, *desc)
	} else {
		fmt.Fprintf(a.out, "Adding command: %s '%s'\n", name, cmdLine)
	}

	if err := a.store.Save(); err != nil {
		return fmt.Errorf("saving commands: %w", err)
	}
	logging.L().Infow("command stored", "name", name, "updated", updated)
	return nil
}
