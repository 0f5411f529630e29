package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"runer/logging"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <name>",
		Short:             "Remove a command",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.remove(args[0])
		},
	}
}

func (a *app) remove(name string) error {
	fmt.Fprintf(a.out, "Removing command: %s\n", name)

	n := a.store.Remove(name)
	if n == 0 {
		fmt.Fprintln(a.out, "Command not found.")
		return nil
	}
	if err := a.store.Save(); err != nil {
		return fmt.Errorf("saving commands: %w", err)
	}
	logging.L().Infow("command removed", "name", name, "count", n)
	return nil
}
