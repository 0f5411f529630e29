package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"runer/render"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recently run commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.history(limit)
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return c
}

func (a *app) history(limit int) error {
	h, err := a.openHistory()
	if err != nil {
		return err
	}
	if h == nil {
		fmt.Fprintln(a.out, "History is disabled.")
		return nil
	}
	defer h.Close()

	runs, err := h.Recent(limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs recorded.")
		return nil
	}
	fmt.Fprintln(a.out, render.Runs(runs))
	return nil
}
