package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"runer/logging"
	"runer/render"
)

func newListCmd(a *app) *cobra.Command {
	var recent bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List all commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(recent)
		},
	}
	c.Flags().BoolVar(&recent, "recent", false, "add a column with each command's last run time")
	return c
}

func (a *app) list(recent bool) error {
	fmt.Fprintln(a.out, "Listing commands...")
	if len(a.store.Commands) == 0 {
		fmt.Fprintln(a.out, "No commands found.")
		return nil
	}

	var lastUsed map[string]time.Time
	if recent {
		lastUsed = a.lastUsed()
	}
	fmt.Fprintln(a.out, render.CommandsWithLastUsed(a.store.Commands, lastUsed))
	return nil
}

// lastUsed returns an empty, non-nil map when history cannot be read so the
// column still shows.
func (a *app) lastUsed() map[string]time.Time {
	last := map[string]time.Time{}
	h, err := a.openHistory()
	if err != nil {
		logging.L().Warnw("history unavailable", "error", err)
		return last
	}
	if h == nil {
		return last
	}
	defer h.Close()

	got, err := h.LastUsed()
	if err != nil {
		logging.L().Warnw("reading last use failed", "error", err)
		return last
	}
	return got
}
