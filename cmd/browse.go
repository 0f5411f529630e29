package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"runer/logging"
	"runer/ui"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search, run and edit commands interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse()
		},
	}
}

func (a *app) browse() error {
	h, err := a.openHistory()
	if err != nil {
		logging.L().Warnw("history unavailable", "error", err)
	}
	var recorder ui.Recorder
	if h != nil {
		defer h.Close()
		recorder = h
	}

	p := tea.NewProgram(ui.NewApp(a.store, recorder), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
