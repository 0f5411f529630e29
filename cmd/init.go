package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"runer/store"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize runer in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.initStore()
		},
	}
}

// initStore writes back whatever was loaded, creating the file if needed.
func (a *app) initStore() error {
	if err := a.store.Save(); err != nil {
		var encErr *store.EncodeError
		if errors.As(err, &encErr) {
			return err
		}
		fmt.Fprintf(a.out, "Error initializing: %v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "Initialized successfully.")
	return nil
}
