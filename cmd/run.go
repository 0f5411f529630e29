package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"runer/logging"
	"runer/model"
	"runer/runner"
)

const maxSuggestions = 3

func newRunCmd(a *app) *cobra.Command {
	var safe bool
	c := &cobra.Command{
		Use:               "run <name>",
		Short:             "Run a command",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), args[0], safe)
		},
	}
	c.Flags().BoolVar(&safe, "safe", false, "split the command into words and execute it without a shell")
	return c
}

func (a *app) run(ctx context.Context, name string, safe bool) error {
	fmt.Fprintf(a.out, "Running command: %s\n", name)

	c, ok := a.store.Find(name)
	if !ok {
		fmt.Fprintln(a.out, "Command not found.")
		if s := suggest(name, a.store.Names()); len(s) > 0 {
			fmt.Fprintf(a.out, "Did you mean: %s?\n", strings.Join(s, ", "))
		}
		return nil
	}

	fmt.Fprintf(a.out, "Executing: %s\n", c.Cmd)

	capture := runner.Capture
	if safe {
		capture = runner.CaptureSafe
	}
	started := time.Now()
	res, err := capture(ctx, c.Cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Stdout)

	a.recordRun(model.Run{
		Name:      c.Name,
		Cmd:       c.Cmd,
		ExitCode:  res.ExitCode,
		StartedAt: started,
		Duration:  res.Duration,
	})
	return nil
}

// recordRun stores r in the history database. Failures are only logged.
func (a *app) recordRun(r model.Run) {
	h, err := a.openHistory()
	if err != nil {
		logging.L().Warnw("history unavailable", "error", err)
		return
	}
	if h == nil {
		return
	}
	defer h.Close()

	if _, err := h.Record(r); err != nil {
		logging.L().Warnw("recording run failed", "name", r.Name, "error", err)
	}
}

// suggest returns up to maxSuggestions stored names that fuzzily match name.
func suggest(name string, names []string) []string {
	matches := fuzzy.Find(name, names)
	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
