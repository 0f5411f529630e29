package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"runer/config"
	"runer/db"
	"runer/logging"
	"runer/store"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfg   config.Config
	store *store.Store
	out   io.Writer
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	var noHistory bool

	root := &cobra.Command{
		Use:          config.AppName,
		Short:        "A simple project-scoped command hub and runner",
		Long:         `runer keeps named shell commands in a JSON file in the current directory and runs them by name.`,
		Version:      config.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			if noHistory {
				a.cfg.HistoryEnabled = false
			}
			if isBuiltin(cmd) {
				return nil
			}
			return a.load()
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.out, "No command provided")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.StoreFile, "file", "f", a.cfg.StoreFile, "backing file holding the commands")
	flags.StringVar(&a.cfg.HistoryPath, "history-db", a.cfg.HistoryPath, "sqlite database for run history")
	flags.BoolVar(&noHistory, "no-history", false, "do not read or record run history")

	root.AddCommand(
		newInitCmd(a),
		newAddCmd(a),
		newRunCmd(a),
		newListCmd(a),
		newRemoveCmd(a),
		newBrowseCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logging.L().Errorw("command failed", "error", err)
		logging.Sync()
		os.Exit(1)
	}
}

// load reads the backing file once per invocation. Any failure is fatal.
func (a *app) load() error {
	if a.store != nil {
		return nil
	}
	s, err := store.Load(a.cfg.StoreFile)
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

// isBuiltin reports whether cmd is one of cobra's help or completion
// commands, which never touch the backing file.
func isBuiltin(cmd *cobra.Command) bool {
	for c := cmd; c.HasParent(); c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return true
		}
	}
	return false
}

// openHistory returns nil when history is disabled.
func (a *app) openHistory() (*db.DB, error) {
	if !a.cfg.HistoryEnabled {
		return nil, nil
	}
	h, err := db.New(a.cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("opening history %s: %w", a.cfg.HistoryPath, err)
	}
	return h, nil
}

func (a *app) completeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := a.load(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return a.store.Names(), cobra.ShellCompDirectiveNoFileComp
}
