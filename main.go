// Command bookkeeper is an interactive inventory and loan tracker for a
// small private library.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookkeeper/cli"
	"bookkeeper/internal/config"
	"bookkeeper/internal/logger"
	"bookkeeper/library"
)

const historyFile = ".bookkeeper_history"

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	if err := newRootCmd(env).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(env map[string]string) *cobra.Command {
	var (
		o         config.Overrides
		debug     bool
		noHistory bool
	)
	cmd := &cobra.Command{
		Use:           "bookkeeper",
		Short:         "Track the books you own and who has borrowed them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("debug") {
				o.Debug = &debug
			}
			if cmd.Flags().Changed("no-history") {
				on := !noHistory
				o.History = &on
			}
			cfg, err := config.Load(o, env)
			if err != nil {
				return err
			}
			return run(cfg, os.Stdin, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&o.DataDir, "data-dir", "", "directory holding the inventory, loans and journal (env BOOKKEEPER_DATA_DIR)")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "JSONC config file (default <data-dir>/"+config.DefaultFile+")")
	cmd.Flags().BoolVar(&debug, "debug", false, "log at debug level (env BOOKKEEPER_DEBUG)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record loans in the SQLite journal")
	return cmd
}

func run(cfg config.Config, stdin *os.File, out io.Writer) error {
	log, logFile, err := logger.Open(cfg.LogPath(), cfg.Debug)
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts := library.Options{
		InventoryPath: cfg.InventoryPath(),
		LoansPath:     cfg.LoansPath(),
		Logger:        log,
	}
	if cfg.HistoryEnabled() {
		opts.HistoryPath = cfg.HistoryPath()
	}
	mgr, err := library.NewLibraryManager(opts)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer mgr.Close()

	log.Info().Str("data_dir", cfg.DataDir).Int("books", len(mgr.Books())).Int("loans", len(mgr.Loans())).Msg("bookkeeper started")

	shell := cli.NewShell(mgr, out, log)

	var in cli.LineReader
	if term.IsTerminal(int(stdin.Fd())) {
		in = cli.NewLinerReader(filepath.Join(cfg.DataDir, historyFile), shell.CommandNames())
	} else {
		in = cli.NewScanReader(stdin)
	}
	defer in.Close()

	err = shell.Run(in)
	log.Info().Err(err).Msg("bookkeeper stopped")
	return err
}
