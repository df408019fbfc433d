// Command import_books adds books in bulk. Each non-blank line of FILE holds
// the arguments of one add-book command; lines starting with # are skipped.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bookkeeper/internal/config"
	"bookkeeper/internal/logger"
	"bookkeeper/library"
	"bookkeeper/parser"
)

func main() {
	env := map[string]string{}
	for _, e := range os.Environ() {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	var o config.Overrides
	cmd := &cobra.Command{
		Use:          "import_books FILE",
		Short:        "Add every book listed in FILE to the inventory",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(o, env)
			if err != nil {
				return err
			}
			return importFile(cfg, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&o.DataDir, "data-dir", "", "directory holding the inventory")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "JSONC config file")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func importFile(cfg config.Config, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

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
	manager, err := library.NewLibraryManager(opts)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer manager.Close()

	fmt.Fprintf(out, "Importing books from %s...\n", path)
	successCount, errorCount := importLines(manager, f, out)

	fmt.Fprintf(out, "\nImport complete!\n")
	fmt.Fprintf(out, "Successfully imported: %d books\n", successCount)
	fmt.Fprintf(out, "Errors: %d\n", errorCount)
	log.Info().Str("file", path).Int("imported", successCount).Int("errors", errorCount).Msg("bulk import")

	if successCount > 0 {
		fmt.Fprintln(out, "\nInventory:")
		fmt.Fprintf(out, "%-40s %-25s %-12s %-6s\n", "Title", "Author", "Category", "Cond")
		fmt.Fprintln(out, strings.Repeat("-", 86))
		for _, b := range manager.Books() {
			fmt.Fprintf(out, "%-40s %-25s %-12s %-6s\n",
				truncateString(b.Title, 40), truncateString(b.Author, 25), b.Category, b.Condition)
		}
	}
	return nil
}

// importLines adds one book per line and reports how many succeeded and
// failed. A failed save still counts as an import; the book is in memory
// and the next successful save writes it.
func importLines(manager *library.LibraryManager, r io.Reader, out io.Writer) (successCount, errorCount int) {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "add-book "))

		if strings.Contains(line, "|") {
			fmt.Fprintf(out, "Line %d: ERROR - \"|\" is not allowed\n", lineNo)
			errorCount++
			continue
		}
		args, err := parser.ParseAddBook(line)
		if err != nil {
			fmt.Fprintf(out, "Line %d: ERROR - %v\n", lineNo, err)
			errorCount++
			continue
		}

		fmt.Fprintf(out, "Importing: %s by %s... ", args.Title, args.Author)
		b, err := manager.AddBook(args.Title, args.Author, args.Category, args.Condition, args.Location, args.Note)
		if b == nil {
			fmt.Fprintf(out, "ERROR - %v\n", err)
			errorCount++
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "SUCCESS (not saved: %v)\n", err)
		} else {
			fmt.Fprintln(out, "SUCCESS")
		}
		successCount++
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(out, "Read error after line %d: %v\n", lineNo, err)
		errorCount++
	}
	return successCount, errorCount
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
