package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/isbn"
	"github.com/brogergvhs/isbnrange/internal/rangetable"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagTable        string
)

var rootCmd = &cobra.Command{
	Use:           "isbnrange",
	Short:         "Hyphenate ISBNs and resolve their registration groups from the official range table",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "path to the range table artifact (overrides table_path)")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime merges config with the persistent flags plus any command
// specific overrides and builds the logger.
func loadRuntime(opts config.Options) (*config.Config, string, *ui.Logger, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = opts.Debug || flagDebug
	if opts.TablePath == "" {
		opts.TablePath = flagTable
	}

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, "", nil, err
	}

	log, err := ui.NewLogger(cfg.Debug, cfg.LogFormat)
	if err != nil {
		return nil, "", nil, err
	}
	log.Debugf("Config file: %s", used)

	return cfg, used, log, nil
}

// loadTable starts reading the artifact in the background. Callers block on
// first use.
func loadTable(cfg *config.Config, log *ui.Logger) *isbn.Lazy {
	path := cfg.TablePath
	return isbn.LoadAsync(func() (*rangetable.Table, error) {
		t, err := rangetable.LoadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w\nRun `isbnrange build` to download the range table", err)
			}
			return nil, err
		}
		log.Debug("range table loaded", ui.FieldPath, path, "groups", t.Len())
		return t, nil
	})
}
