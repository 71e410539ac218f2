package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brogergvhs/isbnrange/internal/batch"
	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"github.com/spf13/cobra"
)

// Inputs above this count get a progress bar.
const progressThreshold = 100

var (
	flagHyphenateFile    string
	flagHyphenateWorkers int
)

func init() {
	hyphenateCmd := &cobra.Command{
		Use:   "hyphenate [ISBN...]",
		Short: "Hyphenate ISBN-10 or ISBN-13 values from arguments, --file or stdin",
		RunE:  runHyphenate,
	}

	hyphenateCmd.Flags().StringVar(&flagHyphenateFile, "file", "", "read ISBNs from a file, one per line (- for stdin)")
	hyphenateCmd.Flags().IntVar(&flagHyphenateWorkers, "workers", 0, "parallel workers (overrides workers)")

	rootCmd.AddCommand(hyphenateCmd)
}

func runHyphenate(cmd *cobra.Command, args []string) error {
	cfg, _, log, err := loadRuntime(config.Options{Workers: flagHyphenateWorkers})
	if err != nil {
		return err
	}

	// The table loads while inputs are read.
	lazy := loadTable(cfg, log)

	inputs, err := collectInputs(args, flagHyphenateFile)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no ISBNs given: pass them as arguments or use --file")
	}

	opts := batch.Options{Workers: cfg.Workers, Stats: &ui.Stats{}}

	var pm *ui.MPBProgressManager
	if len(inputs) > progressThreshold {
		pm = ui.NewProgressManager(os.Stderr)
		bar := pm.Register("hyphenate", ui.UnitItems)
		opts.Progress = bar
		defer func() {
			bar.MarkDone()
			pm.Close()
		}()
	}

	results, err := batch.Run(cmd.Context(), lazy, inputs, opts)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	for _, r := range results {
		switch r.Status {
		case batch.StatusInvalid:
			log.Warn("invalid ISBN", "input", r.Input, "error", r.Err)
			_, _ = fmt.Fprintf(out, "%s\t%s\n", r.Input, "invalid")
		case batch.StatusNotFound:
			log.Warn("no registration group identified", "input", r.Input)
			_, _ = fmt.Fprintln(out, r.Output)
		case batch.StatusFallback:
			log.Debug("registrant boundary undetermined", "input", r.Input)
			_, _ = fmt.Fprintln(out, r.Output)
		default:
			_, _ = fmt.Fprintln(out, r.Output)
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}

	s := opts.Stats
	log.Debug("hyphenate finished",
		"total", s.Total(),
		"hyphenated", s.Hyphenated.Load(),
		"fallback", s.Fallback.Load(),
		"not_found", s.NotFound.Load(),
		"invalid", s.Invalid.Load(),
	)

	if n := s.Invalid.Load(); n > 0 {
		return fmt.Errorf("%d of %d inputs were not valid ISBNs", n, s.Total())
	}
	return nil
}

func collectInputs(args []string, file string) ([]string, error) {
	inputs := append([]string(nil), args...)
	if file == "" {
		return inputs, nil
	}

	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open input file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}

	return inputs, nil
}
