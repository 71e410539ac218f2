package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/brogergvhs/isbnrange/internal/builder"
	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/ui"
	"github.com/brogergvhs/isbnrange/internal/util"

	"github.com/spf13/cobra"
)

var (
	flagBuildURL      string
	flagBuildFromFile string
	flagBuildOutput   string
	flagBuildDryRun   bool

	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Download the ISBN range message and publish the range table. Uses the defaults from the selected config, overwritten by CLI flags",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}

	buildCmd.Flags().StringVar(&flagBuildURL, "url", "", "range message URL (overrides source_url)")
	buildCmd.Flags().StringVar(&flagBuildFromFile, "from-file", "", "build from a downloaded RangeMessage.xml instead of fetching")
	buildCmd.Flags().StringVar(&flagBuildOutput, "output", "", "artifact path (overrides table_path and --table)")
	buildCmd.Flags().BoolVar(&flagBuildDryRun, "dry-run", false, "build and report without writing the artifact")

	buildCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"cf_clearance=...\"")
	buildCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	buildCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, _, log, err := loadRuntime(config.Options{
		SourceURL:  flagBuildURL,
		TablePath:  flagBuildOutput,
		Cookie:     flagCookie,
		CookieFile: flagCookieFile,
		UserAgent:  flagUserAgent,
	})
	if err != nil {
		return err
	}

	var (
		src builder.Source
		pm  *ui.MPBProgressManager
		bar *ui.ProgressHandle
	)

	if flagBuildFromFile != "" {
		src = &builder.FileSource{Path: flagBuildFromFile}
	} else {
		client, err := util.NewHTTPClient(util.HTTPClientOptions{
			Timeout:          cfg.Timeout(),
			UserAgent:        util.PickUserAgent(cfg.UserAgent),
			Cookie:           cfg.Cookie,
			CookieFile:       cfg.CookieFile,
			BypassCloudflare: cfg.BypassCloudflare,
			DebugLogger:      log,
		})
		if err != nil {
			return err
		}

		pm = ui.NewProgressManager(os.Stderr)
		bar = pm.Register("RangeMessage.xml", ui.UnitBytes)
		src = &builder.HTTPSource{
			Client: client,
			URL:    cfg.SourceURL,
			Progress: func(done, total int64) {
				bar.SetTotal(total)
				bar.SetCurrent(done)
			},
		}
	}

	fmt.Printf("Source: %s\n", src.Name())

	table, meta, err := builder.New(src, log).Build(cmd.Context())
	if bar != nil {
		bar.MarkDone()
		pm.Close()
	}
	if err != nil {
		log.Error("range table build failed", "error", err)
		return err
	}

	fmt.Println("Message:", meta)

	if flagBuildDryRun {
		fmt.Printf("Dry-run: %d groups parsed, %s not written.\n", table.Len(), cfg.TablePath)
		return nil
	}

	stop := util.SetupInterruptHandler(cfg.TablePath)
	defer stop()

	start := time.Now()
	if err := builder.Publish(cfg.TablePath, table); err != nil {
		log.Error("range table publish failed", ui.FieldPath, cfg.TablePath, "error", err)
		return err
	}

	log.Info("range table published",
		ui.FieldPath, cfg.TablePath,
		"groups", table.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	fmt.Printf("Range table written: %s (%d groups)\n", cfg.TablePath, table.Len())
	return nil
}
