package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nasutil/internal/downloader"
	"nasutil/internal/logging"
	"nasutil/internal/preflight"
	"nasutil/internal/services/ytdlp"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:     "download",
		Aliases: []string{"d", "dl"},
		Short:   "Download every queued URL with yt-dlp",
		Long: "Download every queued URL in order. Each URL is removed from the queue " +
			"after its attempt, whether or not yt-dlp succeeded; failures are reported " +
			"on stderr and recorded in the history log.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outputDir, err := cfg.ResolveOutputDir()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client, err := ytdlp.New(cfg.YTDLP, ytdlp.WithLogger(logging.NewComponentLogger(logger, "ytdlp")))
			if err != nil {
				return err
			}
			runner := preflight.Runner{
				Binary:    client.Binary(),
				OutputDir: outputDir,
				QueueFile: cfg.Paths.QueueFile,
				Version:   client.Version,
			}

			out := cmd.OutOrStdout()
			if checkOnly {
				results := runner.RunAll(cmd.Context())
				colorize := shouldColorize(out)
				for _, result := range results {
					kind := statusOK
					if !result.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
				}
				return preflight.Failed(results)
			}

			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			opts := downloader.Options{
				Queue:       store,
				Fetcher:     client,
				OutputDir:   outputDir,
				Stdout:      out,
				Stderr:      cmd.ErrOrStderr(),
				Logger:      logger,
				Preflight:   runner,
				Interactive: shouldColorize(out),
			}
			hist, err := ctx.openHistory()
			if err != nil {
				logger.Warn("history unavailable; attempts will not be recorded", logging.Error(err))
			} else if hist != nil {
				defer hist.Close()
				opts.History = hist
			}

			driver, err := downloader.New(opts)
			if err != nil {
				return err
			}
			summary, err := driver.Run(cmd.Context())
			if summary.Attempted > 0 {
				fmt.Fprintf(out, "%d downloaded, %d failed.\n", len(summary.Succeeded), len(summary.Failed))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Run the readiness checks and exit")
	return cmd
}
