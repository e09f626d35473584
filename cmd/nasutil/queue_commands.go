package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"nasutil/internal/clipboard"
	"nasutil/internal/failure"
	"nasutil/internal/history"
	"nasutil/internal/logging"
	"nasutil/internal/queue"
)

// clipboardSource is swapped in tests.
var clipboardSource clipboard.Source = clipboard.System{}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var useClipboard bool

	cmd := &cobra.Command{
		Use:     "add [url...]",
		Aliases: []string{"a"},
		Short:   "Add URLs to the download queue",
		Long: "Add URLs to the download queue. Markdown links are unwrapped and " +
			"everything after the first '&' is dropped. Without arguments the URL is " +
			"taken from the clipboard (--clipboard or add.clipboard) or read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "queue")

			raws := args
			if len(raws) == 0 {
				raw, err := readURL(cmd, useClipboard || cfg.Add.Clipboard)
				if err != nil {
					return err
				}
				raws = []string{raw}
			}

			out := cmd.OutOrStdout()
			for _, raw := range raws {
				url, added, err := store.Append(raw)
				if err != nil {
					if errors.Is(err, failure.ErrValidation) {
						return err
					}
					return failure.Persist(err)
				}
				if added {
					logger.Info("url queued", logging.String(logging.FieldURL, url))
					fmt.Fprintf(out, "Added %s\n", url)
				} else {
					fmt.Fprintf(out, "Already queued %s\n", url)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useClipboard, "clipboard", false, "Read the URL from the clipboard")
	return cmd
}

func readURL(cmd *cobra.Command, fromClipboard bool) (string, error) {
	if fromClipboard {
		return clipboardSource.ReadURL()
	}
	fmt.Fprint(cmd.OutOrStdout(), "URL: ")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", failure.Wrap(failure.ErrIO, "read url", "stdin", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", failure.Wrap(failure.ErrValidation, "read url", "no url entered", nil)
	}
	return line, nil
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var countOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "List queued URLs in download order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			entries, err := store.Entries()
			if err != nil {
				return failure.Persist(err)
			}
			out := cmd.OutOrStdout()
			if countOnly {
				fmt.Fprintf(out, "%d urls to download. %d previously failed.\n", len(entries), previouslyFailed(cmd, ctx))
				return nil
			}
			for _, entry := range entries {
				fmt.Fprintln(out, queue.Describe(entry))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countOnly, "count", false, "Print a summary line instead of the URLs")
	return cmd
}

// previouslyFailed counts failed attempts in the history log. The count is
// informational, so an unavailable log reports zero.
func previouslyFailed(cmd *cobra.Command, ctx *commandContext) int {
	store, err := ctx.openHistory()
	if err != nil {
		if logger, logErr := ctx.logger(cmd.ErrOrStderr()); logErr == nil {
			logger.Warn("history unavailable", logging.Error(err))
		}
		return 0
	}
	if store == nil {
		return 0
	}
	defer store.Close()
	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return 0
	}
	return stats[history.OutcomeFailed]
}

func newEmptyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "empty",
		Aliases: []string{"e", "clear"},
		Short:   "Remove every URL from the queue",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return failure.Persist(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Queue emptied")
			return nil
		},
	}
}
