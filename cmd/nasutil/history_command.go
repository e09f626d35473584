package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nasutil/internal/failure"
	"nasutil/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Show recent download attempts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return failure.Wrap(failure.ErrConfig, "history", "attempt log disabled (history.enabled = false)", nil)
			}
			defer store.Close()

			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.ListLimit
			}
			attempts, err := store.List(cmd.Context(), history.ListOptions{Limit: limit, FailedOnly: failedOnly})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(attempts) == 0 {
				fmt.Fprintln(out, "No download attempts recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(attempts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show failed attempts")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of attempts to show (0 = no limit)")
	return cmd
}

func renderHistoryTable(attempts []history.Attempt) string {
	headers := []string{"Finished", "Outcome", "Duration", "URL", "Title", "Error"}
	rows := make([][]string, 0, len(attempts))
	for _, attempt := range attempts {
		rows = append(rows, []string{
			attempt.FinishedAt.Local().Format("2006-01-02 15:04"),
			string(attempt.Outcome),
			attempt.Duration().Round(time.Second).String(),
			attempt.URL,
			attempt.Title,
			truncate(attempt.Error, 60),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func truncate(value string, width int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}
	return string(runes[:width-1]) + "…"
}
