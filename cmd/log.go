package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msalah0e/pathseek/internal/activity"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"activity"},
		Short:   "Show recent edits to the graph",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := activity.New(activity.DefaultPath()).Read(count)
			if err != nil {
				ui.Bad.Printf("  Failed to read activity: %v\n", err)
				return
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "  No activity recorded yet.")
				return
			}
			ui.Banner(out, "activity")
			ui.Table(out, []string{"Time", "Action", "Origin", "Steps", "Details"}, entryRows(entries))
			fmt.Fprintf(out, "\n  Showing %d most recent entries\n", len(entries))
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries to show (0 for all)")

	cmd.AddCommand(logSearchCmd(), logClearCmd())
	return cmd
}

func logSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search activity entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			results, err := activity.New(activity.DefaultPath()).Search(args[0], 50)
			out := cmd.OutOrStdout()
			if err != nil || len(results) == 0 {
				fmt.Fprintf(out, "  No entries matching %q\n", args[0])
				return
			}
			ui.Banner(out, "search results")
			ui.Table(out, []string{"Time", "Action", "Origin", "Steps", "Details"}, entryRows(results))
			fmt.Fprintf(out, "\n  %d results\n", len(results))
		},
	}
}

func logClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the activity journal",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := activity.New(activity.DefaultPath()).Clear(); err != nil {
				ui.Bad.Printf("  Failed to clear activity: %v\n", err)
				return
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Activity cleared\n", ui.StatusIcon(true))
		},
	}
}

func entryRows(entries []activity.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		ids := make([]string, len(e.Nodes))
		for i, n := range e.Nodes {
			ids[i] = strconv.Itoa(n)
		}
		rows = append(rows, []string{
			e.Timestamp.Format("Jan 02 15:04"),
			e.Action,
			e.Origin,
			truncate(strings.Join(ids, ","), 20),
			truncate(e.Details, 30),
		})
	}
	return rows
}
