package cmd

import (
	"fmt"

	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			ok, err := s.Undo()
			if err != nil {
				s.fail("%v", err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "  Nothing to undo.")
				return
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Undone (%d step(s), %d connection(s))\n",
				ui.StatusIcon(true), s.Graph().Len(), len(s.Graph().Edges()))
		},
	}
}

func redoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			ok, err := s.Redo()
			if err != nil {
				s.fail("%v", err)
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "  Nothing to redo.")
				return
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Redone (%d step(s), %d connection(s))\n",
				ui.StatusIcon(true), s.Graph().Len(), len(s.Graph().Edges()))
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the undo history position",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			h := s.History()
			out := cmd.OutOrStdout()
			ui.Banner(out, "history")
			fmt.Fprintf(out, "  %s  %d / %d\n", ui.Brand.Sprintf("%-10s", "Snapshots"), h.Len(), h.Capacity())
			fmt.Fprintf(out, "  %s  %d\n", ui.Brand.Sprintf("%-10s", "Position"), h.Cursor()+1)
			fmt.Fprintf(out, "  %s  %s\n", ui.Brand.Sprintf("%-10s", "Undo"), ui.StatusIcon(h.CanUndo()))
			fmt.Fprintf(out, "  %s  %s\n", ui.Brand.Sprintf("%-10s", "Redo"), ui.StatusIcon(h.CanRedo()))
			if !cfg.History.Persist {
				fmt.Fprintf(out, "\n  %s\n", ui.Subtle.Sprint("History is not persisted; set [history] persist = true to undo across runs"))
			}
		},
	}
}
