package cmd

import (
	"fmt"

	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func edgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edge",
		Short:   "Connect and disconnect steps",
		Aliases: []string{"connection", "edges"},
	}

	cmd.AddCommand(
		edgeAddCmd(),
		edgeListCmd(),
		edgeRemoveCmd(),
	)
	return cmd
}

func edgeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "add <from> <to>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Connect two steps",
		Args:              cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			from, to := mustID(args[0]), mustID(args[1])
			s := mustSession(cmd)
			defer s.Close()

			if err := s.Connect(from, to); err != nil {
				s.fail("%s", s.Status().Text)
			}
			a, _ := s.Graph().Node(from)
			b, _ := s.Graph().Node(to)
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Connected %s → %s\n", ui.StatusIcon(true), label(a), label(b))
		},
	}
}

func edgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every connection",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			g := s.Graph()
			edges := g.Edges()
			if len(edges) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "  No connections yet.")
				return
			}
			var rows [][]string
			for _, e := range edges {
				a, _ := g.Node(e.Source)
				b, _ := g.Node(e.Target)
				rows = append(rows, []string{
					fmt.Sprintf("%d", e.Source),
					truncate(firstLine(a.Text), 30),
					fmt.Sprintf("%d", e.Target),
					truncate(firstLine(b.Text), 30),
				})
			}
			ui.Table(cmd.OutOrStdout(), []string{"From", "", "To", ""}, rows)
		},
	}
}

func edgeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <from> <to>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Remove a connection",
		Aliases:           []string{"remove", "delete"},
		Args:              cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			from, to := mustID(args[0]), mustID(args[1])
			s := mustSession(cmd)
			defer s.Close()

			if !s.DeleteEdge(from, to) {
				s.fail("no connection from %d to %d", from, to)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s %s\n", ui.StatusIcon(true), s.Status().Text)
		},
	}
}
