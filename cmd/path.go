package cmd

import (
	"fmt"
	"strings"

	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func pathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "path <from> <to>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Find the shortest path between two steps",
		Aliases:           []string{"route"},
		Args:              cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			from, to := mustID(args[0]), mustID(args[1])
			s := mustSession(cmd)
			defer s.Close()

			path, err := s.FindPath(from, to)
			if err != nil {
				s.fail("%s", s.Status().Text)
			}
			printPath(cmd, stepNames(s.Graph(), path))
		},
	}

	cmd.AddCommand(pathToCmd())
	return cmd
}

func pathToCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "to <id>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Find a path from any starting step to the given step",
		Args:              cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := mustID(args[0])
			s := mustSession(cmd)
			defer s.Close()

			if err := s.SelectNode(id); err != nil {
				s.fail("%v", err)
			}
			path, err := s.PathToSelected()
			if err != nil {
				s.fail("%s", s.Status().Text)
			}
			printPath(cmd, stepNames(s.Graph(), path))
		},
	}
}

func printPath(cmd *cobra.Command, names []string) {
	out := cmd.OutOrStdout()
	for i, n := range names {
		names[i] = strings.ReplaceAll(n, "\n", " ")
	}
	fmt.Fprintf(out, "  %s\n", ui.PathLine(names))
	fmt.Fprintf(out, "  %s\n", ui.Subtle.Sprintf("%d step(s), %d hop(s)", len(names), len(names)-1))
}
