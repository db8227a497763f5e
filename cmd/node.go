package cmd

import (
	"fmt"
	"strings"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func nodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "node",
		Short:   "Add, edit and remove steps",
		Aliases: []string{"step", "nodes"},
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			g := s.Graph()
			ui.Banner(cmd.OutOrStdout(), "step graph")
			if g.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "  Empty graph. Get started:")
				fmt.Fprintln(cmd.OutOrStdout())
				ui.Info.Fprintln(cmd.OutOrStdout(), "  pathseek node add \"Write the proposal\"")
				ui.Info.Fprintln(cmd.OutOrStdout(), "  pathseek edge add 1 2")
				ui.Info.Fprintln(cmd.OutOrStdout(), "  pathseek path 1 2")
				return
			}

			roots := g.Roots()
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d\n", ui.Brand.Sprintf("%-12s", "Steps"), g.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d\n", ui.Brand.Sprintf("%-12s", "Connections"), len(g.Edges()))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d\n", ui.Brand.Sprintf("%-12s", "Starts"), len(roots))
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %d\n", ui.Brand.Sprintf("%-12s", "Undo depth"), s.History().Cursor())
		},
	}

	cmd.AddCommand(
		nodeAddCmd(),
		nodeListCmd(),
		nodeTextCmd(),
		nodeMoveCmd(),
		nodeRemoveCmd(),
	)
	return cmd
}

func nodeAddCmd() *cobra.Command {
	var x, y float64
	var after []int

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Create a step",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			if !cmd.Flags().Changed("x") && !cmd.Flags().Changed("y") {
				x, y = nextSlot(s.Graph())
			}
			n, err := s.CreateNode(x, y, strings.Join(args, " "))
			if err != nil {
				s.fail("%v", err)
			}
			for _, src := range after {
				if err := s.Connect(graph.NodeID(src), n.ID); err != nil {
					ui.Warn.Fprintf(cmd.OutOrStdout(), "  %s %d -> %d: %v\n", ui.WarnIcon(), src, n.ID, err)
				}
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Added %s\n", ui.StatusIcon(true), label(n))
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "World x position of the step center")
	cmd.Flags().Float64Var(&y, "y", 0, "World y position of the step center")
	cmd.Flags().IntSliceVar(&after, "after", nil, "Connect these step ids to the new step")
	return cmd
}

// nextSlot places a new step to the right of the rightmost one.
func nextSlot(g *graph.Graph) (float64, float64) {
	_, minY, maxX, _, ok := g.Bounds()
	if !ok {
		return 0, 0
	}
	return maxX + 300, minY
}

func nodeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List every step",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			g := s.Graph()
			if g.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "  No steps yet.")
				return
			}
			var rows [][]string
			for _, n := range g.Nodes() {
				out := g.Outgoing(n.ID)
				next := make([]string, 0, len(out))
				for _, id := range out {
					next = append(next, fmt.Sprintf("%d", id))
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", n.ID),
					truncate(firstLine(n.Text), 40),
					fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
					strings.Join(next, " "),
				})
			}
			ui.Table(cmd.OutOrStdout(), []string{"ID", "Text", "Position", "Next"}, rows)
		},
	}
}

func nodeTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "text <id> <text>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Replace the text of a step",
		Aliases:           []string{"rename", "edit"},
		Args:              cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			id := mustID(args[0])
			s := mustSession(cmd)
			defer s.Close()

			if err := s.SetNodeText(id, strings.Join(args[1:], " ")); err != nil {
				s.fail("%v", err)
			}
			n, _ := s.Graph().Node(id)
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Updated %s\n", ui.StatusIcon(true), label(n))
		},
	}
}

func nodeMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "move <id> <x> <y>",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Move a step to a world position",
		Args:              cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			id := mustID(args[0])
			x, y := mustFloat(args[1], "x"), mustFloat(args[2], "y")
			s := mustSession(cmd)
			defer s.Close()

			if err := s.MoveNode(id, x, y); err != nil {
				s.fail("%v", err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Moved #%d to %.0f,%.0f\n", ui.StatusIcon(true), id, x, y)
		},
	}
}

func nodeRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <id>...",
		ValidArgsFunction: stepCompletionFunc,
		Short:             "Remove steps and their connections",
		Aliases:           []string{"remove", "delete"},
		Args:              cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ids := make([]graph.NodeID, 0, len(args))
			for _, a := range args {
				ids = append(ids, mustID(a))
			}
			s := mustSession(cmd)
			defer s.Close()

			if err := s.SelectNodes(ids...); err != nil {
				s.fail("%v", err)
			}
			n, err := s.DeleteSelected()
			if err != nil {
				s.fail("%v", err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Removed %d step(s)\n", ui.StatusIcon(true), n)
		},
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
