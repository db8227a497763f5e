package cmd

import (
	"os"

	"github.com/msalah0e/pathseek/internal/graph"
	"github.com/msalah0e/pathseek/internal/render"
	"github.com/msalah0e/pathseek/internal/ui"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		output        string
		width, height float64
		zoom          float64
		from, to      int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the graph to an SVG file",
		Long: `Draw the graph the way the canvas shows it, centered in a width x height
frame. Pass --from and --to to highlight the shortest path between two steps.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := mustSession(cmd)
			defer s.Close()

			s.Resize(width, height)
			s.Viewport().SetZoom(zoom)
			s.CenterView()
			if from > 0 && to > 0 {
				if _, err := s.FindPath(graph.NodeID(from), graph.NodeID(to)); err != nil {
					ui.Warn.Fprintf(cmd.ErrOrStderr(), "  %s %s\n", ui.WarnIcon(), s.Status().Text)
				}
			}

			svg := render.NewSVG(width, height)
			s.Render(svg, width, height)

			if output == "" || output == "-" {
				cmd.OutOrStdout().Write(svg.Bytes())
				return
			}
			if err := os.WriteFile(output, svg.Bytes(), 0o644); err != nil {
				s.fail("Failed to write %s: %v", output, err)
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "  %s Rendered %d step(s) to %s\n", ui.StatusIcon(true), s.Graph().Len(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "pathseek.svg", "SVG file to write, or - for stdout")
	cmd.Flags().Float64Var(&width, "width", 1280, "Frame width in pixels")
	cmd.Flags().Float64Var(&height, "height", 800, "Frame height in pixels")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "Zoom level")
	cmd.Flags().IntVar(&from, "from", 0, "Highlight a path starting at this step")
	cmd.Flags().IntVar(&to, "to", 0, "Highlight a path ending at this step")
	return cmd
}
