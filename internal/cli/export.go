package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render/nodelink"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

func (c *CLI) exportCommand() *cobra.Command {
	var (
		src       sourceFlags
		out       string
		detailed  bool
		highlight string
		edge      uint32
		dir       int
	)
	cmd := &cobra.Command{
		Use:   "export FORMAT",
		Short: "Write the skeleton as " + strings.Join(render.Formats, ", "),
		Long: `Export writes the committed skeleton in one of the supported formats:

  json  the State snapshot, loadable with --snapshot
  swc   samples in SWC order with props as comment lines
  dot   the vertex/edge node-link graph in Graphviz syntax
  svg   the node-link graph laid out by Graphviz

With --highlight the selection runs first and the dot and svg outputs grey
out everything outside it.`,
		Example: `  skelstore export swc -o brain.swc
  skelstore export svg --highlight neuron --edge 12 -o neuron.svg`,
		ValidArgs: render.Formats,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			format := args[0]

			var sel func(*skeleton.Loader) error
			if highlight != "" {
				var err error
				if sel, err = skeleton.Highlight(highlight, model.EdgeID(edge), dir); err != nil {
					return err
				}
			}

			s, _, err := c.openStore(ctx, src)
			if err != nil {
				return err
			}
			if sel != nil {
				if _, err := s.Select(ctx, highlight, sel); err != nil {
					return err
				}
			}

			prog := newProgress(loggerFromContext(ctx))
			r := s.Reader()
			data, err := render.Export(ctx, r, format, nodelink.Options{Detailed: detailed, Highlight: sel != nil})
			r.Close()
			if err != nil {
				return err
			}

			if out == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			prog.done("Exported " + format)
			printFile(out)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label vertices with coordinates and edges with sample counts")
	cmd.Flags().StringVar(&highlight, "highlight", "", "run this highlight mode before exporting ("+strings.Join(skeleton.HighlightModes, ", ")+")")
	cmd.Flags().Uint32Var(&edge, "edge", 0, "edge for --highlight")
	cmd.Flags().IntVar(&dir, "dir", 0, "direction for --highlight neuron")
	registerSelectionCompletion(cmd, "highlight")
	return cmd
}
