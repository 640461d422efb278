package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

func (c *CLI) filterCommand() *cobra.Command {
	var (
		src     sourceFlags
		asJSON  bool
		bboxArg string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Select the edges, vertices and props inside a bounding box",
		Example: `  skelstore filter --bbox 0,0,0,1000,1000,200
  skelstore filter --snapshot brain.json --bbox 0,0,0,10,10,10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bbox, err := skeleton.ParseBBox(bboxArg)
			if err != nil {
				return err
			}
			s, _, err := c.openStore(cmd.Context(), src)
			if err != nil {
				return err
			}
			if _, err := s.Select(cmd.Context(), "bbox", func(l *skeleton.Loader) error {
				return l.Filter(bbox)
			}); err != nil {
				return err
			}
			return printVisible(cmd.OutOrStdout(), s, asJSON)
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&bboxArg, "bbox", "", "box as x0,y0,z0,x1,y1,z1")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the visible sets as JSON")
	_ = cmd.MarkFlagRequired("bbox")
	_ = cmd.RegisterFlagCompletionFunc("bbox", cobra.NoFileCompletions)
	return cmd
}

func (c *CLI) highlightCommand() *cobra.Command {
	var (
		src    sourceFlags
		asJSON bool
		edge   uint32
		dir    int
	)
	cmd := &cobra.Command{
		Use:   "highlight MODE",
		Short: "Select a loop, neuron, orphan or the raised edges",
		Long: `Highlight selects part of the topology and prints what became visible.

Modes:
  loop     the loop through --edge, or the first loop found
  neuron   the neuron holding --edge; --dir -1 keeps the path to the root,
           --dir 1 adds the subtree below the edge, 0 selects everything
  orphan   the unrooted component holding --edge
  raised   every raised edge`,
		ValidArgs: skeleton.HighlightModes,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := skeleton.Highlight(args[0], model.EdgeID(edge), dir)
			if err != nil {
				return err
			}
			s, _, err := c.openStore(cmd.Context(), src)
			if err != nil {
				return err
			}
			if _, err := s.Select(cmd.Context(), args[0], fn); err != nil {
				return err
			}
			return printVisible(cmd.OutOrStdout(), s, asJSON)
		},
	}
	src.register(cmd)
	cmd.Flags().Uint32Var(&edge, "edge", 0, "edge to start from")
	cmd.Flags().IntVar(&dir, "dir", 0, "neuron direction: -1 up, 0 all, 1 down")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the visible sets as JSON")
	registerSelectionCompletion(cmd, "")
	return cmd
}

// printVisible reports the committed visible sets of s.
func printVisible(w io.Writer, s *skeleton.Store, asJSON bool) error {
	r := s.Reader()
	vis := r.Visible()
	r.Close()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vis)
	}
	fmt.Fprintf(w, "edges     %v\n", vis.Edges)
	fmt.Fprintf(w, "vertices  %v\n", vis.Vertices)
	fmt.Fprintf(w, "props     %d\n", len(vis.Props))
	return nil
}
