package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// Graph is the read access ToDOT needs. [skeleton.Reader] and
// [skeleton.Loader] implement it.
type Graph interface {
	VertexIDs() []model.NodeID
	EdgeIDs() []model.EdgeID
	Vertex(id model.NodeID) (skeleton.Vertex, bool)
	Edge(id model.EdgeID) (skeleton.Edge, bool)
	Roots() []skeleton.RootInfo
	Visible() skeleton.Visible
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds vertex coordinates and edge sample counts to labels.
	Detailed bool

	// Highlight greys out everything outside the visible set.
	Highlight bool
}

// ToDOT converts the committed skeleton to an undirected Graphviz graph:
// one node per vertex and one edge per skeleton edge. Loop edges are drawn
// red and raised edges dashed.
func ToDOT(g Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("  edge [fontsize=8];\n")
	buf.WriteString("\n")

	names := make(map[model.NodeID]string)
	for _, r := range g.Roots() {
		names[r.Node] = r.Name
	}
	var vis skeleton.Visible
	if opts.Highlight {
		vis = g.Visible()
	}

	for _, id := range g.VertexIDs() {
		v, _ := g.Vertex(id)
		attrs := []string{fmt.Sprintf("label=%q", vertexLabel(id, v, names, opts.Detailed))}
		if _, ok := names[id]; ok {
			attrs = append(attrs, "shape=doublecircle")
		}
		if v.Loop {
			attrs = append(attrs, "color=red")
		}
		if opts.Highlight && !slices.Contains(vis.Vertices, id) {
			attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=grey")
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range g.EdgeIDs() {
		e, _ := g.Edge(id)
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(id, e, opts.Detailed))}
		switch {
		case opts.Highlight && !slices.Contains(vis.Edges, id):
			attrs = append(attrs, "color=lightgrey", "fontcolor=grey")
		case e.Loop:
			attrs = append(attrs, "color=red")
		}
		if e.Raised {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [%s];\n", e.Left, e.Right, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexLabel(id model.NodeID, v skeleton.Vertex, names map[model.NodeID]string, detailed bool) string {
	label := strconv.FormatUint(uint64(id), 10)
	if name := names[id]; name != "" {
		label += "\n" + name
	}
	if detailed {
		label += fmt.Sprintf("\n(%g, %g, %g)", v.Attr.Coord(0), v.Attr.Coord(1), v.Attr.Coord(2))
	}
	return label
}

func edgeLabel(id model.EdgeID, e skeleton.Edge, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("e%d", id)
	}
	return fmt.Sprintf("e%d\n%d samples", id, len(e.Points))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root element so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
