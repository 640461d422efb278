// Package nodelink draws a skeleton as a node-link diagram.
//
// Vertices become Graphviz nodes and skeleton edges become undirected
// Graphviz edges, so the picture shows the topology the store maintains
// rather than the traced geometry. Roots are drawn as double circles, loop
// members in red and raised edges dashed.
//
//	r := store.Reader()
//	dot := nodelink.ToDOT(r, nodelink.Options{Highlight: true})
//	r.Close()
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in process through
// [github.com/goccy/go-graphviz].
package nodelink
