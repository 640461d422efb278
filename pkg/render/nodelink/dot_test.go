package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

type fakeGraph struct {
	verts   map[model.NodeID]skeleton.Vertex
	edges   map[model.EdgeID]skeleton.Edge
	roots   []skeleton.RootInfo
	visible skeleton.Visible
}

func (g fakeGraph) VertexIDs() []model.NodeID  { return []model.NodeID{1, 2, 3} }
func (g fakeGraph) EdgeIDs() []model.EdgeID    { return []model.EdgeID{1, 2} }
func (g fakeGraph) Roots() []skeleton.RootInfo { return g.roots }
func (g fakeGraph) Visible() skeleton.Visible  { return g.visible }

func (g fakeGraph) Vertex(id model.NodeID) (skeleton.Vertex, bool) {
	v, ok := g.verts[id]
	return v, ok
}

func (g fakeGraph) Edge(id model.EdgeID) (skeleton.Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func testGraph() fakeGraph {
	return fakeGraph{
		verts: map[model.NodeID]skeleton.Vertex{
			1: {Attr: model.NewAttr(0, 0, 0, 1, 0)},
			2: {Attr: model.NewAttr(1, 0, 0, 1, 0)},
			3: {Attr: model.NewAttr(2, 0, 0, 1, 0), Loop: true},
		},
		edges: map[model.EdgeID]skeleton.Edge{
			1: {Left: 1, Right: 2, Points: make([]model.Attr, 4)},
			2: {Left: 2, Right: 3, Points: make([]model.Attr, 2), Loop: true, Raised: true},
		},
		roots:   []skeleton.RootInfo{{Node: 1, Name: "soma"}},
		visible: skeleton.Visible{Edges: []model.EdgeID{1}, Vertices: []model.NodeID{1, 2}},
	}
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
		not  []string
	}{
		{
			name: "plain",
			want: []string{
				"graph G {",
				`v1 [label="1\nsoma", shape=doublecircle];`,
				`v3 [label="3", color=red];`,
				`v1 -- v2 [label="e1"];`,
				`v2 -- v3 [label="e2", color=red, style=dashed];`,
			},
			not: []string{"lightgrey"},
		},
		{
			name: "detailed",
			opts: Options{Detailed: true},
			want: []string{
				`v2 [label="2\n(1, 0, 0)"];`,
				`v1 -- v2 [label="e1\n4 samples"];`,
			},
		},
		{
			name: "highlight",
			opts: Options{Highlight: true},
			want: []string{
				`v2 [label="2"];`,
				`v3 [label="3", color=red, fillcolor=lightgrey, fontcolor=grey];`,
				`v2 -- v3 [label="e2", color=lightgrey, fontcolor=grey, style=dashed];`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(testGraph(), tt.opts)
			for _, s := range tt.want {
				if !strings.Contains(dot, s) {
					t.Errorf("ToDOT() missing %q in:\n%s", s, dot)
				}
			}
			for _, s := range tt.not {
				if strings.Contains(dot, s) {
					t.Errorf("ToDOT() contains %q", s)
				}
			}
		})
	}
}

func TestToDOTFromReader(t *testing.T) {
	nodes := []model.Attr{model.NewAttr(0, 0, 0, 1, 0), model.NewAttr(1, 0, 0, 1, 0)}
	st := skeleton.State{Edges: []skeleton.StateEdge{{Nodes: []model.NodeID{1, 2}, Points: nodes}}}
	s := skeleton.New()
	l := s.Loader()
	if err := l.Load(st); err != nil {
		t.Fatal(err)
	}
	l.Close()
	u := s.Updater()
	if _, err := u.Apply(); err != nil {
		t.Fatal(err)
	}
	u.Close()

	r := s.Reader()
	defer r.Close()
	if dot := ToDOT(r, Options{}); !strings.Contains(dot, "v1 -- v2") {
		t.Errorf("ToDOT() = %s, want edge v1 -- v2", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("RenderSVG() root not normalized: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}
