package skeleton

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

func TestMergeCollapsesDegreeTwoVertex(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(3, 0, 0)})
	res := commit(t, s, &delta.AddEdge{Left: model.Link{3, 0}, Nodes: line(3, 2, 0)})

	if diff := cmp.Diff([]model.EdgeID{1}, res.EdgesDeleted); diff != "" {
		t.Errorf("EdgesDeleted mismatch (-want +got):\n%s", diff)
	}
	r := s.Reader()
	defer r.Close()
	if diff := cmp.Diff([]model.NodeID{1, 5}, r.VertexIDs()); diff != "" {
		t.Errorf("VertexIDs() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.EdgeID{3}, r.EdgeIDs()); diff != "" {
		t.Fatalf("EdgeIDs() mismatch (-want +got):\n%s", diff)
	}
	e, _ := r.Edge(3)
	if diff := cmp.Diff([]model.NodeID{1, 2, 3, 4, 5}, e.Nodes); diff != "" {
		t.Errorf("merged nodes mismatch (-want +got):\n%s", diff)
	}
	if pos, _ := r.Position(3); pos != (Position{Edge: 3, Index: 2 * model.PositionScale}) {
		t.Errorf("Position(3) = %v, want edge 3@256", pos)
	}
	if e.Points[2] != pt(2, 0, 0) {
		t.Errorf("merged sample 2 = %+v, want %+v", e.Points[2], pt(2, 0, 0))
	}
}

func TestMergeFollowsReversedEdges(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(2, 0, 0)})
	commit(t, s, &delta.AddEdge{Nodes: line(2, 5, 0)})
	// joins the left ends of both edges
	commit(t, s, &delta.AddEdge{Left: model.Link{1, 0}, Right: model.Link{3, 0}, Nodes: line(3, 0, 1)})

	r := s.Reader()
	defer r.Close()
	if diff := cmp.Diff([]model.NodeID{2, 4}, r.VertexIDs()); diff != "" {
		t.Errorf("VertexIDs() mismatch (-want +got):\n%s", diff)
	}
	ids := r.EdgeIDs()
	if len(ids) != 1 {
		t.Fatalf("EdgeIDs() = %v, want one edge", ids)
	}
	e, _ := r.Edge(ids[0])
	if diff := cmp.Diff([]model.NodeID{4, 3, 5, 1, 2}, e.Nodes); diff != "" {
		t.Errorf("merged nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	build := func(merges int) State {
		s := New()
		commit(t, s, &delta.AddEdge{Nodes: line(3, 0, 0)})
		l := s.Loader()
		if err := l.Apply(delta.CommitInfo{ID: 2, Nid0: 4}, &delta.AddEdge{Left: model.Link{3, 0}, Nodes: line(4, 2, 0)}); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		for i := 0; i < merges; i++ {
			if err := l.Merge(); err != nil {
				t.Fatalf("Merge() error = %v", err)
			}
		}
		l.Close()
		u := s.Updater()
		defer u.Close()
		if _, err := u.Apply(); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		return u.Dump()
	}

	once, twice := build(0), build(3)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("repeated merge changed the result (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsRootVertex(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(3, 0, 0)})
	commit(t, s, &delta.AddProp{Link: model.Link{3, 0}, Prop: "root=soma"})
	commit(t, s, &delta.AddEdge{Left: model.Link{3, 0}, Nodes: line(3, 2, 0)})

	r := s.Reader()
	defer r.Close()
	if n := len(r.EdgeIDs()); n != 2 {
		t.Errorf("len(EdgeIDs()) = %d, want 2", n)
	}
	if v, ok := r.Vertex(3); !ok || len(v.Edges) != 2 {
		t.Errorf("Vertex(3) = %+v, %v, want a vertex with 2 edges", v, ok)
	}
}
