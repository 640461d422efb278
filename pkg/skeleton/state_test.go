package skeleton

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

func TestDumpLoadRoundTrip(t *testing.T) {
	want := loopState()
	s := load(t, want)
	got := dump(s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
	}
	if !got.Equal(want) {
		t.Error("Equal() = false for identical snapshots")
	}

	got.Edges[1].Nodes[0] = 42
	if got.Equal(want) {
		t.Error("Equal() = true after changing a node")
	}
}

func TestDumpAfterCommits(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(3, 0, 0)})
	commit(t, s, &delta.AddProp{Node: pt(9, 9, 0), Prop: "root=loose"})
	commit(t, s, &delta.AddPatch{Props: []delta.NodeProp{{Node: delta.LogIndex, Prop: "checked"}}})
	commit(t, s, &delta.AddProp{Link: model.Link{2, 0}, Prop: "error=gap"})

	want := State{
		Edges: []StateEdge{
			{Nodes: []model.NodeID{4}, Points: []model.Attr{pt(9, 9, 0)}},
			{Nodes: []model.NodeID{1, 2, 3}, Points: line(3, 0, 0)},
		},
		Props: []StateProp{
			{Node: 2, Prop: "error=gap"},
			{Node: 4, Prop: "root=loose"},
		},
		Logs:     []string{"checked"},
		Commits:  4,
		NextNode: 5,
	}
	st := dump(s)
	if diff := cmp.Diff(want, st); diff != "" {
		t.Fatalf("Dump() mismatch (-want +got):\n%s", diff)
	}

	copied := load(t, st)
	if diff := cmp.Diff(want, dump(copied)); diff != "" {
		t.Errorf("reloaded Dump() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejects(t *testing.T) {
	base := loopState()
	tests := []struct {
		name string
		edit func(*State)
	}{
		{"short points", func(st *State) { st.Edges[1].Points = st.Edges[1].Points[:1] }},
		{"root on missing node", func(st *State) { st.Props = append(st.Props, StateProp{Node: 77, Prop: "root"}) }},
		{"isolated twice", func(st *State) { st.Edges = append(st.Edges, st.Edges[0]) }},
		{"isolated edge end", func(st *State) {
			st.Edges = append(st.Edges, StateEdge{Nodes: []model.NodeID{9, 20}, Points: line(2, 0, 5)})
		}},
		{"stray vertex record", func(st *State) { st.Vertices = []StateVertex{{Node: 77}} }},
		{"bad prop", func(st *State) { st.Props = append(st.Props, StateProp{Node: 2, Prop: "=x"}) }},
		{"bad log", func(st *State) { st.Logs = []string{"two\nlines"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := base
			st.Edges = append([]StateEdge(nil), base.Edges...)
			st.Props = append([]StateProp(nil), base.Props...)
			tt.edit(&st)

			s := New()
			l := s.Loader()
			err := l.Load(st)
			l.Close()
			if !apperr.Is(err, apperr.ErrCodePatchRejected) {
				t.Errorf("Load() error = %v, want rejection", err)
			}
		})
	}

	s := load(t, base)
	l := s.Loader()
	defer l.Close()
	if err := l.Load(base); !apperr.Is(err, apperr.ErrCodeConflict) {
		t.Errorf("Load() into a populated store error = %v, want conflict", err)
	}
}

func TestLoadKeepsPropsOfDeletedNodes(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(7, 0, 0)})
	commit(t, s, &delta.AddProp{Link: model.Link{4, 0}, Prop: "error=bad"})
	commit(t, s, &delta.DelPatch{Nodes: []model.NodeID{3, 4, 5, 6}})

	st := dump(s)
	if !slices.Contains(st.Props, StateProp{Node: 4, Prop: "error=bad"}) {
		t.Fatalf("Dump() props = %v, want the property of deleted node 4", st.Props)
	}
	copied := load(t, st)
	if diff := cmp.Diff(st, dump(copied)); diff != "" {
		t.Errorf("reloaded Dump() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRestoresNextNode(t *testing.T) {
	s := New()
	commit(t, s, &delta.AddEdge{Nodes: line(5, 0, 0)})
	commit(t, s, &delta.DelPatch{Nodes: []model.NodeID{3, 4, 5, 5}})

	st := dump(s)
	if st.NextNode != 6 {
		t.Fatalf("Dump().NextNode = %d, want 6", st.NextNode)
	}
	copied := load(t, st)
	r := copied.Reader()
	got := r.NextNodeID()
	r.Close()
	if got != 6 {
		t.Errorf("NextNodeID() after Load = %d, want 6", got)
	}

	// new commits allocate past the deleted ids
	commit(t, copied, &delta.AddEdge{Nodes: line(2, 0, 3)})
	r = copied.Reader()
	defer r.Close()
	for _, id := range []model.NodeID{6, 7} {
		if _, ok := r.Vertex(id); !ok {
			t.Errorf("Vertex(%d) not found after a commit on the reloaded store", id)
		}
	}
	if got := r.NextNodeID(); got != 8 {
		t.Errorf("NextNodeID() = %d, want 8", got)
	}

	// snapshots without a counter fall back to the surviving nodes
	st.NextNode = 0
	legacy := load(t, st)
	lr := legacy.Reader()
	defer lr.Close()
	if got := lr.NextNodeID(); got != 4 {
		t.Errorf("NextNodeID() without a stored counter = %d, want 4", got)
	}
}

func TestLoadKeepsRightVertexAttr(t *testing.T) {
	const ext = model.Misc(1) << 20
	nodes := line(3, 0, 0)
	nodes[0].Misc |= ext
	nodes[2].Misc |= ext

	s := New()
	commit(t, s, &delta.AddEdge{Nodes: nodes})
	st := dump(s)
	want := []StateVertex{{Node: 3, Attr: nodes[2]}}
	if diff := cmp.Diff(want, st.Vertices); diff != "" {
		t.Fatalf("Dump().Vertices mismatch (-want +got):\n%s", diff)
	}

	copied := load(t, st)
	r := copied.Reader()
	defer r.Close()
	for _, id := range []model.NodeID{1, 3} {
		v, ok := r.Vertex(id)
		if !ok {
			t.Fatalf("Vertex(%d) not found", id)
		}
		if v.Attr.Misc&ext == 0 {
			t.Errorf("Vertex(%d).Attr.Misc = %#x, want extension bits kept", id, v.Attr.Misc)
		}
	}
	if diff := cmp.Diff(st, r.Dump()); diff != "" {
		t.Errorf("reloaded Dump() mismatch (-want +got):\n%s", diff)
	}
}
