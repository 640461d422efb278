package skeleton

import (
	"maps"
	"slices"
	"strings"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// State is the canonical snapshot of a committed graph.
type State struct {
	Edges    []StateEdge   `json:"edges"`
	Vertices []StateVertex `json:"vertices,omitempty"`
	Props    []StateProp   `json:"props"`
	Logs     []string      `json:"logs,omitempty"`
	Commits  uint32        `json:"commits"`

	// NextNode is the next node id to allocate. Deleted nodes keep their
	// ids reserved, so it can exceed every node in the snapshot.
	NextNode model.NodeID `json:"next_node,omitempty"`
}

// StateEdge is an edge of a snapshot. A single node is an isolated vertex.
type StateEdge struct {
	Nodes  []model.NodeID `json:"nodes"`
	Points []model.Attr   `json:"points"`
}

// StateVertex records the attributes of a vertex that no edge starts at.
// Right edge ends only carry canonical misc bits.
type StateVertex struct {
	Node model.NodeID `json:"node"`
	Attr model.Attr   `json:"attr"`
}

// StateProp is a property in "key[=value]" form.
type StateProp struct {
	Node model.NodeID `json:"node"`
	Prop string       `json:"prop"`
}

// Equal reports whether two snapshots describe the same graph.
func (st State) Equal(o State) bool {
	if st.Commits != o.Commits || st.NextNode != o.NextNode || !slices.Equal(st.Logs, o.Logs) ||
		!slices.Equal(st.Props, o.Props) || !slices.Equal(st.Vertices, o.Vertices) {
		return false
	}
	return slices.EqualFunc(st.Edges, o.Edges, func(a, b StateEdge) bool {
		return slices.Equal(a.Nodes, b.Nodes) && slices.Equal(a.Points, b.Points)
	})
}

// Dump returns the committed graph: isolated vertices by id, then edges
// by id, then properties ordered by node and key.
func (v *view) Dump() State {
	s := v.s
	st := State{Logs: slices.Clone(s.logs), Commits: s.commits, NextNode: s.nextNode}
	for _, id := range v.VertexIDs() {
		vert := s.verts[id]
		if len(vert.Edges) == 0 {
			st.Edges = append(st.Edges, StateEdge{
				Nodes:  []model.NodeID{id},
				Points: []model.Attr{vert.Attr},
			})
		}
	}
	for _, id := range v.EdgeIDs() {
		e := s.edges[id]
		st.Edges = append(st.Edges, StateEdge{
			Nodes:  slices.Clone(e.Nodes),
			Points: slices.Clone(e.Points),
		})
	}
	for _, id := range v.VertexIDs() {
		vert := s.verts[id]
		if len(vert.Edges) == 0 || vert.Attr.Misc == vert.Attr.Misc.Canonical() {
			continue
		}
		if !slices.ContainsFunc(vert.Edges, func(a Adjacency) bool { return !a.Right }) {
			st.Vertices = append(st.Vertices, StateVertex{Node: id, Attr: vert.Attr})
		}
	}
	for _, id := range s.props.sorted() {
		val, _ := s.props.get(id)
		st.Props = append(st.Props, StateProp{Node: id.Node, Prop: model.JoinProp(id.Key, val)})
	}
	return st
}

// Load stages a snapshot into an empty store. Root properties turn their
// node into a vertex. Other properties are kept even when their node is
// gone, as deleting nodes leaves them behind.
func (l *Loader) Load(st State) error {
	if l.closed {
		return ErrScopeClosed
	}
	s := l.s
	if len(s.nodes) != 0 || !s.stagingEmpty() {
		return apperr.New(apperr.ErrCodeConflict, "snapshot needs an empty store")
	}
	if err := l.load(st); err != nil {
		s.rejected = err
		return err
	}
	return nil
}

func (l *Loader) load(st State) error {
	s := l.s

	// A vertex takes its attributes from an isolated record, the left end
	// of an edge or a vertex record, in that order of preference over the
	// canonical right end samples.
	attrs := make(map[model.NodeID]model.Attr)
	exact := make(map[model.NodeID]bool)
	isolated := make(map[model.NodeID]bool)
	for i, e := range st.Edges {
		n := len(e.Nodes)
		if n == 0 || n != len(e.Points) {
			return rejectf("snapshot edge %d: %d nodes, %d points", i, n, len(e.Points))
		}
		if n == 1 {
			id := e.Nodes[0]
			if _, ok := attrs[id]; ok {
				return rejectf("isolated vertex %d also appears elsewhere", id)
			}
			attrs[id], exact[id], isolated[id] = e.Points[0], true, true
			continue
		}
		for _, id := range []model.NodeID{e.Nodes[0], e.Nodes[n-1]} {
			if isolated[id] {
				return rejectf("isolated vertex %d also appears elsewhere", id)
			}
		}
		if id := e.Nodes[0]; !exact[id] {
			attrs[id], exact[id] = e.Points[0], true
		}
		if id := e.Nodes[n-1]; !exact[id] {
			attrs[id] = e.Points[n-1]
		}
	}
	for _, v := range st.Vertices {
		if _, ok := attrs[v.Node]; !ok || isolated[v.Node] {
			return rejectf("vertex record %d ends no edge", v.Node)
		}
		attrs[v.Node] = v.Attr
	}

	for _, id := range slices.Sorted(maps.Keys(attrs)) {
		if err := s.genVert(id, attrs[id]); err != nil {
			return err
		}
	}
	for _, e := range st.Edges {
		n := len(e.Nodes)
		if n == 1 {
			continue
		}
		err := s.genEdge(e.Nodes[0], e.Nodes[n-1], slices.Clone(e.Points), slices.Clone(e.Nodes))
		if err != nil {
			return err
		}
	}

	for _, p := range st.Props {
		if !model.ValidKeyVal(p.Prop) {
			return rejectf("invalid property %q", p.Prop)
		}
		key, val := model.SplitProp(p.Prop)
		node := p.Node
		if key == model.KeyRoot {
			v, err := s.vertexAt(node)
			if err != nil {
				return err
			}
			node = v
		}
		if !s.addProp(model.PropID{Node: node, Key: key}, val) {
			return rejectf("property %q set twice on node %d", key, node)
		}
	}

	for _, line := range st.Logs {
		if line == "" || strings.ContainsAny(line, "\n\x00") {
			return rejectf("invalid log line %q", line)
		}
		s.addLog(line)
	}
	s.pending = st.Commits
	s.nextStaged = st.NextNode
	return nil
}
