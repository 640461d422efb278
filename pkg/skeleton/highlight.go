package skeleton

import (
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// highlighter collects a selection over the committed graph.
type highlighter struct {
	s     *Store
	edges map[model.EdgeID]struct{}
	verts map[model.NodeID]struct{}
	todo  []model.NodeID
}

// beginHighlight stages an empty rebuild of the visible sets. Selections
// are computed on the committed graph, so nothing else may be staged.
func (l *Loader) beginHighlight() (*highlighter, error) {
	if l.closed {
		return nil, ErrScopeClosed
	}
	s := l.s
	if !s.stagingEmpty() {
		return nil, apperr.New(apperr.ErrCodeConflict, "highlight needs an empty staging area")
	}
	s.filter.reset()
	return &highlighter{
		s:     s,
		edges: make(map[model.EdgeID]struct{}),
		verts: make(map[model.NodeID]struct{}),
	}, nil
}

func (h *highlighter) hasEdge(id model.EdgeID) bool {
	_, ok := h.edges[id]
	return ok
}

// ascend queues vid and its ancestors, selecting parent edges until it
// reaches the root or an edge that is already selected.
func (h *highlighter) ascend(vid model.NodeID) {
	for {
		h.todo = append(h.todo, vid)
		v, ok := h.s.verts[vid]
		if !ok || v.ParentEdge == 0 || h.hasEdge(v.ParentEdge) {
			return
		}
		h.edges[v.ParentEdge] = struct{}{}
		e, ok := h.s.edges[v.ParentEdge]
		if !ok {
			return
		}
		vid = e.ParentVertex
	}
}

// extend selects everything reachable from the queued vertices. Loop
// edges are selected but only crossed when allowLoop is set.
func (h *highlighter) extend(allowLoop bool) {
	for len(h.todo) > 0 {
		vid := h.todo[len(h.todo)-1]
		h.todo = h.todo[:len(h.todo)-1]
		if _, ok := h.verts[vid]; ok {
			continue
		}
		h.verts[vid] = struct{}{}
		v, ok := h.s.verts[vid]
		if !ok {
			continue
		}
		for _, a := range v.Edges {
			e, ok := h.s.edges[a.Edge]
			if !ok {
				continue
			}
			h.edges[a.Edge] = struct{}{}
			if e.Loop && !allowLoop {
				continue
			}
			h.todo = append(h.todo, e.end(a.Right))
		}
	}
	for id := range h.edges {
		if e, ok := h.s.edges[id]; ok {
			h.verts[e.Left] = struct{}{}
			h.verts[e.Right] = struct{}{}
		}
	}
	h.finish()
}

// finish selects the properties on selected nodes and stages the result.
func (h *highlighter) finish() {
	f := &h.s.filter
	for id := range h.s.props.vals {
		pos, ok := h.s.nodes[id.Node]
		if !ok {
			continue
		}
		_, onEdge := h.edges[pos.Edge]
		_, onVert := h.verts[pos.Vertex]
		if (pos.Edge != 0 && onEdge) || (pos.Edge == 0 && onVert) {
			f.propsD[id] = true
		}
	}
	for id := range h.edges {
		f.edgesD[id] = true
	}
	for id := range h.verts {
		f.vertsD[id] = true
	}
}

// HighlightLoop selects the loop through eid, or through the loop edge
// with the smallest id when eid is not on a loop, together with the path
// to its root and everything attached to them without crossing other
// loops. Nothing is selected when the graph has no loop.
func (l *Loader) HighlightLoop(eid model.EdgeID) error {
	h, err := l.beginHighlight()
	if err != nil {
		return err
	}
	s := h.s
	if e, ok := s.edges[eid]; !ok || !e.Loop {
		eid = 0
		for id, e := range s.edges {
			if e.Loop && (eid == 0 || id < eid) {
				eid = id
			}
		}
		if eid == 0 {
			return nil
		}
	}

	var vid model.NodeID
	for {
		e := s.edges[eid]
		vid = e.Left
		if vid == e.ParentVertex {
			vid = e.Right
		}
		v, ok := s.verts[vid]
		if !ok || v.ParentEdge != eid {
			break
		}
		var next model.EdgeID
		for _, a := range v.Edges {
			if a.Edge == v.ParentEdge {
				continue
			}
			if ne, ok := s.edges[a.Edge]; ok && ne.Loop {
				next = a.Edge
				break
			}
		}
		if next == 0 {
			return internalf("highlight: loop ends at vertex %d", vid)
		}
		if s.edges[next].ParentVertex != vid {
			break
		}
		eid = next
	}

	h.edges[eid] = struct{}{}
	h.ascend(s.edges[eid].ParentVertex)
	h.ascend(vid)
	h.extend(false)
	return nil
}

// HighlightNeuron selects the neuron holding eid. A negative dir selects
// only the path from eid to the root, a positive dir adds the subtree
// below eid, and zero selects the whole component. An edge without a
// root selects its connected component.
func (l *Loader) HighlightNeuron(eid model.EdgeID, dir int) error {
	h, err := l.beginHighlight()
	if err != nil {
		return err
	}
	e, ok := h.s.edges[eid]
	if !ok {
		return apperr.New(apperr.ErrCodeNotFound, "edge %d not found", eid)
	}
	if e.Root == 0 {
		h.orphan(eid, e)
		return nil
	}
	h.edges[eid] = struct{}{}
	h.ascend(e.ParentVertex)
	if dir != 0 {
		for _, vid := range h.todo {
			h.verts[vid] = struct{}{}
		}
		h.todo = h.todo[:0]
	}
	h.todo = append(h.todo, e.Left, e.Right)
	child := e.Left
	if child == e.ParentVertex {
		child = e.Right
	}
	switch {
	case dir < 0:
		h.verts[child] = struct{}{}
	case dir > 0:
		h.verts[e.ParentVertex] = struct{}{}
	}
	h.extend(true)
	return nil
}

// HighlightOrphan selects the connected component holding eid.
func (l *Loader) HighlightOrphan(eid model.EdgeID) error {
	h, err := l.beginHighlight()
	if err != nil {
		return err
	}
	e, ok := h.s.edges[eid]
	if !ok {
		return apperr.New(apperr.ErrCodeNotFound, "edge %d not found", eid)
	}
	h.orphan(eid, e)
	return nil
}

func (h *highlighter) orphan(eid model.EdgeID, e *Edge) {
	h.edges[eid] = struct{}{}
	h.todo = append(h.todo, e.Left, e.Right)
	h.extend(true)
}

// HighlightRaised selects every raised edge and its end vertices.
func (l *Loader) HighlightRaised() error {
	h, err := l.beginHighlight()
	if err != nil {
		return err
	}
	for id, e := range h.s.edges {
		if e.Raised {
			h.edges[id] = struct{}{}
			h.verts[e.Left] = struct{}{}
			h.verts[e.Right] = struct{}{}
		}
	}
	h.finish()
	return nil
}

// HighlightModes lists the names accepted by [Highlight].
var HighlightModes = []string{"loop", "neuron", "orphan", "raised"}

// Highlight returns the selection named by mode, ready for [Store.Select].
// eid is ignored by "raised"; dir is only used by "neuron".
func Highlight(mode string, eid model.EdgeID, dir int) (func(*Loader) error, error) {
	if mode == "neuron" && (dir < -1 || dir > 1) {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "invalid direction %d", dir)
	}
	switch mode {
	case "loop":
		return func(l *Loader) error { return l.HighlightLoop(eid) }, nil
	case "neuron":
		return func(l *Loader) error { return l.HighlightNeuron(eid, dir) }, nil
	case "orphan":
		return func(l *Loader) error { return l.HighlightOrphan(eid) }, nil
	case "raised":
		return func(l *Loader) error { return l.HighlightRaised() }, nil
	}
	return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown highlight mode %q", mode)
}
