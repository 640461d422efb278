package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// rootOf returns the committed root of the component holding node n.
func (s *Store) rootOf(n model.NodeID) model.NodeID {
	pos, ok := s.nodes[n]
	if !ok {
		return 0
	}
	if pos.Edge != 0 {
		if e, ok := s.edges[pos.Edge]; ok {
			return e.Root
		}
		return 0
	}
	if v, ok := s.verts[pos.Vertex]; ok {
		return v.Root
	}
	return 0
}

// finished reports whether a vertex needs no further tracing: it branches,
// or it carries a state property.
func (s *Store) finished(vid model.NodeID) bool {
	if v, ok := s.verts[vid]; ok && len(v.Edges) > 1 {
		return true
	}
	return s.props.has(model.PropID{Node: vid, Key: model.KeyState})
}

func (s *Store) linkRoots(a, b model.NodeID) {
	if !slices.Contains(s.sameRoot[a], b) {
		s.sameRoot[a] = append(s.sameRoot[a], b)
	}
}

// updateTopology recomputes the derived fields of every component that
// holds a changed root. Components of untouched roots keep their fields.
func (s *Store) updateTopology(changed map[model.NodeID]struct{}) error {
	for n := range changed {
		if v, ok := s.verts[n]; ok && v.Root != 0 {
			changed[v.Root] = struct{}{}
		}
	}
	for {
		dropped := false
		for k, targets := range s.sameRoot {
			if _, ok := changed[k]; !ok {
				continue
			}
			delete(s.sameRoot, k)
			dropped = true
			for _, t := range targets {
				changed[t] = struct{}{}
			}
		}
		if !dropped {
			break
		}
	}

	for _, v := range s.verts {
		if v.Root == 0 {
			continue
		}
		if _, ok := s.sameRoot[v.Root]; !ok {
			v.Root, v.ParentEdge = 0, 0
			v.Loop, v.Raised, v.Complete = false, false, false
		}
	}
	for _, e := range s.edges {
		if e.Root == 0 {
			continue
		}
		if _, ok := s.sameRoot[e.Root]; !ok {
			e.Root, e.ParentVertex = 0, 0
			e.Loop, e.Raised = false, false
		}
	}

	var queue []model.NodeID
	for _, n := range s.props.nodes(model.KeyRoot) {
		if _, ok := s.sameRoot[n]; ok {
			continue
		}
		v, ok := s.verts[n]
		if !ok {
			continue
		}
		v.Complete = s.finished(n)
		v.Root, v.ParentEdge = n, 0
		queue = append(queue, n)
		s.sameRoot[n] = []model.NodeID{n}
	}

	raises := s.props.nodes(model.KeyRaise)
	var raised []model.NodeID
	for {
		for len(queue) == 0 && len(raises) > 0 {
			n := raises[0]
			raises = raises[1:]
			pos, ok := s.nodes[n]
			if !ok {
				continue
			}
			cand := pos.Vertex
			if pos.Edge != 0 {
				e, ok := s.edges[pos.Edge]
				if !ok {
					continue
				}
				e.Raised = true
				raised = append(raised, e.Left, e.Right)
				cand = e.Left
			} else {
				raised = append(raised, cand)
			}
			if _, ok := s.sameRoot[cand]; ok {
				continue
			}
			if v, ok := s.verts[cand]; ok && v.Root == 0 {
				v.Root, v.ParentEdge = cand, 0
				queue = append(queue, cand)
				s.sameRoot[cand] = []model.NodeID{cand}
			}
		}
		if len(queue) == 0 {
			break
		}

		vid := queue[0]
		queue = queue[1:]
		vert, ok := s.verts[vid]
		if !ok {
			return internalf("topology: vertex %d not found", vid)
		}
		root, ok := s.verts[vert.Root]
		if !ok {
			return internalf("topology: root %d not found", vert.Root)
		}
		for _, a := range vert.Edges {
			e, ok := s.edges[a.Edge]
			if !ok {
				return internalf("topology: edge %d not found", a.Edge)
			}
			if e.Root != 0 {
				continue
			}
			nvid := e.end(a.Right)
			e.Root, e.ParentVertex = vert.Root, vid
			if !s.finished(nvid) {
				root.Complete = false
			}
			nvert, ok := s.verts[nvid]
			if !ok {
				return internalf("topology: vertex %d not found", nvid)
			}
			if nvert.Root == 0 {
				nvert.Root, nvert.ParentEdge = vert.Root, a.Edge
				queue = append(queue, nvid)
				continue
			}
			s.linkRoots(vert.Root, nvert.Root)
			s.linkRoots(nvert.Root, vert.Root)
			root.Complete = false
			if nroot, ok := s.verts[nvert.Root]; ok {
				nroot.Complete = false
			}
			e.Loop = true
			if err := s.markLoop(vid, nvid); err != nil {
				return err
			}
		}
	}

	for len(raised) > 0 {
		vid := raised[0]
		raised = raised[1:]
		v, ok := s.verts[vid]
		if !ok || v.Raised {
			continue
		}
		v.Raised = true
		if !v.Attr.Misc.Coverage() {
			continue
		}
		for _, a := range v.Edges {
			e, ok := s.edges[a.Edge]
			if !ok || e.Raised {
				continue
			}
			e.Raised = true
			raised = append(raised, e.end(a.Right))
		}
	}

	s.raised = s.props.count(model.KeyRaise) > 0
	return nil
}

// markLoop flags the cycle closed by an edge between vid and nvid: both
// parent chains up to their common ancestor, or up to both roots when the
// chains never meet.
func (s *Store) markLoop(vid, nvid model.NodeID) error {
	// parent flags x and returns the edge to its parent, nil at a root.
	parent := func(x model.NodeID) (*Edge, error) {
		v, ok := s.verts[x]
		if !ok {
			return nil, internalf("topology: vertex %d not found", x)
		}
		v.Loop = true
		if v.ParentEdge == 0 {
			return nil, nil
		}
		e, ok := s.edges[v.ParentEdge]
		if !ok {
			return nil, internalf("topology: edge %d not found", v.ParentEdge)
		}
		return e, nil
	}

	ancestors := map[model.NodeID]struct{}{nvid: {}}
	for x := nvid; ; {
		v := s.verts[x]
		if v == nil || v.ParentEdge == 0 {
			break
		}
		e, ok := s.edges[v.ParentEdge]
		if !ok {
			return internalf("topology: edge %d not found", v.ParentEdge)
		}
		x = e.ParentVertex
		ancestors[x] = struct{}{}
	}

	var common model.NodeID
	for x := vid; ; {
		if _, ok := ancestors[x]; ok {
			common = x
			break
		}
		e, err := parent(x)
		if err != nil {
			return err
		}
		if e == nil {
			break
		}
		e.Loop = true
		x = e.ParentVertex
	}

	for x := nvid; ; {
		e, err := parent(x)
		if err != nil {
			return err
		}
		if e == nil || x == common {
			break
		}
		e.Loop = true
		x = e.ParentVertex
		if x == common {
			if v, ok := s.verts[x]; ok {
				v.Loop = true
			}
			break
		}
	}
	return nil
}
