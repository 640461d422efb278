package skeleton

import (
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

func corruptf(format string, args ...any) error {
	return apperr.New(apperr.ErrCodeCorrupt, format, args...)
}

// Check validates the structural invariants of the committed graph: edge
// shapes, adjacency lists in both directions and node positions. It
// returns the first violation found. Properties may outlive their node.
func (v *view) Check() error {
	s := v.s
	for _, eid := range v.EdgeIDs() {
		e := s.edges[eid]
		n := len(e.Nodes)
		if n < 2 || n != len(e.Points) {
			return corruptf("edge %d: %d nodes, %d points", eid, n, len(e.Points))
		}
		if e.Nodes[0] != e.Left || e.Nodes[n-1] != e.Right {
			return corruptf("edge %d: ends %d-%d do not match nodes", eid, e.Left, e.Right)
		}
		if e.Left == e.Right {
			return corruptf("edge %d: starts and ends at vertex %d", eid, e.Left)
		}
		for _, end := range []struct {
			vid   model.NodeID
			right bool
		}{{e.Left, false}, {e.Right, true}} {
			vert, ok := s.verts[end.vid]
			if !ok {
				return corruptf("edge %d: vertex %d not found", eid, end.vid)
			}
			hits := 0
			for _, a := range vert.Edges {
				if a == (Adjacency{eid, end.right}) {
					hits++
				}
			}
			if hits != 1 {
				return corruptf("edge %d: vertex %d lists it %d times", eid, end.vid, hits)
			}
		}
		for i := 1; i < n-1; i++ {
			if pos := s.nodes[e.Nodes[i]]; pos != edgePosition(eid, i) {
				return corruptf("edge %d: node %d at %v", eid, e.Nodes[i], pos)
			}
		}
	}

	for _, vid := range v.VertexIDs() {
		vert := s.verts[vid]
		if pos := s.nodes[vid]; pos != vertexPosition(vid) {
			return corruptf("vertex %d: node at %v", vid, pos)
		}
		for _, a := range vert.Edges {
			e, ok := s.edges[a.Edge]
			if !ok {
				return corruptf("vertex %d: edge %d not found", vid, a.Edge)
			}
			if e.end(!a.Right) != vid {
				return corruptf("vertex %d: wrong side of edge %d", vid, a.Edge)
			}
		}
	}

	for id, pos := range s.nodes {
		switch {
		case pos.Edge != 0:
			e, ok := s.edges[pos.Edge]
			if !ok || pos.Sample() >= len(e.Nodes) || e.Nodes[pos.Sample()] != id {
				return corruptf("node %d: not at %v", id, pos)
			}
		case pos.Vertex != id:
			return corruptf("node %d: not at %v", id, pos)
		}
	}
	return nil
}
