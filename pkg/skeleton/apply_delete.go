package skeleton

import (
	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// delState is the position of the del_patch scanner.
type delState int

const (
	delStart  delState = iota // before a run
	delOpen                   // the previous id is a run's first node
	delInside                 // walking along one edge
)

// loadDelPatch removes properties, then runs of nodes. Runs are separated
// by 0. A run either names a single vertex, or walks along edges where the
// first and last nodes survive as new terminals; repeating the first or
// last id also removes that end.
func (s *Store) loadDelPatch(d *delta.DelPatch) error {
	if err := s.delProps(d.Props); err != nil {
		return err
	}
	if len(d.Nodes) == 0 {
		return nil
	}

	var (
		state     = delStart
		idPrev    model.NodeID
		dupOpen   model.NodeID
		dupClose  bool
		edg       *Edge
		eid       model.EdgeID
		idx0, cur int
	)
	for i := 0; i < len(d.Nodes); {
		id := d.Nodes[i]
		switch state {
		case delStart:
			if id == 0 {
				return rejectf("del_patch run starts with 0")
			}
			state = delOpen
			idPrev = id
			dupOpen = 0
			dupClose = false
			eid = 0

		case delOpen:
			switch {
			case id == 0:
				if dupOpen != 0 {
					return rejectf("node %d repeated", dupOpen)
				}
				if err := s.removeVertex(idPrev); err != nil {
					return err
				}
				state = delStart
			case id == idPrev:
				if dupOpen != 0 {
					return rejectf("node %d repeated", id)
				}
				dupOpen = id
			default:
				var err error
				edg, eid, idx0, cur, err = s.findStep(idPrev, id)
				if err != nil {
					return err
				}
				state = delInside
				idPrev = id
			}

		case delInside:
			switch {
			case id == 0:
				if err := s.closeRun(eid, idx0, cur, dupOpen); err != nil {
					return err
				}
				state = delStart
			case id == idPrev:
				if err := s.closeRun(eid, idx0, cur, dupOpen); err != nil {
					return err
				}
				if err := s.removeVertex(id); err != nil {
					return err
				}
				state = delStart
				dupClose = true
			default:
				next := cur - 1
				if idx0 < cur {
					next = cur + 1
				}
				if next < 0 || next >= len(edg.Nodes) {
					if err := s.closeRun(eid, idx0, cur, dupOpen); err != nil {
						return err
					}
					dupOpen = idPrev
					eid = 0
					state = delOpen
					continue
				}
				if edg.Nodes[next] != id {
					return rejectf("node %d does not follow node %d", id, idPrev)
				}
				cur = next
				idPrev = id
			}
		}
		i++
	}

	switch state {
	case delStart:
		if !dupClose {
			return rejectf("del_patch ends with 0")
		}
	case delOpen:
		if dupOpen != 0 {
			return rejectf("node %d repeated", dupOpen)
		}
		return s.removeVertex(idPrev)
	case delInside:
		return s.closeRun(eid, idx0, cur, dupOpen)
	}
	return nil
}

// findStep locates the edge leading from node from to its neighbour to.
// It returns the edge, its id and the sample indices of both nodes.
func (s *Store) findStep(from, to model.NodeID) (*Edge, model.EdgeID, int, int, error) {
	pos := s.getPosition(from)
	if pos.Edge != 0 {
		edg := s.getEdge(pos.Edge)
		if edg == nil {
			return nil, 0, 0, 0, rejectf("edge %d not found", pos.Edge)
		}
		idx0 := pos.Sample()
		if idx0 <= 0 || idx0+1 >= len(edg.Nodes) {
			return nil, 0, 0, 0, rejectf("node %d has a bad position", from)
		}
		hits, cur := 0, 0
		if edg.Nodes[idx0-1] == to {
			cur = idx0 - 1
			hits++
		}
		if edg.Nodes[idx0+1] == to {
			cur = idx0 + 1
			hits++
		}
		if hits != 1 {
			return nil, 0, 0, 0, rejectf("node %d is not next to node %d", to, from)
		}
		return edg, pos.Edge, idx0, cur, nil
	}
	if pos.Vertex == 0 {
		return nil, 0, 0, 0, rejectf("node %d not found", from)
	}
	vert := s.getVert(pos.Vertex)
	if vert == nil {
		return nil, 0, 0, 0, rejectf("vertex %d not found", pos.Vertex)
	}
	var (
		found     *Edge
		eid       model.EdgeID
		idx0, cur int
		hits      int
	)
	for _, a := range vert.Edges {
		e := s.getEdge(a.Edge)
		if e == nil {
			return nil, 0, 0, 0, rejectf("edge %d not found", a.Edge)
		}
		ia, ib := 0, 1
		if a.Right {
			ia, ib = len(e.Nodes)-1, len(e.Nodes)-2
		}
		if e.Nodes[ib] == to {
			found, eid, idx0, cur = e, a.Edge, ia, ib
			hits++
		}
	}
	if hits != 1 {
		return nil, 0, 0, 0, rejectf("node %d is not next to vertex %d", to, from)
	}
	return found, eid, idx0, cur, nil
}

// closeRun removes the samples between idx0 and cur, and the vertex a
// repeated first id asked for.
func (s *Store) closeRun(eid model.EdgeID, idx0, cur int, dupOpen model.NodeID) error {
	if idx0 > cur {
		idx0, cur = cur, idx0
	}
	if err := s.removeSubedge(eid, idx0, cur); err != nil {
		return err
	}
	if dupOpen != 0 {
		return s.removeVertex(dupOpen)
	}
	return nil
}

// removeVertex deletes a vertex that no longer has edges.
func (s *Store) removeVertex(id model.NodeID) error {
	pos := s.getPosition(id)
	if pos.Edge != 0 || pos.Vertex == 0 {
		return rejectf("node %d is not a vertex", id)
	}
	if v := s.getVert(pos.Vertex); v != nil && len(v.Edges) > 0 {
		return rejectf("vertex %d still has %d edges", pos.Vertex, len(v.Edges))
	}
	if !s.delNode(pos.Vertex) {
		return rejectf("node %d not found", pos.Vertex)
	}
	if !s.delVert(pos.Vertex) {
		return rejectf("vertex %d not found", pos.Vertex)
	}
	return nil
}
