package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// promote moves the staged batch into the committed graph, then refreshes
// the visible sets and the derived topology. Any mismatch between staging
// and the committed maps is an internal error.
func (s *Store) promote() (CommitResult, error) {
	var res CommitResult
	changed := make(map[model.NodeID]struct{})
	touch := func(root model.NodeID) {
		if root != 0 {
			changed[root] = struct{}{}
		}
	}

	for id, c := range s.nodesD {
		switch c.op {
		case opAdd:
			if _, ok := s.nodes[id]; ok {
				return res, internalf("commit: node %d already exists", id)
			}
			s.nodes[id] = c.val
			if id >= s.nextNode {
				s.nextNode = id + 1
			}
		case opDel:
			if _, ok := s.nodes[id]; !ok {
				return res, internalf("commit: node %d not found", id)
			}
			delete(s.nodes, id)
		case opChg:
			if _, ok := s.nodes[id]; !ok {
				return res, internalf("commit: node %d not found", id)
			}
			s.nodes[id] = c.val
		}
	}
	if s.nextStaged > s.nextNode {
		s.nextNode = s.nextStaged
	}

	for id, c := range s.vertsD {
		old, ok := s.verts[id]
		switch c.op {
		case opAdd:
			if ok {
				return res, internalf("commit: vertex %d already exists", id)
			}
			v := c.val
			s.verts[id] = &v
			touch(v.Root)
		case opDel:
			if !ok {
				return res, internalf("commit: vertex %d not found", id)
			}
			delete(s.verts, id)
			touch(old.Root)
			s.filter.forgetVertex(id)
		case opChg:
			if !ok {
				return res, internalf("commit: vertex %d not found", id)
			}
			v := c.val
			s.verts[id] = &v
			touch(v.Root)
			touch(old.Root)
		}
	}

	for id, c := range s.edgesD {
		old, ok := s.edges[id]
		switch c.op {
		case opAdd:
			if ok {
				return res, internalf("commit: edge %d already exists", id)
			}
			e := c.val
			s.edges[id] = &e
			touch(e.Root)
		case opDel:
			if !ok {
				return res, internalf("commit: edge %d not found", id)
			}
			delete(s.edges, id)
			touch(old.Root)
			res.EdgesDeleted = append(res.EdgesDeleted, id)
			s.filter.forgetEdge(id)
		default:
			return res, internalf("commit: edge %d changed in place", id)
		}
	}

	for id, c := range s.propsD {
		if id.Key == model.KeyRaise || id.Key == model.KeyState {
			touch(s.rootOf(id.Node))
		}
		switch c.op {
		case opAdd:
			if !s.props.insert(id, c.val) {
				return res, internalf("commit: property %v already exists", id)
			}
			if id.Key == model.KeyRoot {
				res.TreesAdded = append(res.TreesAdded, RootMarker{id.Node, c.val})
				touch(id.Node)
			}
		case opDel:
			if !s.props.remove(id) {
				return res, internalf("commit: property %v not found", id)
			}
			s.filter.forgetProp(id)
			if id.Key == model.KeyRoot {
				res.TreesDeleted = append(res.TreesDeleted, id.Node)
				touch(id.Node)
			}
		case opChg:
			if !s.props.update(id, c.val) {
				return res, internalf("commit: property %v not found", id)
			}
			if id.Key == model.KeyRoot {
				res.TreesChanged = append(res.TreesChanged, RootMarker{id.Node, c.val})
				touch(id.Node)
			}
		}
	}

	s.logs = append(s.logs, s.logsD...)
	s.edgeIDs.commit()
	s.commits += s.pending
	res.Nid0 = s.nid0

	vis, err := s.filter.promote()
	if err != nil {
		return res, err
	}
	res.Visible = vis

	if err := s.updateTopology(changed); err != nil {
		return res, err
	}

	slices.Sort(res.EdgesDeleted)
	slices.Sort(res.TreesDeleted)
	byNode := func(a, b RootMarker) int {
		switch {
		case a.Node < b.Node:
			return -1
		case a.Node > b.Node:
			return 1
		}
		return 0
	}
	slices.SortFunc(res.TreesAdded, byNode)
	slices.SortFunc(res.TreesChanged, byNode)
	return res, nil
}
