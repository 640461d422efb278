package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// pathItem is one edge of a merge path. inv is set when the edge is walked
// from right to left. vert is the vertex where the item starts; it is nil
// for the first item until the path is final.
type pathItem struct {
	edg  *Edge
	vert *Vertex
	eid  model.EdgeID
	inv  bool
}

func (it pathItem) start() model.NodeID {
	if it.inv {
		return it.edg.Right
	}
	return it.edg.Left
}

func (it pathItem) finish() model.NodeID {
	if it.inv {
		return it.edg.Left
	}
	return it.edg.Right
}

// mergePath is a run of edges joined at degree-2 vertices.
type mergePath []pathItem

// open reports whether the path does not close on itself.
func (p mergePath) open() bool {
	return p[0].start() != p[len(p)-1].finish()
}

// mergeable reports whether a vertex can disappear into a merged edge.
func (s *Store) mergeable(id model.NodeID, v *Vertex) bool {
	if v == nil || len(v.Edges) != 2 {
		return false
	}
	_, rooted := s.getProp(model.PropID{Node: id, Key: model.KeyRoot})
	return !rooted
}

// seedPath builds the two edge path through a candidate vertex.
func (s *Store) seedPath(v *Vertex) (mergePath, error) {
	a, b := v.Edges[0], v.Edges[1]
	ea, eb := s.getEdge(a.Edge), s.getEdge(b.Edge)
	if ea == nil || eb == nil {
		return nil, internalf("merge: vertex references a missing edge")
	}
	return mergePath{
		{edg: ea, eid: a.Edge, inv: !a.Right},
		{edg: eb, vert: v, eid: b.Edge, inv: b.Right},
	}, nil
}

// tryMerge collapses staged degree-2 vertices without a root property
// into single edges until none is left. Loops are never closed into one
// edge.
func (s *Store) tryMerge() error {
	var todo []model.NodeID
	for id, c := range s.vertsD {
		if c.op != opDel && s.mergeable(id, &c.val) {
			todo = append(todo, id)
		}
	}
	slices.Sort(todo)
	var todoRoots []model.NodeID
	for id := range s.propsD {
		if id.Key == model.KeyRoot {
			todoRoots = append(todoRoots, id.Node)
		}
	}
	slices.Sort(todoRoots)

	for {
		var path mergePath
		for path == nil && len(todo) > 0 {
			id := todo[len(todo)-1]
			todo = todo[:len(todo)-1]
			c, ok := s.vertsD[id]
			if !ok || c.op == opDel || !s.mergeable(id, &c.val) {
				continue
			}
			p, err := s.seedPath(&c.val)
			if err != nil {
				return err
			}
			if p.open() {
				path = p
			}
		}
		for path == nil && len(todoRoots) > 0 {
			id := todoRoots[len(todoRoots)-1]
			todoRoots = todoRoots[:len(todoRoots)-1]
			v := s.getVert(id)
			if !s.mergeable(id, v) {
				continue
			}
			p, err := s.seedPath(v)
			if err != nil {
				return err
			}
			if p.open() {
				path = p
			}
		}
		if path == nil {
			return nil
		}
		if err := s.mergePath(s.extendPath(path)); err != nil {
			return err
		}
	}
}

// extendPath grows the path at both ends through mergeable vertices.
func (s *Store) extendPath(path mergePath) mergePath {
	for {
		vid := path[0].start()
		v := s.getVert(vid)
		if !s.mergeable(vid, v) {
			break
		}
		next := v.Edges[0]
		if next.Edge == path[0].eid {
			next = v.Edges[1]
		}
		e := s.getEdge(next.Edge)
		if e == nil {
			break
		}
		path[0].vert = v
		grown := append(mergePath{{edg: e, eid: next.Edge, inv: !next.Right}}, path...)
		if !grown.open() {
			path[0].vert = nil
			break
		}
		path = grown
	}
	for {
		last := path[len(path)-1]
		vid := last.finish()
		v := s.getVert(vid)
		if !s.mergeable(vid, v) {
			break
		}
		next := v.Edges[0]
		if next.Edge == last.eid {
			next = v.Edges[1]
		}
		e := s.getEdge(next.Edge)
		if e == nil {
			break
		}
		grown := append(path, pathItem{edg: e, vert: v, eid: next.Edge, inv: next.Right})
		if !grown.open() {
			break
		}
		path = grown
	}
	return path
}

// mergePath replaces the edges of path and its interior vertices with one
// new edge.
func (s *Store) mergePath(path mergePath) error {
	first, last := path[0], path[len(path)-1]
	vid0, vid1 := first.start(), last.finish()
	vert0 := s.chgVert(vid0)
	if vert0 == nil {
		return internalf("merge: vertex %d not found", vid0)
	}
	vert1 := s.chgVert(vid1)
	if vert1 == nil {
		return internalf("merge: vertex %d not found", vid1)
	}
	path[0].vert = vert0

	merged := Edge{Left: vid0, Right: vid1}
	prev := vid0
	for i, it := range path {
		merged.Nodes = append(merged.Nodes, prev)
		merged.Points = append(merged.Points, it.vert.Attr.Canonical())
		n := len(it.edg.Points)
		if it.inv {
			for k := n - 2; k > 0; k-- {
				merged.Nodes = append(merged.Nodes, it.edg.Nodes[k])
				merged.Points = append(merged.Points, it.edg.Points[k].Canonical())
			}
			prev = it.edg.Nodes[0]
		} else {
			merged.Nodes = append(merged.Nodes, it.edg.Nodes[1:n-1]...)
			merged.Points = append(merged.Points, it.edg.Points[1:n-1]...)
			prev = it.edg.Nodes[n-1]
		}
		if !s.delEdge(it.eid) {
			return internalf("merge: edge %d not found", it.eid)
		}
		if i > 0 && !s.delVert(it.start()) {
			return internalf("merge: vertex %d not found", it.start())
		}
	}
	merged.Nodes = append(merged.Nodes, prev)
	merged.Points = append(merged.Points, vert1.Attr.Canonical())

	eid := s.addEdge(merged)
	if eid == 0 {
		return internalf("merge: edge id collision")
	}
	hit0, hit1 := 0, 0
	for k, a := range vert0.Edges {
		if a == (Adjacency{first.eid, first.inv}) {
			vert0.Edges[k] = Adjacency{eid, false}
			hit0++
		}
	}
	for k, a := range vert1.Edges {
		if a == (Adjacency{last.eid, !last.inv}) {
			vert1.Edges[k] = Adjacency{eid, true}
			hit1++
		}
	}
	if hit0 != 1 || hit1 != 1 {
		return internalf("merge: end vertices %d and %d do not own the path", vid0, vid1)
	}
	for i := 1; i+1 < len(merged.Nodes); i++ {
		if !s.chgNode(merged.Nodes[i], edgePosition(eid, i)) {
			return internalf("merge: node %d not found", merged.Nodes[i])
		}
	}
	return nil
}
