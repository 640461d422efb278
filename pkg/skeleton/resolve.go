package skeleton

import (
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// rejectf builds a patch rejection.
func rejectf(format string, args ...any) error {
	return apperr.New(apperr.ErrCodePatchRejected, format, args...)
}

// genVert stages a new isolated vertex.
func (s *Store) genVert(id model.NodeID, attr model.Attr) error {
	if id == 0 {
		return rejectf("node id 0 is reserved")
	}
	if !s.addNode(id, vertexPosition(id)) {
		return rejectf("node %d already exists", id)
	}
	if !s.addVert(id, Vertex{Attr: attr}) {
		return rejectf("vertex %d already exists", id)
	}
	return nil
}

// resolveVertex returns the vertex for an endpoint link: a new vertex nid
// for a zero link, the linked vertex, or a vertex made by splitting the
// edge the linked node lies on.
func (s *Store) resolveVertex(link model.Link, nid model.NodeID, attr model.Attr) (model.NodeID, error) {
	if link.IsZero() {
		if err := s.genVert(nid, attr); err != nil {
			return 0, err
		}
		return nid, nil
	}
	if !link.OnNode() {
		return 0, rejectf("link %v does not name a node", link)
	}
	return s.vertexAt(link[0])
}

// vertexAt makes sure node id is a vertex, splitting its edge if needed.
func (s *Store) vertexAt(id model.NodeID) (model.NodeID, error) {
	pos := s.getPosition(id)
	switch {
	case pos.Edge != 0:
		return s.splitEdge(pos.Edge, pos.Sample())
	case pos.Vertex != 0:
		return pos.Vertex, nil
	}
	return 0, rejectf("node %d not found", id)
}

// splitEdge turns sample idx of edge eid into a vertex joining two new
// edges, and returns the new vertex.
func (s *Store) splitEdge(eid model.EdgeID, idx int) (model.NodeID, error) {
	edg := s.getEdge(eid)
	if edg == nil {
		return 0, rejectf("edge %d not found", eid)
	}
	if idx <= 0 || idx+1 >= len(edg.Nodes) {
		return 0, rejectf("edge %d cannot be split at sample %d", eid, idx)
	}
	vid0, vid1 := edg.Left, edg.Right
	vert0 := s.chgVert(vid0)
	if vert0 == nil {
		return 0, rejectf("vertex %d not found", vid0)
	}
	vert1 := s.chgVert(vid1)
	if vert1 == nil {
		return 0, rejectf("vertex %d not found", vid1)
	}
	vid := edg.Nodes[idx]

	eid0 := s.addEdge(edg.span(vid0, vid, 0, idx+1))
	if eid0 == 0 {
		return 0, rejectf("edge id collision")
	}
	eid1 := s.addEdge(edg.span(vid, vid1, idx, len(edg.Nodes)))
	if eid1 == 0 {
		return 0, rejectf("edge id collision")
	}
	vert := Vertex{
		Attr:  edg.Points[idx],
		Edges: []Adjacency{{eid0, true}, {eid1, false}},
	}
	if !s.addVert(vid, vert) {
		return 0, rejectf("vertex %d already exists", vid)
	}

	if moveToBack(vert0.Edges, Adjacency{eid, false}) != 1 {
		return 0, rejectf("vertex %d does not own edge %d", vid0, eid)
	}
	vert0.Edges[len(vert0.Edges)-1].Edge = eid0
	if moveToBack(vert1.Edges, Adjacency{eid, true}) != 1 {
		return 0, rejectf("vertex %d does not own edge %d", vid1, eid)
	}
	vert1.Edges[len(vert1.Edges)-1].Edge = eid1

	nodes := edg.Nodes
	for i := 1; i < idx; i++ {
		if !s.chgNode(nodes[i], edgePosition(eid0, i)) {
			return 0, rejectf("node %d not found", nodes[i])
		}
	}
	if !s.chgNode(vid, vertexPosition(vid)) {
		return 0, rejectf("node %d not found", vid)
	}
	for i := idx + 1; i+1 < len(nodes); i++ {
		if !s.chgNode(nodes[i], edgePosition(eid1, i-idx)) {
			return 0, rejectf("node %d not found", nodes[i])
		}
	}
	if !s.delEdge(eid) {
		return 0, rejectf("edge %d not found", eid)
	}
	return vid, nil
}

// removeSubedge deletes the samples strictly between idx0 and idx1 of an
// edge. The samples at idx0 and idx1 become terminal vertices unless they
// are the edge's own ends.
func (s *Store) removeSubedge(eid model.EdgeID, idx0, idx1 int) error {
	edg := s.getEdge(eid)
	if edg == nil {
		return rejectf("edge %d not found", eid)
	}
	if idx0 >= idx1 || idx1 >= len(edg.Nodes) {
		return rejectf("invalid range [%d, %d] on edge %d", idx0, idx1, eid)
	}
	vid0, vid1 := edg.Left, edg.Right
	vert0 := s.chgVert(vid0)
	if vert0 == nil {
		return rejectf("vertex %d not found", vid0)
	}
	vert1 := s.chgVert(vid1)
	if vert1 == nil {
		return rejectf("vertex %d not found", vid1)
	}

	var vida, vidb model.NodeID
	var eid0, eid1 model.EdgeID
	if idx0 > 0 {
		vida = edg.Nodes[idx0]
		eid0 = s.addEdge(edg.span(vid0, vida, 0, idx0+1))
		if eid0 == 0 {
			return rejectf("edge id collision")
		}
		if !s.addVert(vida, Vertex{Attr: edg.Points[idx0], Edges: []Adjacency{{eid0, true}}}) {
			return rejectf("vertex %d already exists", vida)
		}
	}
	if idx1+1 < len(edg.Nodes) {
		vidb = edg.Nodes[idx1]
		eid1 = s.addEdge(edg.span(vidb, vid1, idx1, len(edg.Nodes)))
		if eid1 == 0 {
			return rejectf("edge id collision")
		}
		if !s.addVert(vidb, Vertex{Attr: edg.Points[idx1], Edges: []Adjacency{{eid1, false}}}) {
			return rejectf("vertex %d already exists", vidb)
		}
	}

	if moveToBack(vert0.Edges, Adjacency{eid, false}) != 1 {
		return rejectf("vertex %d does not own edge %d", vid0, eid)
	}
	if vida != 0 {
		vert0.Edges[len(vert0.Edges)-1].Edge = eid0
	} else {
		vert0.Edges = vert0.Edges[:len(vert0.Edges)-1]
	}
	if moveToBack(vert1.Edges, Adjacency{eid, true}) != 1 {
		return rejectf("vertex %d does not own edge %d", vid1, eid)
	}
	if vidb != 0 {
		vert1.Edges[len(vert1.Edges)-1].Edge = eid1
	} else {
		vert1.Edges = vert1.Edges[:len(vert1.Edges)-1]
	}

	nodes := edg.Nodes
	for i := 1; i < idx0; i++ {
		if !s.chgNode(nodes[i], edgePosition(eid0, i)) {
			return rejectf("node %d not found", nodes[i])
		}
	}
	if vida != 0 && !s.chgNode(vida, vertexPosition(vida)) {
		return rejectf("node %d not found", vida)
	}
	for i := idx0 + 1; i < idx1; i++ {
		if !s.delNode(nodes[i]) {
			return rejectf("node %d not found", nodes[i])
		}
	}
	if vidb != 0 && !s.chgNode(vidb, vertexPosition(vidb)) {
		return rejectf("node %d not found", vidb)
	}
	for i := idx1 + 1; i+1 < len(nodes); i++ {
		if !s.chgNode(nodes[i], edgePosition(eid1, i-idx1)) {
			return rejectf("node %d not found", nodes[i])
		}
	}
	if !s.delEdge(eid) {
		return rejectf("edge %d not found", eid)
	}
	return nil
}

// genEdge stages a new edge between two distinct existing vertices. The
// end samples are replaced by the vertex attributes; the right one keeps
// only its canonical misc bits.
func (s *Store) genEdge(vid0, vid1 model.NodeID, points []model.Attr, nodes []model.NodeID) error {
	if vid0 == vid1 {
		return rejectf("edge would start and end at vertex %d", vid0)
	}
	if len(points) < 2 || len(points) != len(nodes) {
		return rejectf("edge needs at least 2 samples")
	}
	vert0 := s.chgVert(vid0)
	if vert0 == nil {
		return rejectf("vertex %d not found", vid0)
	}
	vert1 := s.chgVert(vid1)
	if vert1 == nil {
		return rejectf("vertex %d not found", vid1)
	}
	n := len(nodes)
	points[0] = vert0.Attr
	nodes[0] = vid0
	points[n-1] = vert1.Attr.Canonical()
	nodes[n-1] = vid1

	eid := s.addEdge(Edge{Left: vid0, Right: vid1, Nodes: nodes, Points: points})
	if eid == 0 {
		return rejectf("edge id collision")
	}
	vert0.Edges = append(vert0.Edges, Adjacency{eid, false})
	vert1.Edges = append(vert1.Edges, Adjacency{eid, true})

	for i := 1; i < n-1; i++ {
		if !s.addNode(nodes[i], edgePosition(eid, i)) {
			return rejectf("node %d already exists", nodes[i])
		}
	}
	return nil
}

// genEdgeFrom builds an edge whose interior nodes take consecutive ids
// after nid0.
func (s *Store) genEdgeFrom(vid0, vid1 model.NodeID, samples []model.Attr, nid0 model.NodeID) error {
	n := len(samples)
	points := make([]model.Attr, n)
	nodes := make([]model.NodeID, n)
	copy(points, samples)
	for i := 1; i < n-1; i++ {
		nodes[i] = nid0 + model.NodeID(i)
	}
	return s.genEdgeMaybeLoop(vid0, vid1, points, nodes)
}

// genEdgeMaybeLoop is genEdge that breaks up closed loops: a two sample
// loop is dropped, and longer ones get an extra vertex so that no edge
// starts and ends at the same vertex.
func (s *Store) genEdgeMaybeLoop(vid0, vid1 model.NodeID, points []model.Attr, nodes []model.NodeID) error {
	if vid0 != vid1 {
		return s.genEdge(vid0, vid1, points, nodes)
	}
	switch n := len(nodes); {
	case n < 2:
		return rejectf("edge needs at least 2 samples")
	case n == 2:
		return nil
	case n == 3:
		n1 := nodes[1]
		if err := s.genVert(n1, points[1]); err != nil {
			return err
		}
		return s.genEdge(vid0, n1, points[:2], nodes[:2])
	default:
		k := n - 2
		n1 := nodes[k]
		if err := s.genVert(n1, points[k]); err != nil {
			return err
		}
		tail := []model.Attr{points[k], points[k+1]}
		if err := s.genEdge(n1, vid1, tail, []model.NodeID{n1, vid1}); err != nil {
			return err
		}
		return s.genEdge(vid0, n1, points[:n-1], nodes[:n-1])
	}
}

// chgEdge returns a staged edge that may be edited in place. A committed
// edge is copied under a fresh id and the original is deleted.
func (s *Store) chgEdge(id model.EdgeID) (*Edge, error) {
	if c, ok := s.edgesD[id]; ok {
		if c.op != opAdd {
			return nil, rejectf("edge %d is deleted", id)
		}
		return &c.val, nil
	}
	edg, ok := s.edges[id]
	if !ok {
		return nil, rejectf("edge %d not found", id)
	}
	vid0, vid1 := edg.Left, edg.Right
	vert0 := s.chgVert(vid0)
	if vert0 == nil {
		return nil, rejectf("vertex %d not found", vid0)
	}
	vert1 := s.chgVert(vid1)
	if vert1 == nil {
		return nil, rejectf("vertex %d not found", vid1)
	}
	eid1 := s.addEdge(edg.span(vid0, vid1, 0, len(edg.Nodes)))
	if eid1 == 0 {
		return nil, rejectf("edge id collision")
	}
	if moveToBack(vert0.Edges, Adjacency{id, false}) != 1 {
		return nil, rejectf("vertex %d does not own edge %d", vid0, id)
	}
	vert0.Edges[len(vert0.Edges)-1].Edge = eid1
	if moveToBack(vert1.Edges, Adjacency{id, true}) != 1 {
		return nil, rejectf("vertex %d does not own edge %d", vid1, id)
	}
	vert1.Edges[len(vert1.Edges)-1].Edge = eid1
	for i := 1; i+1 < len(edg.Nodes); i++ {
		if !s.chgNode(edg.Nodes[i], edgePosition(eid1, i)) {
			return nil, rejectf("node %d not found", edg.Nodes[i])
		}
	}
	if !s.delEdge(id) {
		return nil, rejectf("edge %d not found", id)
	}
	return &s.edgesD[eid1].val, nil
}
