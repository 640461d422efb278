package skeleton

import (
	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// loadAddEdge resolves both endpoints, then stages the polyline between
// them. A new left terminal takes nid0; interior nodes and a new right
// terminal take the following ids.
func (s *Store) loadAddEdge(nid0 model.NodeID, d *delta.AddEdge) error {
	nodes := d.Nodes
	if len(nodes) < 2 {
		return rejectf("add_edge needs at least 2 nodes, got %d", len(nodes))
	}
	if !d.Left.IsCanonical() {
		return rejectf("left link %v is not canonical", d.Left)
	}
	if !d.Right.IsCanonical() {
		return rejectf("right link %v is not canonical", d.Right)
	}

	left, err := s.resolveVertex(d.Left, nid0, nodes[0])
	if err != nil {
		return err
	}
	if left != nid0 {
		nid0--
	}
	last := len(nodes) - 1
	right, err := s.resolveVertex(d.Right, nid0+model.NodeID(last), nodes[last])
	if err != nil {
		return err
	}
	return s.genEdgeFrom(left, right, nodes, nid0)
}
