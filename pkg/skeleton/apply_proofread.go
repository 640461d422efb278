package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// coverageWalker resolves a node sequence into edge samples and vertices.
// Consecutive nodes along one edge are followed without position lookups;
// reaching an edge end yields the end vertex.
type coverageWalker struct {
	s       *Store
	edg     *Edge
	eid     model.EdgeID
	idxPrev int
	vids    map[model.NodeID]struct{}
	samples []edgeSample
}

type edgeSample struct {
	eid  model.EdgeID
	idx  int
	last bool // the right end, whatever the edge's length
}

func newCoverageWalker(s *Store) *coverageWalker {
	return &coverageWalker{s: s, vids: make(map[model.NodeID]struct{})}
}

func (w *coverageWalker) visit(id model.NodeID) error {
	if id == 0 {
		return rejectf("node id 0 is reserved")
	}
	if w.eid != 0 {
		var vid model.NodeID
		switch {
		case w.idxPrev > 0 && w.edg.Nodes[w.idxPrev-1] == id:
			w.idxPrev--
			if w.idxPrev == 0 {
				vid = w.edg.Left
			}
		case w.idxPrev+1 < len(w.edg.Nodes) && w.edg.Nodes[w.idxPrev+1] == id:
			w.idxPrev++
			if w.idxPrev == len(w.edg.Nodes)-1 {
				vid = w.edg.Right
			}
		default:
			w.eid = 0
		}
		if vid != 0 {
			w.eid = 0
			w.vids[vid] = struct{}{}
			return nil
		}
		if w.eid != 0 {
			w.samples = append(w.samples, edgeSample{eid: w.eid, idx: w.idxPrev})
			return nil
		}
	}

	pos := w.s.getPosition(id)
	if pos.Edge != 0 {
		edg := w.s.getEdge(pos.Edge)
		if edg == nil {
			return rejectf("edge %d not found", pos.Edge)
		}
		w.eid, w.edg, w.idxPrev = pos.Edge, edg, pos.Sample()
		w.samples = append(w.samples, edgeSample{eid: w.eid, idx: w.idxPrev})
		return nil
	}
	if pos.Vertex == 0 {
		return rejectf("node %d not found", id)
	}
	w.vids[pos.Vertex] = struct{}{}
	return nil
}

// apply sets the coverage flag of every visited vertex and sample. The end
// samples of a visited vertex's edges are included.
func (w *coverageWalker) apply(covered bool) error {
	s := w.s
	vids := make([]model.NodeID, 0, len(w.vids))
	for v := range w.vids {
		vids = append(vids, v)
	}
	slices.Sort(vids)
	for _, vid := range vids {
		vert := s.chgVert(vid)
		if vert == nil {
			return rejectf("vertex %d not found", vid)
		}
		vert.Attr.Misc = vert.Attr.Misc.WithCoverage(covered)
		for _, a := range vert.Edges {
			w.samples = append(w.samples, edgeSample{eid: a.Edge, last: a.Right})
		}
	}

	edgs := make(map[model.EdgeID]*Edge)
	for _, p := range w.samples {
		edg, ok := edgs[p.eid]
		if !ok {
			var err error
			if edg, err = s.chgEdge(p.eid); err != nil {
				return err
			}
			edgs[p.eid] = edg
		}
		idx := p.idx
		if p.last {
			idx = len(edg.Points) - 1
		}
		edg.Points[idx].Misc = edg.Points[idx].Misc.WithCoverage(covered)
	}
	return nil
}

// loadProofread marks nodes as proofread.
func (s *Store) loadProofread(d *delta.Proofread) error {
	w := newCoverageWalker(s)
	for _, id := range d.Nodes {
		if err := w.visit(id); err != nil {
			return err
		}
	}
	return w.apply(true)
}

// loadResetProofread deletes properties, then clears the proofread flag on
// nodes given in ascending encoding.
func (s *Store) loadResetProofread(d *delta.ResetProofread) error {
	if err := s.delProps(d.Props); err != nil {
		return err
	}
	if len(d.Nodes) == 0 {
		return nil
	}
	ids, err := delta.DecodeAscending(d.Nodes)
	if err != nil {
		return rejectf("reset_proofread: %v", err)
	}
	w := newCoverageWalker(s)
	for _, id := range ids {
		if err := w.visit(model.NodeID(id)); err != nil {
			return err
		}
	}
	return w.apply(false)
}
