package skeleton

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// BBox is an axis aligned box in physical coordinates: the minimum corner
// followed by the maximum corner. A box whose minimum exceeds its maximum
// on any axis is empty.
type BBox [6]float64

// EmptyBBox is the initial filter box. It selects nothing.
var EmptyBBox = BBox{0, 0, 0, -1, 0, 0}

// Empty reports whether b selects nothing.
func (b BBox) Empty() bool {
	for i := 0; i < 3; i++ {
		if b[i] > b[3+i] {
			return true
		}
	}
	return false
}

func (b BBox) String() string {
	return fmt.Sprintf("[%g,%g,%g]-[%g,%g,%g]", b[0], b[1], b[2], b[3], b[4], b[5])
}

// ParseBBox parses six comma separated numbers: x0,y0,z0,x1,y1,z1.
func ParseBBox(s string) (BBox, error) {
	var b BBox
	parts := strings.Split(s, ",")
	if len(parts) != len(b) {
		return BBox{}, apperr.New(apperr.ErrCodeInvalidBBox, "bbox %q needs 6 values", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BBox{}, apperr.Wrap(apperr.ErrCodeInvalidBBox, err, "bbox %q", s)
		}
		b[i] = v
	}
	return b, nil
}

// box is a BBox in fixed point, so tests compare encoded positions exactly.
type box struct {
	lo, hi [3]int32
}

func (b BBox) fixed() box {
	var out box
	for i := 0; i < 3; i++ {
		out.lo[i] = model.EncodeCoord(b[i])
		out.hi[i] = model.EncodeCoord(b[3+i])
	}
	return out
}

func (b box) contains(a model.Attr) bool {
	for i := 0; i < 3; i++ {
		if a.Pos[i] < b.lo[i] || a.Pos[i] > b.hi[i] {
			return false
		}
	}
	return true
}

type filterStat uint8

const (
	filterIdle  filterStat = iota // nothing staged
	filterFull                    // rebuild: committed sets are replaced
	filterDelta                   // incremental: committed sets are patched
)

// filterState holds the committed visible sets and the staged change to
// them. Staged maps hold true for an addition and false for a removal.
type filterState struct {
	bbox  BBox
	edges *roaring.Bitmap
	verts *roaring.Bitmap
	props map[model.PropID]struct{}

	stat   filterStat
	bboxD  BBox
	edgesD map[model.EdgeID]bool
	vertsD map[model.NodeID]bool
	propsD map[model.PropID]bool
}

func newFilterState() filterState {
	return filterState{
		bbox:   EmptyBBox,
		bboxD:  EmptyBBox,
		edges:  roaring.New(),
		verts:  roaring.New(),
		props:  make(map[model.PropID]struct{}),
		edgesD: make(map[model.EdgeID]bool),
		vertsD: make(map[model.NodeID]bool),
		propsD: make(map[model.PropID]bool),
	}
}

// resetStaged drops the staged change.
func (f *filterState) resetStaged() {
	f.stat = filterIdle
	f.bboxD = f.bbox
	clear(f.edgesD)
	clear(f.vertsD)
	clear(f.propsD)
}

// reset stages a rebuild that empties the visible sets.
func (f *filterState) reset() {
	f.resetStaged()
	f.stat = filterFull
}

// tracked reports whether a commit deleting an entity must also drop it
// from the visible sets. A rebuild replaces the sets anyway and a staged
// delta already accounts for the entities it names.
func (f *filterState) tracked(staged bool) bool {
	switch f.stat {
	case filterIdle:
		return true
	case filterDelta:
		return !staged
	}
	return false
}

func (f *filterState) forgetEdge(id model.EdgeID) {
	if _, staged := f.edgesD[id]; f.tracked(staged) {
		f.edges.Remove(uint32(id))
	}
}

func (f *filterState) forgetVertex(id model.NodeID) {
	if _, staged := f.vertsD[id]; f.tracked(staged) {
		f.verts.Remove(uint32(id))
	}
}

func (f *filterState) forgetProp(id model.PropID) {
	if _, staged := f.propsD[id]; f.tracked(staged) {
		delete(f.props, id)
	}
}

// promote folds the staged change into the visible sets.
func (f *filterState) promote() (*VisibleDelta, error) {
	if f.stat == filterIdle {
		return nil, nil
	}
	res := &VisibleDelta{Reset: f.stat == filterFull}
	if f.stat == filterFull {
		f.edges.Clear()
		f.verts.Clear()
		clear(f.props)
	}
	f.bbox = f.bboxD

	for _, id := range sortedKeys(f.edgesD) {
		if f.edgesD[id] {
			if !f.edges.CheckedAdd(uint32(id)) {
				return nil, internalf("filter: edge %d already visible", id)
			}
			res.AddEdges = append(res.AddEdges, id)
		} else {
			if !f.edges.CheckedRemove(uint32(id)) {
				return nil, internalf("filter: edge %d not visible", id)
			}
			res.DelEdges = append(res.DelEdges, id)
		}
	}
	for _, id := range sortedKeys(f.vertsD) {
		if f.vertsD[id] {
			if !f.verts.CheckedAdd(uint32(id)) {
				return nil, internalf("filter: vertex %d already visible", id)
			}
			res.AddVertices = append(res.AddVertices, id)
		} else {
			if !f.verts.CheckedRemove(uint32(id)) {
				return nil, internalf("filter: vertex %d not visible", id)
			}
			res.DelVertices = append(res.DelVertices, id)
		}
	}
	ids := make([]model.PropID, 0, len(f.propsD))
	for id := range f.propsD {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, comparePropID)
	for _, id := range ids {
		_, visible := f.props[id]
		if f.propsD[id] {
			if visible {
				return nil, internalf("filter: property %v already visible", id)
			}
			f.props[id] = struct{}{}
			res.AddProps = append(res.AddProps, id)
		} else {
			if !visible {
				return nil, internalf("filter: property %v not visible", id)
			}
			delete(f.props, id)
			res.DelProps = append(res.DelProps, id)
		}
	}
	return res, nil
}

func sortedKeys[K ~uint32, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// propAttr returns the staged sample a property is attached to.
func (s *Store) propAttr(node model.NodeID) (model.Attr, bool) {
	pos := s.getPosition(node)
	switch {
	case pos.Edge != 0:
		edg := s.getEdge(pos.Edge)
		if edg == nil || pos.Sample() >= len(edg.Points) {
			return model.Attr{}, false
		}
		return edg.Points[pos.Sample()], true
	case pos.Vertex != 0:
		v := s.getVert(pos.Vertex)
		if v == nil {
			return model.Attr{}, false
		}
		return v.Attr, true
	}
	return model.Attr{}, false
}

func (s *Store) edgeInBox(b box, e *Edge) bool {
	for _, p := range e.Points {
		if b.contains(p) {
			return true
		}
	}
	return false
}

func (s *Store) propInBox(b box, id model.PropID) bool {
	a, ok := s.propAttr(id.Node)
	return ok && b.contains(a)
}

// Filter stages a rebuild of the visible sets: every edge with a sample
// in bbox, every vertex in bbox and every property on a node in bbox,
// as they will be once the staged batch is committed.
func (l *Loader) Filter(bbox BBox) error {
	if l.closed {
		return ErrScopeClosed
	}
	s := l.s
	if err := s.tryMerge(); err != nil {
		return err
	}
	f := &s.filter
	f.resetStaged()
	f.stat = filterFull
	f.bboxD = bbox
	if bbox.Empty() {
		return nil
	}
	b := bbox.fixed()

	for id, e := range s.edges {
		if _, staged := s.edgesD[id]; !staged && s.edgeInBox(b, e) {
			f.edgesD[id] = true
		}
	}
	for id, c := range s.edgesD {
		_, committed := s.edges[id]
		switch c.op {
		case opAdd:
			if committed {
				return internalf("filter: staged edge %d already committed", id)
			}
			if s.edgeInBox(b, &c.val) {
				f.edgesD[id] = true
			}
		case opDel:
			if !committed {
				return internalf("filter: deleted edge %d not committed", id)
			}
		}
	}

	for id, v := range s.verts {
		if _, staged := s.vertsD[id]; !staged && b.contains(v.Attr) {
			f.vertsD[id] = true
		}
	}
	for id, c := range s.vertsD {
		_, committed := s.verts[id]
		switch c.op {
		case opAdd, opChg:
			if (c.op == opAdd) == committed {
				return internalf("filter: staged vertex %d out of sync", id)
			}
			if b.contains(c.val.Attr) {
				f.vertsD[id] = true
			}
		case opDel:
			if !committed {
				return internalf("filter: deleted vertex %d not committed", id)
			}
		}
	}

	for id := range s.props.vals {
		if _, staged := s.propsD[id]; !staged && s.propInBox(b, id) {
			f.propsD[id] = true
		}
	}
	for id, c := range s.propsD {
		committed := s.props.has(id)
		switch c.op {
		case opAdd, opChg:
			if (c.op == opAdd) == committed {
				return internalf("filter: staged property %v out of sync", id)
			}
			if s.propInBox(b, id) {
				f.propsD[id] = true
			}
		case opDel:
			if !committed {
				return internalf("filter: deleted property %v not committed", id)
			}
		}
	}
	return nil
}

// RefreshFilter stages the change of the visible sets caused by the staged
// batch, keeping the committed box.
func (l *Loader) RefreshFilter() error {
	if l.closed {
		return ErrScopeClosed
	}
	s := l.s
	if err := s.tryMerge(); err != nil {
		return err
	}
	f := &s.filter
	f.resetStaged()
	f.stat = filterDelta
	if f.bbox.Empty() {
		return nil
	}
	b := f.bbox.fixed()

	for id, c := range s.edgesD {
		switch c.op {
		case opAdd:
			if s.edgeInBox(b, &c.val) {
				f.edgesD[id] = true
			}
		case opDel:
			if f.edges.Contains(uint32(id)) {
				f.edgesD[id] = false
			}
		}
	}
	for id, c := range s.vertsD {
		visible := f.verts.Contains(uint32(id))
		switch c.op {
		case opAdd:
			if b.contains(c.val.Attr) {
				f.vertsD[id] = true
			}
		case opDel:
			if visible {
				f.vertsD[id] = false
			}
		case opChg:
			switch in := b.contains(c.val.Attr); {
			case in && !visible:
				f.vertsD[id] = true
			case !in && visible:
				f.vertsD[id] = false
			}
		}
	}
	for id, c := range s.propsD {
		_, visible := f.props[id]
		switch c.op {
		case opAdd:
			if s.propInBox(b, id) {
				f.propsD[id] = true
			}
		case opDel:
			if visible {
				f.propsD[id] = false
			}
		case opChg:
			switch in := s.propInBox(b, id); {
			case in && !visible:
				f.propsD[id] = true
			case !in && visible:
				f.propsD[id] = false
			}
		}
	}
	return nil
}
