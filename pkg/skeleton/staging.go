package skeleton

import (
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// op tags a staged entry.
type op uint8

const (
	opAdd op = iota + 1 // absent from the store, proposed value
	opDel               // present in the store, proposed removal
	opChg               // present in the store, proposed replacement
)

func (o op) String() string {
	switch o {
	case opAdd:
		return "add"
	case opDel:
		return "del"
	case opChg:
		return "chg"
	}
	return "invalid"
}

type change[V any] struct {
	op  op
	val V
}

// overlay is the staging map for one committed key space. Entries are
// pointers so a staged value can be edited in place while other entries
// are inserted.
type overlay[K comparable, V any] map[K]*change[V]

// add stages a new entry. A staged removal turns into a replacement.
func (d overlay[K, V]) add(id K, v V, committed bool) bool {
	if c, ok := d[id]; ok {
		if c.op != opDel {
			return false
		}
		c.op, c.val = opChg, v
		return true
	}
	if committed {
		return false
	}
	d[id] = &change[V]{op: opAdd, val: v}
	return true
}

// del stages a removal. A staged addition is simply dropped.
func (d overlay[K, V]) del(id K, committed bool) bool {
	if c, ok := d[id]; ok {
		switch c.op {
		case opDel:
			return false
		case opAdd:
			delete(d, id)
		default:
			var zero V
			c.op, c.val = opDel, zero
		}
		return true
	}
	if !committed {
		return false
	}
	d[id] = &change[V]{op: opDel}
	return true
}

// chg stages a replacement of a present entry.
func (d overlay[K, V]) chg(id K, v V, committed bool) bool {
	if c, ok := d[id]; ok {
		if c.op == opDel {
			return false
		}
		c.val = v
		return true
	}
	if !committed {
		return false
	}
	d[id] = &change[V]{op: opChg, val: v}
	return true
}

func (d overlay[K, V]) clear() {
	for k := range d {
		delete(d, k)
	}
}

// Staged views. Every lookup consults the overlay first; a staged removal
// hides the committed entry.

func (s *Store) getPosition(id model.NodeID) Position {
	if c, ok := s.nodesD[id]; ok {
		if c.op == opDel {
			return Position{}
		}
		return c.val
	}
	return s.nodes[id]
}

func (s *Store) getVert(id model.NodeID) *Vertex {
	if c, ok := s.vertsD[id]; ok {
		if c.op == opDel {
			return nil
		}
		return &c.val
	}
	return s.verts[id]
}

func (s *Store) getEdge(id model.EdgeID) *Edge {
	if c, ok := s.edgesD[id]; ok {
		if c.op != opAdd {
			return nil
		}
		return &c.val
	}
	return s.edges[id]
}

func (s *Store) getProp(id model.PropID) (string, bool) {
	if c, ok := s.propsD[id]; ok {
		if c.op == opDel {
			return "", false
		}
		return c.val, true
	}
	return s.props.get(id)
}

func (s *Store) addNode(id model.NodeID, pos Position) bool {
	_, committed := s.nodes[id]
	return s.nodesD.add(id, pos, committed)
}

func (s *Store) delNode(id model.NodeID) bool {
	_, committed := s.nodes[id]
	return s.nodesD.del(id, committed)
}

func (s *Store) chgNode(id model.NodeID, pos Position) bool {
	_, committed := s.nodes[id]
	return s.nodesD.chg(id, pos, committed)
}

func (s *Store) addVert(id model.NodeID, v Vertex) bool {
	_, committed := s.verts[id]
	return s.vertsD.add(id, v, committed)
}

func (s *Store) delVert(id model.NodeID) bool {
	_, committed := s.verts[id]
	return s.vertsD.del(id, committed)
}

// chgVert returns a staged copy of the vertex that may be edited in place,
// or nil when the vertex does not exist.
func (s *Store) chgVert(id model.NodeID) *Vertex {
	if c, ok := s.vertsD[id]; ok {
		if c.op == opDel {
			return nil
		}
		return &c.val
	}
	v, ok := s.verts[id]
	if !ok {
		return nil
	}
	c := &change[Vertex]{op: opChg, val: v.clone()}
	s.vertsD[id] = c
	return &c.val
}

// addEdge stages e under a fresh id and returns it, or zero on collision.
func (s *Store) addEdge(e Edge) model.EdgeID {
	id := s.edgeIDs.alloc()
	if _, ok := s.edgesD[id]; ok {
		return 0
	}
	if _, ok := s.edges[id]; ok {
		return 0
	}
	s.edgesD[id] = &change[Edge]{op: opAdd, val: e}
	return id
}

// delEdge stages the removal of an edge and releases its id.
func (s *Store) delEdge(id model.EdgeID) bool {
	if c, ok := s.edgesD[id]; ok {
		if c.op == opDel {
			return false
		}
		delete(s.edgesD, id)
	} else {
		if _, ok := s.edges[id]; !ok {
			return false
		}
		s.edgesD[id] = &change[Edge]{op: opDel}
	}
	s.edgeIDs.release(id)
	return true
}

func (s *Store) addProp(id model.PropID, val string) bool {
	return s.propsD.add(id, val, s.props.has(id))
}

func (s *Store) delProp(id model.PropID) bool {
	return s.propsD.del(id, s.props.has(id))
}

func (s *Store) chgProp(id model.PropID, val string) bool {
	return s.propsD.chg(id, val, s.props.has(id))
}

func (s *Store) addLog(line string) {
	s.logsD = append(s.logsD, line)
}

// stagingEmpty reports whether nothing is staged, filter updates included.
func (s *Store) stagingEmpty() bool {
	return len(s.nodesD) == 0 && len(s.vertsD) == 0 && len(s.edgesD) == 0 &&
		len(s.propsD) == 0 && len(s.logsD) == 0 && s.filter.stat == filterIdle
}

// discard drops every staged change and returns edge ids allocated since
// the last commit.
func (s *Store) discard() {
	s.edgeIDs.rollback()
	s.nodesD.clear()
	s.vertsD.clear()
	s.edgesD.clear()
	s.propsD.clear()
	s.logsD = s.logsD[:0]
	s.nid0 = 0
	s.pending = 0
	s.nextStaged = 0
	s.rejected = nil
	s.filter.resetStaged()
}

// moveToBack swaps the entries equal to a to the end of adj and returns
// how many there were.
func moveToBack(adj []Adjacency, a Adjacency) int {
	end := len(adj)
	for i := len(adj) - 1; i >= 0; i-- {
		if adj[i] == a {
			end--
			adj[i], adj[end] = adj[end], adj[i]
		}
	}
	return len(adj) - end
}
