package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// indexedKeys are the property keys with a per-key node index.
var indexedKeys = []string{model.KeyRoot, model.KeyRaise, model.KeyState, model.KeyError, model.KeyTraced}

// propTable holds committed properties with a node index for the reserved
// keys, so the topology pass can find roots without a full scan.
type propTable struct {
	vals  map[model.PropID]string
	byKey map[string]map[model.NodeID]struct{}
}

func newPropTable() propTable {
	t := propTable{
		vals:  make(map[model.PropID]string),
		byKey: make(map[string]map[model.NodeID]struct{}, len(indexedKeys)),
	}
	for _, k := range indexedKeys {
		t.byKey[k] = make(map[model.NodeID]struct{})
	}
	return t
}

func (t *propTable) len() int { return len(t.vals) }

func (t *propTable) get(id model.PropID) (string, bool) {
	v, ok := t.vals[id]
	return v, ok
}

func (t *propTable) has(id model.PropID) bool {
	_, ok := t.vals[id]
	return ok
}

// insert adds a new property; it reports false if id already exists.
func (t *propTable) insert(id model.PropID, val string) bool {
	if _, ok := t.vals[id]; ok {
		return false
	}
	t.vals[id] = val
	if idx, ok := t.byKey[id.Key]; ok {
		idx[id.Node] = struct{}{}
	}
	return true
}

// update replaces the value of an existing property.
func (t *propTable) update(id model.PropID, val string) bool {
	if _, ok := t.vals[id]; !ok {
		return false
	}
	t.vals[id] = val
	return true
}

func (t *propTable) remove(id model.PropID) bool {
	if _, ok := t.vals[id]; !ok {
		return false
	}
	delete(t.vals, id)
	if idx, ok := t.byKey[id.Key]; ok {
		delete(idx, id.Node)
	}
	return true
}

// nodes returns the sorted nodes carrying an indexed key.
func (t *propTable) nodes(key string) []model.NodeID {
	idx := t.byKey[key]
	out := make([]model.NodeID, 0, len(idx))
	for n := range idx {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func (t *propTable) count(key string) int { return len(t.byKey[key]) }

// sorted returns all property ids ordered by node, then key.
func (t *propTable) sorted() []model.PropID {
	out := make([]model.PropID, 0, len(t.vals))
	for id := range t.vals {
		out = append(out, id)
	}
	slices.SortFunc(out, comparePropID)
	return out
}

func comparePropID(a, b model.PropID) int {
	if a.Node != b.Node {
		if a.Node < b.Node {
			return -1
		}
		return 1
	}
	switch {
	case a.Key < b.Key:
		return -1
	case a.Key > b.Key:
		return 1
	}
	return 0
}
