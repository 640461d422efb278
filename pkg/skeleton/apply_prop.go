package skeleton

import (
	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// loadAddProp attaches a property. A zero link creates a new isolated
// vertex at nid0; a root property turns the linked node into a vertex.
// Links to a point between two nodes are not supported.
func (s *Store) loadAddProp(nid0 model.NodeID, d *delta.AddProp) error {
	if !d.Link.IsCanonical() {
		return rejectf("link %v is not canonical", d.Link)
	}
	if !model.ValidKeyVal(d.Prop) {
		return rejectf("invalid property %q", d.Prop)
	}
	key, val := model.SplitProp(d.Prop)

	var nid model.NodeID
	switch {
	case d.Link.IsZero():
		if err := s.genVert(nid0, d.Node); err != nil {
			return err
		}
		nid = nid0
	case !d.Link.OnNode():
		return rejectf("add_prop on link %v between nodes is not supported", d.Link)
	case key == model.KeyRoot:
		v, err := s.vertexAt(d.Link[0])
		if err != nil {
			return err
		}
		nid = v
	default:
		nid = d.Link[0]
		if s.getPosition(nid).IsZero() {
			return rejectf("node %d not found", nid)
		}
	}

	if !s.addProp(model.PropID{Node: nid, Key: key}, val) {
		return rejectf("property %q already set on node %d", key, nid)
	}
	return nil
}

// loadChgProp replaces the value of an existing property.
func (s *Store) loadChgProp(d *delta.ChgProp) error {
	if d.Node == 0 {
		return rejectf("chg_prop needs a node")
	}
	if !model.ValidKeyVal(d.Prop) {
		return rejectf("invalid property %q", d.Prop)
	}
	key, val := model.SplitProp(d.Prop)
	if !s.chgProp(model.PropID{Node: d.Node, Key: key}, val) {
		return rejectf("property %q not set on node %d", key, d.Node)
	}
	return nil
}

// delProps removes properties listed in ascending (node, key) order.
func (s *Store) delProps(props []delta.NodeProp) error {
	for i, p := range props {
		if i == 0 {
			if p.Node == 0 {
				return rejectf("property on node 0")
			}
		} else {
			prev := props[i-1]
			if p.Node < prev.Node {
				return rejectf("properties not sorted at %d", i)
			}
			if p.Node == prev.Node && model.CompareTag(p.Prop, prev.Prop) <= 0 {
				return rejectf("properties not sorted at %d", i)
			}
		}
		if !model.ValidKeyVal(p.Prop) {
			return rejectf("invalid property %q", p.Prop)
		}
		if !s.delProp(model.PropID{Node: p.Node, Key: p.Prop}) {
			return rejectf("property %q not set on node %d", p.Prop, p.Node)
		}
	}
	return nil
}
