package skeleton

import (
	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// patchNode tracks one add_patch node while the patch is staged.
type patchNode struct {
	id      model.NodeID
	degree  int
	link    int // 1-based index into the patch links, or 0
	isRoot  bool
	hasVert bool
}

// loadAddPatch stages a tree given as nodes with parent back references.
// The first pass assigns ids, links and properties; the second walks the
// nodes back to front and emits one edge per unbranched parent chain.
func (s *Store) loadAddPatch(nid0 model.NodeID, d *delta.AddPatch) error {
	n := len(d.Nodes)
	if n == 0 {
		if len(d.Links) > 0 {
			return rejectf("add_patch links without nodes")
		}
		if len(d.Props) == 0 {
			return rejectf("empty add_patch")
		}
	}

	infos := make([]patchNode, 0, n)
	j, k := 0, 0
	for i := 0; i < n; i++ {
		par := int(d.Nodes[i].Parent)
		if par > i {
			return rejectf("node %d has forward parent %d", i+1, par)
		}
		var info patchNode
		if par != 0 {
			infos[par-1].degree++
			info.degree = 1
		}
		if j < len(d.Links) {
			l := d.Links[j]
			if int(l.Index) < i+1 {
				return rejectf("link %d out of order", j)
			}
			if int(l.Index) == i+1 {
				if l.Link.IsZero() {
					return rejectf("link %d is empty", j)
				}
				if !l.Link.IsCanonical() {
					return rejectf("link %v is not canonical", l.Link)
				}
				if l.Link.OnNode() {
					info.id = l.Link[0]
				}
				info.link = j + 1
				j++
			}
		}
		if info.id == 0 {
			info.id = nid0
			nid0++
		}

		for ; k < len(d.Props); k++ {
			p := d.Props[k]
			if int(p.Node) < i+1 {
				return rejectf("property %d out of order", k)
			}
			if int(p.Node) > i+1 {
				break
			}
			if k > 0 && d.Props[k-1].Node == p.Node && model.CompareTag(p.Prop, d.Props[k-1].Prop) <= 0 {
				return rejectf("property %q out of order", p.Prop)
			}
			if !model.ValidKeyVal(p.Prop) {
				return rejectf("invalid property %q", p.Prop)
			}
			key, val := model.SplitProp(p.Prop)
			if key == model.KeyRoot {
				info.isRoot = true
			}
			if !s.addProp(model.PropID{Node: info.id, Key: key}, val) {
				return rejectf("property %q already set on node %d", key, info.id)
			}
		}
		infos = append(infos, info)
	}
	if j < len(d.Links) {
		return rejectf("link %d does not name a node", j)
	}
	for ; k < len(d.Props); k++ {
		p := d.Props[k]
		if p.Node != delta.LogIndex {
			return rejectf("property %d does not name a node", k)
		}
		if !model.ValidKeyVal(p.Prop) {
			return rejectf("invalid log line %q", p.Prop)
		}
		s.addLog(p.Prop)
	}

	linkOf := func(idx int) model.Link {
		if l := infos[idx].link; l != 0 {
			return d.Links[l-1].Link
		}
		return model.Link{}
	}
	for i := n - 1; i >= 0; i-- {
		if infos[i].id == 0 {
			continue
		}
		if infos[i].degree == 0 {
			if err := s.isolatedPatchNode(infos[i], linkOf(i), d.Nodes[i].Attr); err != nil {
				return err
			}
			continue
		}
		par := int(d.Nodes[i].Parent)
		if par == 0 {
			if !infos[i].hasVert {
				return rejectf("patch node %d is not connected", i+1)
			}
			continue
		}

		nodes := []model.NodeID{infos[i].id}
		for {
			pi := &infos[par-1]
			if pi.degree != 2 || pi.link != 0 || pi.isRoot {
				break
			}
			ppar := int(d.Nodes[par-1].Parent)
			if ppar == 0 {
				break
			}
			nodes = append(nodes, pi.id)
			pi.id = 0
			par = ppar
		}
		nodes = append(nodes, infos[par-1].id)

		var verts [2]model.NodeID
		for e, idx := range [2]int{par - 1, i} {
			if infos[idx].hasVert {
				verts[e] = infos[idx].id
				continue
			}
			v, err := s.resolveVertex(linkOf(idx), infos[idx].id, d.Nodes[idx].Attr)
			if err != nil {
				return err
			}
			verts[e] = v
			infos[idx].hasVert = true
		}

		sz := len(nodes)
		points := make([]model.Attr, sz)
		idx := i
		for t := 0; t < sz; t++ {
			points[sz-t-1] = d.Nodes[idx].Attr
			if 2*t < sz {
				nodes[sz-t-1], nodes[t] = nodes[t], nodes[sz-t-1]
			}
			idx = int(d.Nodes[idx].Parent) - 1
		}
		if err := s.genEdgeMaybeLoop(verts[0], verts[1], points, nodes); err != nil {
			return err
		}
	}
	return nil
}

// isolatedPatchNode stages a patch node without edges.
func (s *Store) isolatedPatchNode(info patchNode, link model.Link, attr model.Attr) error {
	if info.link == 0 {
		return s.genVert(info.id, attr)
	}
	if !link.OnNode() {
		return rejectf("link %v between nodes is not supported", link)
	}
	if info.isRoot {
		_, err := s.vertexAt(link[0])
		return err
	}
	if s.getPosition(link[0]).IsZero() {
		return rejectf("node %d not found", link[0])
	}
	return nil
}
