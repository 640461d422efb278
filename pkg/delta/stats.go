package delta

// Stats accumulates per-kind counters over a sequence of payloads.
type Stats struct {
	AddEdge         int `json:"add_edge"`
	AddEdgeNodes    int `json:"add_edge_nodes"`
	AddEdgeTermVoid int `json:"add_edge_term_void"`
	AddEdgeTermNode int `json:"add_edge_term_node"`
	AddEdgeTermLink int `json:"add_edge_term_link"`
	AddProp         int `json:"add_prop"`
	ChgProp         int `json:"chg_prop"`
	AddPatch        int `json:"add_patch"`
	DelPatch        int `json:"del_patch"`
	DelPatchProps   int `json:"del_patch_props"`
	DelPatchTerms   int `json:"del_patch_terms"`
	DelPatchLinks   int `json:"del_patch_links"`
	Proofread       int `json:"proofread"`
	ProofreadNodes  int `json:"proofread_nodes"`
	ResetProofread  int `json:"reset_proofread"`
}

// Add counts d.
func (s *Stats) Add(d Delta) {
	switch d := d.(type) {
	case *AddEdge:
		s.AddEdge++
		s.AddEdgeNodes += len(d.Nodes)
		for _, l := range []struct{ zero, node bool }{
			{d.Left.IsZero(), d.Left.OnNode()},
			{d.Right.IsZero(), d.Right.OnNode()},
		} {
			switch {
			case l.zero:
				s.AddEdgeTermVoid++
			case l.node:
				s.AddEdgeTermNode++
			default:
				s.AddEdgeTermLink++
			}
		}
	case *AddProp:
		s.AddProp++
	case *ChgProp:
		s.ChgProp++
	case *AddPatch:
		s.AddPatch++
	case *DelPatch:
		s.DelPatch++
		s.DelPatchProps += len(d.Props)
		n := len(d.Nodes)
		switch n {
		case 0:
		case 1:
			s.DelPatchTerms++
		case 2:
			s.DelPatchLinks++
		default:
			if d.Nodes[n-1] == d.Nodes[n-2] {
				s.DelPatchTerms++
				n--
			}
			if d.Nodes[0] == d.Nodes[1] {
				s.DelPatchTerms++
				n--
			}
			s.DelPatchLinks += n - 1
		}
	case *Proofread:
		s.Proofread++
		s.ProofreadNodes += len(d.Nodes)
	case *ResetProofread, *ResetProofread0:
		s.ResetProofread++
	}
}

// Score weighs the counters into a single effort estimate.
func (s *Stats) Score() float64 {
	return 0.433*float64(s.AddEdgeNodes) +
		2.820*float64(s.AddProp) +
		0.696*float64(s.DelPatchLinks) +
		0.145*float64(s.ProofreadNodes)
}
