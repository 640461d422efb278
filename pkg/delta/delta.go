package delta

import (
	"fmt"
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// Kind is the stable tag written in every commit header.
type Kind uint16

const KindInvalid Kind = 0

const (
	KindAddEdge Kind = iota + 1025
	KindAddProp
	KindChgProp
	KindAddPatch
	KindDelPatch
	KindProofread
	KindResetProofread0
	KindResetProofread
)

var kindNames = map[Kind]string{
	KindAddEdge:         "add_edge",
	KindAddProp:         "add_prop",
	KindChgProp:         "chg_prop",
	KindAddPatch:        "add_patch",
	KindDelPatch:        "del_patch",
	KindProofread:       "proofread",
	KindResetProofread0: "reset_proofread_0",
	KindResetProofread:  "reset_proofread",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint16(k))
}

// Valid reports whether k names a known patch kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Delta is one patch payload. The concrete types are the structs in this
// package; a type switch over them selects the applier.
type Delta interface {
	Kind() Kind
}

// CommitInfo is the header preceding every payload in a commit file.
type CommitInfo struct {
	ID   uint32       `json:"id"`
	Who  string       `json:"who"`
	When uint64       `json:"when"`
	Nid0 model.NodeID `json:"nid0"`
	Kind Kind         `json:"kind"`
}

// NodeProp is a "key[=value]" string bound to a node id. In add_patch the
// node is a 1-based index into the patch's node list.
type NodeProp struct {
	Node model.NodeID `json:"node"`
	Prop string       `json:"prop"`
}

// AddEdge appends a polyline. Each end is either zero (new terminal), a node
// link (attach) or a segment link (split the edge there).
type AddEdge struct {
	Left  model.Link   `json:"left"`
	Right model.Link   `json:"right"`
	Nodes []model.Attr `json:"nodes"`
}

// AddProp attaches a property to a linked node, or to a new isolated node
// when Link is zero.
type AddProp struct {
	Link model.Link `json:"link"`
	Node model.Attr `json:"node"`
	Prop string     `json:"prop"`
}

// ChgProp replaces the value of an existing property.
type ChgProp struct {
	Node model.NodeID `json:"node"`
	Prop string       `json:"prop"`
}

// PatchLink attaches the patch node at 1-based Index to an existing location.
type PatchLink struct {
	Index uint32     `json:"index"`
	Link  model.Link `json:"link"`
}

// PatchNode is one new node of an add_patch. Parent is the 1-based index of
// an earlier node, or zero.
type PatchNode struct {
	Attr   model.Attr `json:"attr"`
	Parent uint32     `json:"parent"`
}

// LogIndex marks a trailing add_patch prop as a free-text log line.
const LogIndex = model.NodeID(^uint32(0))

// AddPatch is the bulk tree import.
type AddPatch struct {
	Links []PatchLink `json:"links"`
	Props []NodeProp  `json:"props"`
	Nodes []PatchNode `json:"nodes"`
}

// DelPatch removes properties and a run of nodes.
type DelPatch struct {
	Props []NodeProp     `json:"props"`
	Nodes []model.NodeID `json:"nodes"`
}

// Proofread sets the coverage flag on nodes. A vertex id stands for the
// vertex and the adjacent end samples of its edges.
type Proofread struct {
	Nodes []model.NodeID `json:"nodes"`
}

// ResetProofread0 is the legacy reset with a plain node list.
type ResetProofread0 struct {
	Nodes []model.NodeID `json:"nodes"`
	Props []NodeProp     `json:"props"`
}

// ResetProofread clears coverage on nodes given in the ascending run-length
// encoding of [EncodeAscending] and deletes props.
type ResetProofread struct {
	Nodes []uint32   `json:"nodes"`
	Props []NodeProp `json:"props"`
}

func (*AddEdge) Kind() Kind         { return KindAddEdge }
func (*AddProp) Kind() Kind         { return KindAddProp }
func (*ChgProp) Kind() Kind         { return KindChgProp }
func (*AddPatch) Kind() Kind        { return KindAddPatch }
func (*DelPatch) Kind() Kind        { return KindDelPatch }
func (*Proofread) Kind() Kind       { return KindProofread }
func (*ResetProofread0) Kind() Kind { return KindResetProofread0 }
func (*ResetProofread) Kind() Kind  { return KindResetProofread }

// New returns an empty payload of kind k, or nil for unknown kinds.
func New(k Kind) Delta {
	switch k {
	case KindAddEdge:
		return &AddEdge{}
	case KindAddProp:
		return &AddProp{}
	case KindChgProp:
		return &ChgProp{}
	case KindAddPatch:
		return &AddPatch{}
	case KindDelPatch:
		return &DelPatch{}
	case KindProofread:
		return &Proofread{}
	case KindResetProofread0:
		return &ResetProofread0{}
	case KindResetProofread:
		return &ResetProofread{}
	}
	return nil
}

// NodeCount reports how many fresh node ids applying d may consume starting
// at CommitInfo.Nid0.
func NodeCount(d Delta) uint32 {
	switch d := d.(type) {
	case *AddEdge:
		return uint32(len(d.Nodes))
	case *AddProp:
		if d.Link.IsZero() {
			return 1
		}
	case *AddPatch:
		n := uint32(len(d.Nodes))
		for _, l := range d.Links {
			if !l.Link.IsZero() && l.Link.OnNode() {
				n--
			}
		}
		return n
	}
	return 0
}

// Upgrade converts a legacy reset_proofread_0 into reset_proofread. Other
// payloads are returned unchanged.
func Upgrade(d Delta) Delta {
	old, ok := d.(*ResetProofread0)
	if !ok {
		return d
	}
	ids := make([]uint32, len(old.Nodes))
	for i, n := range old.Nodes {
		ids[i] = uint32(n)
	}
	slices.Sort(ids)
	return &ResetProofread{
		Nodes: EncodeAscending(ids),
		Props: old.Props,
	}
}
