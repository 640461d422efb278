package delta

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

func TestKindValues(t *testing.T) {
	tests := []struct {
		kind Kind
		want uint16
		name string
	}{
		{KindAddEdge, 1025, "add_edge"},
		{KindAddProp, 1026, "add_prop"},
		{KindChgProp, 1027, "chg_prop"},
		{KindAddPatch, 1028, "add_patch"},
		{KindDelPatch, 1029, "del_patch"},
		{KindProofread, 1030, "proofread"},
		{KindResetProofread0, 1031, "reset_proofread_0"},
		{KindResetProofread, 1032, "reset_proofread"},
	}
	for _, tt := range tests {
		if uint16(tt.kind) != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, uint16(tt.kind), tt.want)
		}
		if tt.kind.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.kind.String(), tt.name)
		}
		if k, ok := ParseKind(tt.name); !ok || k != tt.kind {
			t.Errorf("ParseKind(%q) = %v, %v", tt.name, k, ok)
		}
		if New(tt.kind).Kind() != tt.kind {
			t.Errorf("New(%v).Kind() = %v", tt.kind, New(tt.kind).Kind())
		}
	}
	if KindInvalid.Valid() {
		t.Error("KindInvalid.Valid() = true, want false")
	}
	if New(KindInvalid) != nil {
		t.Error("New(KindInvalid) != nil")
	}
}

func TestNodeCount(t *testing.T) {
	tests := []struct {
		name string
		d    Delta
		want uint32
	}{
		{"edge", &AddEdge{Nodes: make([]model.Attr, 5)}, 5},
		{"prop new", &AddProp{}, 1},
		{"prop linked", &AddProp{Link: model.Link{7, 0}}, 0},
		{"patch", &AddPatch{
			Nodes: make([]PatchNode, 4),
			Links: []PatchLink{{Index: 1, Link: model.Link{3, 0}}, {Index: 4, Link: model.Link{9, 8}}},
		}, 3},
		{"del", &DelPatch{Nodes: []model.NodeID{1, 2}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeCount(tt.d); got != tt.want {
				t.Errorf("NodeCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAscendingRoundTrip(t *testing.T) {
	long := make([]uint32, 0, 300)
	for i := uint32(0); i < 200; i++ {
		long = append(long, 1000+i)
	}
	for i := uint32(0); i < 50; i++ {
		long = append(long, 5000+3*i)
	}

	tests := []struct {
		name string
		in   []uint32
	}{
		{"empty", nil},
		{"single", []uint32{42}},
		{"pair run", []uint32{4, 5}},
		{"sparse", []uint32{1, 5, 9, 20}},
		{"mixed", []uint32{1, 3, 4, 5, 6, 10, 12, 13, 40}},
		{"long", long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := EncodeAscending(tt.in)
			got, err := DecodeAscending(words)
			if err != nil {
				t.Fatalf("DecodeAscending() error = %v", err)
			}
			if diff := cmp.Diff(tt.in, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeAscendingGroups(t *testing.T) {
	got := EncodeAscending([]uint32{3, 4, 5, 9})
	want := []uint32{0x21, 3, 0, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EncodeAscending() mismatch (-want +got):\n%s", diff)
	}

	run := make([]uint32, 120)
	for i := range run {
		run[i] = uint32(i + 1)
	}
	words := EncodeAscending(run)
	if words[0] != 0x7f {
		t.Errorf("first run word = %#x, want 0x7f", words[0])
	}
}

func TestDecodeAscendingInvalid(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
	}{
		{"bad op", []uint32{0x80, 1}},
		{"truncated run", []uint32{0x21}},
		{"truncated group", []uint32{0x02, 1, 1}},
	}
	for _, tt := range tests {
		if _, err := DecodeAscending(tt.words); err == nil {
			t.Errorf("%s: DecodeAscending() error = nil, want error", tt.name)
		}
	}
}

func TestUpgrade(t *testing.T) {
	old := &ResetProofread0{
		Nodes: []model.NodeID{9, 2, 3, 4},
		Props: []NodeProp{{Node: 2, Prop: ".traced"}},
	}
	up, ok := Upgrade(old).(*ResetProofread)
	if !ok {
		t.Fatalf("Upgrade() = %T, want *ResetProofread", Upgrade(old))
	}
	ids, err := DecodeAscending(up.Nodes)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint32{2, 3, 4, 9}, ids); diff != "" {
		t.Errorf("upgraded nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(old.Props, up.Props); diff != "" {
		t.Errorf("upgraded props mismatch (-want +got):\n%s", diff)
	}

	p := &Proofread{}
	if Upgrade(p) != Delta(p) {
		t.Error("Upgrade() changed a current payload")
	}
}

func TestCodecRoundTrip(t *testing.T) {
	info := CommitInfo{ID: 12, Who: "alice", When: 1700000000000, Nid0: 100}
	deltas := []Delta{
		&AddEdge{
			Left:  model.Link{5, 0},
			Right: model.Link{9, 8},
			Nodes: []model.Attr{
				model.NewAttr(1, 2, 3, 0.5, 2),
				model.NewAttr(1.5, -2, 3, 0.5, 2),
				model.NewAttr(-100, 2, 3.25, 1, 0),
			},
		},
		&AddProp{Link: model.Link{3, 0}, Node: model.NewAttr(1, 1, 1, 0, 0), Prop: "root=axon"},
		&ChgProp{Node: 4, Prop: "state=end"},
		&AddPatch{
			Links: []PatchLink{{Index: 1, Link: model.Link{3, 0}}},
			Props: []NodeProp{{Node: 2, Prop: "state=end"}, {Node: LogIndex, Prop: "cube done"}},
			Nodes: []PatchNode{
				{Attr: model.NewAttr(0, 0, 0, 1, 0)},
				{Attr: model.NewAttr(1, 0, 0, 1, 0), Parent: 1},
			},
		},
		&DelPatch{Props: []NodeProp{{Node: 4, Prop: "error"}}, Nodes: []model.NodeID{4, 5, 6}},
		&Proofread{Nodes: []model.NodeID{1, 2, 3}},
		&ResetProofread{Nodes: EncodeAscending([]uint32{1, 2, 3, 7})},
	}
	for _, d := range deltas {
		t.Run(d.Kind().String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, info, d); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			gotInfo, got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			want := info
			want.Kind = d.Kind()
			if gotInfo != want {
				t.Errorf("Decode() info = %+v, want %+v", gotInfo, want)
			}
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("Decode() payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeUpgradesLegacy(t *testing.T) {
	data, err := Marshal(CommitInfo{ID: 1}, &ResetProofread0{Nodes: []model.NodeID{8, 7}})
	if err != nil {
		t.Fatal(err)
	}
	info, d, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if info.Kind != KindResetProofread {
		t.Errorf("Kind = %v, want %v", info.Kind, KindResetProofread)
	}
	if _, ok := d.(*ResetProofread); !ok {
		t.Errorf("payload = %T, want *ResetProofread", d)
	}
}

func TestDecodeErrors(t *testing.T) {
	good, err := Marshal(CommitInfo{ID: 1, Who: "bob"}, &ChgProp{Node: 1, Prop: "state=end"})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := Unmarshal([]byte("XXXX")); !errors.Is(err, ErrBadMagic) {
		t.Errorf("bad magic error = %v, want %v", err, ErrBadMagic)
	}
	if _, _, err := Unmarshal(good[:len(good)-3]); !errors.Is(err, ErrTruncated) {
		t.Errorf("truncated error = %v, want %v", err, ErrTruncated)
	}
	if _, _, err := Unmarshal(append(append([]byte{}, good...), 0)); err == nil {
		t.Error("trailing bytes error = nil, want error")
	}
	if err := Encode(&bytes.Buffer{}, CommitInfo{}, nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Encode(nil) error = %v, want %v", err, ErrUnknownKind)
	}
}

func TestStats(t *testing.T) {
	var s Stats
	s.Add(&AddEdge{Left: model.Link{1, 0}, Right: model.Link{}, Nodes: make([]model.Attr, 4)})
	s.Add(&AddProp{Prop: "root"})
	s.Add(&DelPatch{Nodes: []model.NodeID{1, 1, 2, 3}})
	s.Add(&Proofread{Nodes: []model.NodeID{1, 2}})

	if s.AddEdgeTermNode != 1 || s.AddEdgeTermVoid != 1 {
		t.Errorf("terminals = node %d void %d, want 1 1", s.AddEdgeTermNode, s.AddEdgeTermVoid)
	}
	if s.DelPatchTerms != 1 || s.DelPatchLinks != 2 {
		t.Errorf("del_patch = terms %d links %d, want 1 2", s.DelPatchTerms, s.DelPatchLinks)
	}
	want := 0.433*4 + 2.820 + 0.696*2 + 0.145*2
	if got := s.Score(); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}
