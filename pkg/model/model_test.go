package model

import "testing"

func TestLinkCanonical(t *testing.T) {
	tests := []struct {
		in, want Link
	}{
		{Link{0, 0}, Link{0, 0}},
		{Link{5, 0}, Link{5, 0}},
		{Link{3, 7}, Link{7, 3}},
		{Link{7, 3}, Link{7, 3}},
		{Link{4, 4}, Link{4, 0}},
	}
	for _, tt := range tests {
		if got := tt.in.Canonical(); got != tt.want {
			t.Errorf("%v.Canonical() = %v, want %v", tt.in, got, tt.want)
		}
		if got := tt.in.IsCanonical(); got != (tt.in == tt.want) {
			t.Errorf("%v.IsCanonical() = %v, want %v", tt.in, got, tt.in == tt.want)
		}
	}
}

func TestLinkPredicates(t *testing.T) {
	if !(Link{}).IsZero() {
		t.Error("Link{}.IsZero() = false, want true")
	}
	if (Link{9, 0}).IsZero() {
		t.Error("Link{9,0}.IsZero() = true, want false")
	}
	if !(Link{9, 0}).OnNode() {
		t.Error("Link{9,0}.OnNode() = false, want true")
	}
	if (Link{9, 8}).OnNode() {
		t.Error("Link{9,8}.OnNode() = true, want false")
	}
	if got := (Link{9, 8}).String(); got != "9-8" {
		t.Errorf("String() = %q, want %q", got, "9-8")
	}
}

func TestMiscFields(t *testing.T) {
	m := NewMisc(1.5, 3)
	if got := m.Type(); got != 3 {
		t.Errorf("Type() = %d, want 3", got)
	}
	if got := m.Radius(); got != 1.5 {
		t.Errorf("Radius() = %v, want 1.5", got)
	}
	if m.Coverage() {
		t.Error("Coverage() = true, want false")
	}

	c := m.WithCoverage(true)
	if !c.Coverage() {
		t.Error("WithCoverage(true).Coverage() = false, want true")
	}
	if c.Type() != 3 || c.Radius() != 1.5 {
		t.Errorf("WithCoverage changed other fields: type %d radius %v", c.Type(), c.Radius())
	}
	if c.WithCoverage(false) != m {
		t.Errorf("WithCoverage(false) = %#x, want %#x", uint32(c.WithCoverage(false)), uint32(m))
	}
}

func TestMiscTypeSaturates(t *testing.T) {
	for _, typ := range []int{31, 32, 1000, -1} {
		if got := NewMisc(0, typ).Type(); got != 31 {
			t.Errorf("NewMisc(0, %d).Type() = %d, want 31", typ, got)
		}
	}
}

func TestMiscRadius(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-3, 0},
		{1, 1},
		{0.25, 0.25},
		{2, 2},
		{3.25, 3.25},
		{100, 100},
		{1e9, 16646144},
	}
	for _, tt := range tests {
		if got := NewMisc(tt.in, 0).Radius(); got != tt.want {
			t.Errorf("NewMisc(%v).Radius() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMiscCanonical(t *testing.T) {
	m := NewMisc(2, 4).WithCoverage(true) | Misc(1)<<20
	got := m.Canonical()
	if uint32(got)>>17 != 0 {
		t.Errorf("Canonical() kept extension bits: %#x", uint32(got))
	}
	if got.Type() != 4 || got.Radius() != 2 || !got.Coverage() {
		t.Errorf("Canonical() = %#x, lost node bits", uint32(got))
	}
}

func TestCoordRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 12.5, 1000.125, -0.0009765625} {
		if got := DecodeCoord(EncodeCoord(v)); got != v {
			t.Errorf("DecodeCoord(EncodeCoord(%v)) = %v", v, got)
		}
	}
	a := NewAttr(1, 2, 3, 0.5, 2)
	if a.Coord(1) != 2 {
		t.Errorf("Coord(1) = %v, want 2", a.Coord(1))
	}
}

func TestSplitJoinProp(t *testing.T) {
	tests := []struct {
		s, key, val string
	}{
		{"root", "root", ""},
		{"root=axon", "root", "axon"},
		{"state=end=x", "state", "end=x"},
	}
	for _, tt := range tests {
		k, v := SplitProp(tt.s)
		if k != tt.key || v != tt.val {
			t.Errorf("SplitProp(%q) = %q, %q; want %q, %q", tt.s, k, v, tt.key, tt.val)
		}
		if got := JoinProp(k, v); got != tt.s {
			t.Errorf("JoinProp(%q, %q) = %q, want %q", k, v, got, tt.s)
		}
	}
}

func TestValidKeyVal(t *testing.T) {
	tests := map[string]bool{
		"":       false,
		"=x":     false,
		"root":   true,
		"a=":     true,
		".trace": true,
	}
	for s, want := range tests {
		if got := ValidKeyVal(s); got != want {
			t.Errorf("ValidKeyVal(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestCompareTag(t *testing.T) {
	tests := []struct {
		a, b string
		sign int
	}{
		{"root", "root=x", 0},
		{"root=a", "root=b", 0},
		{"error", "root", -1},
		{"state", "raise", 1},
		{"a", "a!", 1},
		{"a", "ab", -1},
	}
	for _, tt := range tests {
		got := CompareTag(tt.a, tt.b)
		if sign(got) != tt.sign {
			t.Errorf("CompareTag(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.sign)
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
