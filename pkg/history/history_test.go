package history

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddTail(t *testing.T) {
	tests := []struct {
		name    string
		ids     []uint32
		want    History
		wantErr bool
	}{
		{"in order", []uint32{1, 2, 3}, History{Base: 3}, false},
		{"gap", []uint32{1, 2, 5, 7}, History{Base: 2, Tail: []uint32{5, 7}}, false},
		{"duplicate in body", []uint32{1, 2, 2}, History{Base: 2}, true},
		{"below tip", []uint32{4, 3}, History{Tail: []uint32{4}}, true},
		{"gap filler after tail", []uint32{1, 3, 2}, History{Base: 1, Tail: []uint32{3}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h History
			var err error
			for _, id := range tt.ids {
				if err = h.AddTail(id); err != nil {
					break
				}
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddTail() error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, h); diff != "" {
				t.Errorf("History mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetBodyCount(t *testing.T) {
	h := History{Base: 2, Tail: []uint32{4, 5, 8}}
	if err := h.SetBodyCount(3); err != nil {
		t.Fatalf("SetBodyCount() error = %v", err)
	}
	want := History{Base: 5, Tail: []uint32{8}}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
	if got := h.TailTip(); got != 8 {
		t.Errorf("TailTip() = %d, want 8", got)
	}
	if got := h.Applied(); got != 6 {
		t.Errorf("Applied() = %d, want 6", got)
	}
	if err := h.SetBodyCount(5); err == nil {
		t.Error("SetBodyCount() with no growth error = nil, want error")
	}

	if err := h.SetBodyCount(10); err != nil {
		t.Fatalf("SetBodyCount() error = %v", err)
	}
	if diff := cmp.Diff(History{Base: 10, Tail: []uint32{}}, h); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestHas(t *testing.T) {
	h := History{Base: 3, Tail: []uint32{6, 9}}
	for id, want := range map[uint32]bool{0: false, 1: true, 3: true, 4: false, 6: true, 9: true, 10: false} {
		if got := h.Has(id); got != want {
			t.Errorf("Has(%d) = %v, want %v", id, got, want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	want := History{Base: 4, Tail: []uint32{7, 11}}
	var buf bytes.Buffer
	if err := want.Save(&buf); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	var got History
	if err := got.Load(&buf); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("History mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{`{"base": 1, "tail": [5, 3]}`, `{"base": 4, "tail": [5]}`, `{`} {
		if err := got.Load(strings.NewReader(bad)); err == nil {
			t.Errorf("Load(%s) error = nil, want error", bad)
		}
	}
}
