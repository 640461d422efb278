package skeleton

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

func TestOverlay(t *testing.T) {
	tests := []struct {
		name string
		run  func(d overlay[int, string]) bool
		want map[int]change[string]
	}{
		{
			name: "add new",
			run:  func(d overlay[int, string]) bool { return d.add(1, "a", false) },
			want: map[int]change[string]{1: {opAdd, "a"}},
		},
		{
			name: "add committed",
			run:  func(d overlay[int, string]) bool { return !d.add(1, "a", true) },
			want: map[int]change[string]{},
		},
		{
			name: "del staged add",
			run: func(d overlay[int, string]) bool {
				return d.add(1, "a", false) && d.del(1, false)
			},
			want: map[int]change[string]{},
		},
		{
			name: "del then add",
			run: func(d overlay[int, string]) bool {
				return d.del(1, true) && d.add(1, "b", true)
			},
			want: map[int]change[string]{1: {opChg, "b"}},
		},
		{
			name: "del twice",
			run: func(d overlay[int, string]) bool {
				return d.del(1, true) && !d.del(1, true)
			},
			want: map[int]change[string]{1: {op: opDel}},
		},
		{
			name: "chg staged add",
			run: func(d overlay[int, string]) bool {
				return d.add(1, "a", false) && d.chg(1, "c", false)
			},
			want: map[int]change[string]{1: {opAdd, "c"}},
		},
		{
			name: "chg missing",
			run:  func(d overlay[int, string]) bool { return !d.chg(1, "c", false) },
			want: map[int]change[string]{},
		},
		{
			name: "chg deleted",
			run: func(d overlay[int, string]) bool {
				return d.del(1, true) && !d.chg(1, "c", true)
			},
			want: map[int]change[string]{1: {op: opDel}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := make(overlay[int, string])
			if !tt.run(d) {
				t.Fatal("unexpected overlay result")
			}
			got := make(map[int]change[string], len(d))
			for k, c := range d {
				got[k] = *c
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(change[string]{})); diff != "" {
				t.Errorf("overlay mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveToBack(t *testing.T) {
	a := Adjacency{Edge: 1}
	b := Adjacency{Edge: 2}
	c := Adjacency{Edge: 3, Right: true}

	adj := []Adjacency{a, b, c}
	if n := moveToBack(adj, a); n != 1 {
		t.Errorf("moveToBack() = %d, want 1", n)
	}
	if diff := cmp.Diff([]Adjacency{c, b, a}, adj); diff != "" {
		t.Errorf("moveToBack() order mismatch (-want +got):\n%s", diff)
	}

	adj = []Adjacency{a, b, a}
	if n := moveToBack(adj, a); n != 2 {
		t.Errorf("moveToBack() = %d, want 2", n)
	}
	if adj[1] != a || adj[2] != a {
		t.Errorf("moveToBack() = %v, want both matches at the end", adj)
	}
	if n := moveToBack(nil, a); n != 0 {
		t.Errorf("moveToBack(nil) = %d, want 0", n)
	}
}

func TestIDPool(t *testing.T) {
	var p idPool
	if id := p.alloc(); id != 1 {
		t.Fatalf("alloc() = %d, want 1", id)
	}
	p.alloc()
	p.commit()

	p.release(1)
	if id := p.alloc(); id != 3 {
		t.Errorf("alloc() after release = %d, want 3", id)
	}
	p.commit()
	if id := p.alloc(); id != 1 {
		t.Errorf("alloc() after commit = %d, want 1", id)
	}

	p.rollback()
	if id := p.alloc(); id != 1 {
		t.Errorf("alloc() after rollback = %d, want 1", id)
	}
	p.alloc()
	p.rollback()
	if got := []model.EdgeID{p.alloc(), p.alloc()}; !cmp.Equal(got, []model.EdgeID{1, 4}) {
		t.Errorf("alloc() after rollback = %v, want [1 4]", got)
	}
}
