package history

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	for _, id := range []uint32{3, 1, 2, 5} {
		if err := s.Put(ctx, id, []byte{byte(id)}); err != nil {
			t.Fatalf("Put(%d) error = %v", id, err)
		}
	}
	if err := s.Put(ctx, 2, []byte("again")); !errors.Is(err, ErrExists) {
		t.Errorf("Put() duplicate error = %v, want %v", err, ErrExists)
	}

	data, err := s.Get(ctx, 3)
	if err != nil || !cmp.Equal(data, []byte{3}) {
		t.Errorf("Get(3) = %v, %v, want [3]", data, err)
	}
	if _, err := s.Get(ctx, 4); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(4) error = %v, want %v", err, ErrNotFound)
	}
	if n, err := s.Count(ctx); err != nil || n != 4 {
		t.Errorf("Count() = %d, %v, want 4", n, err)
	}

	var ids []uint32
	err = s.Range(ctx, 2, 5, func(id uint32, data []byte) error {
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if diff := cmp.Diff([]uint32{2, 3}, ids); diff != "" {
		t.Errorf("Range() ids mismatch (-want +got):\n%s", diff)
	}

	stop := errors.New("stop")
	calls := 0
	err = s.Range(ctx, 1, 0, func(uint32, []byte) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Range() = %v after %d calls, want stop after 1", err, calls)
	}

	h, err := Rebuild(ctx, s)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if diff := cmp.Diff(&History{Base: 3, Tail: []uint32{5}}, h); diff != "" {
		t.Errorf("Rebuild() mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	testStore(t, s)
}
