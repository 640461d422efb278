package history

import (
	"context"
	"errors"
)

// Sentinel errors for commit stores.
var (
	// ErrNotFound is returned when a commit does not exist.
	ErrNotFound = errors.New("commit not found")

	// ErrExists is returned when a commit id is stored twice.
	ErrExists = errors.New("commit already stored")
)

// Store persists encoded commit files by id. Stored commits are never
// replaced.
type Store interface {
	// Put stores the commit. It returns ErrExists if id is taken.
	Put(ctx context.Context, id uint32, data []byte) error

	// Get returns the commit, or ErrNotFound.
	Get(ctx context.Context, id uint32) ([]byte, error)

	// Range calls fn for each stored commit with from <= id < to, in
	// ascending id order, stopping at the first error. A zero to means no
	// upper bound.
	Range(ctx context.Context, from, to uint32, fn func(id uint32, data []byte) error) error

	// Count returns the number of stored commits.
	Count(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}

// Rebuild returns the history of the commits held by s.
func Rebuild(ctx context.Context, s Store) (*History, error) {
	h := &History{}
	err := s.Range(ctx, 1, 0, func(id uint32, _ []byte) error {
		return h.AddTail(id)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func inRange(id, from, to uint32) bool {
	return id >= from && (to == 0 || id < to)
}
