package skeleton

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/observability"
)

var (
	// ErrCorrupt is returned by every write after a commit failed half way.
	// The committed graph can no longer be trusted.
	ErrCorrupt = errors.New("skeleton: store is corrupt")

	// ErrScopeClosed is returned when a scope is used after Close.
	ErrScopeClosed = errors.New("skeleton: scope closed")
)

// internalf builds an apply-time inconsistency error.
func internalf(format string, args ...any) error {
	return apperr.New(apperr.ErrCodeInternal, format, args...)
}

// Store is an in-memory skeleton graph. Readers observe the committed
// graph; a single Loader stages patches which an Updater then commits or
// discards. Use the scope constructors to access it.
type Store struct {
	lock    RWLock
	staging sync.Mutex

	nodes    map[model.NodeID]Position
	verts    map[model.NodeID]*Vertex
	edges    map[model.EdgeID]*Edge
	props    propTable
	logs     []string
	commits  uint32
	nextNode model.NodeID
	raised   bool

	// sameRoot links root vertices whose components touch. A root maps to
	// itself once it has been expanded.
	sameRoot map[model.NodeID][]model.NodeID

	corrupt error
	edgeIDs idPool

	nodesD overlay[model.NodeID, Position]
	vertsD overlay[model.NodeID, Vertex]
	edgesD overlay[model.EdgeID, Edge]
	propsD overlay[model.PropID, string]
	logsD  []string
	nid0   model.NodeID

	// pending counts the commits carried by the staged batch.
	pending uint32

	// nextStaged is the node counter carried by a staged snapshot.
	nextStaged model.NodeID

	// rejected is set when a patch of the staged batch failed.
	rejected error

	filter filterState
}

// New returns an empty store.
func New() *Store {
	return &Store{
		nodes:    make(map[model.NodeID]Position),
		verts:    make(map[model.NodeID]*Vertex),
		edges:    make(map[model.EdgeID]*Edge),
		props:    newPropTable(),
		nextNode: 1,
		sameRoot: make(map[model.NodeID][]model.NodeID),
		nodesD:   make(overlay[model.NodeID, Position]),
		vertsD:   make(overlay[model.NodeID, Vertex]),
		edgesD:   make(overlay[model.EdgeID, Edge]),
		propsD:   make(overlay[model.PropID, string]),
		filter:   newFilterState(),
	}
}

// Err returns the error that made the store corrupt, or nil.
func (s *Store) Err() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.corrupt
}

// Commit applies one patch and commits it under a single write lock. A
// rejected patch leaves the store unchanged and is reported as a
// *errors.CommitError wrapping the rejection.
func (s *Store) Commit(ctx context.Context, info delta.CommitInfo, d delta.Delta) (CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return CommitResult{}, err
	}
	hooks := observability.Commit()
	kind := "invalid"
	if d != nil {
		kind = d.Kind().String()
	}

	u := s.Updater()
	defer u.Close()
	start := time.Now()
	l := u.borrow()
	if err := l.Apply(info, d); err != nil {
		hooks.OnReject(ctx, kind, err)
		return CommitResult{}, &apperr.CommitError{Commit: info.ID, Err: err}
	}
	hooks.OnPrepare(ctx, kind, time.Since(start))

	start = time.Now()
	res, err := u.Apply()
	hooks.OnCommit(ctx, info.ID, time.Since(start), err)
	if err != nil {
		return CommitResult{}, &apperr.CommitError{Commit: info.ID, Err: err}
	}
	return res, nil
}

// Select stages a selection built by fn and commits it. fn typically calls
// Filter, RefreshFilter or one of the Highlight methods of the Loader it
// is given; the Loader is only valid during the call.
func (s *Store) Select(ctx context.Context, name string, fn func(*Loader) error) (CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return CommitResult{}, err
	}
	u := s.Updater()
	defer u.Close()
	l := u.borrow()
	err := fn(l)
	l.Close()
	if err != nil {
		return CommitResult{}, err
	}
	res, err := u.Apply()
	if err != nil {
		return CommitResult{}, err
	}
	n := 0
	if res.Visible != nil {
		n = len(res.Visible.AddEdges) + len(res.Visible.AddVertices)
	}
	observability.Commit().OnFilter(ctx, name, n)
	return res, nil
}
