package skeleton

import (
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/delta"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// view holds the read accessors shared by every scope. They only see the
// committed graph, never staged changes.
type view struct {
	s      *Store
	closed bool
}

// Vertex returns a copy of a committed vertex.
func (v *view) Vertex(id model.NodeID) (Vertex, bool) {
	vert, ok := v.s.verts[id]
	if !ok {
		return Vertex{}, false
	}
	return vert.clone(), true
}

// Edge returns a copy of a committed edge.
func (v *view) Edge(id model.EdgeID) (Edge, bool) {
	edg, ok := v.s.edges[id]
	if !ok {
		return Edge{}, false
	}
	return edg.clone(), true
}

// Position returns where a committed node lies.
func (v *view) Position(id model.NodeID) (Position, bool) {
	pos, ok := v.s.nodes[id]
	return pos, ok
}

// Attr returns the sample of a committed node.
func (v *view) Attr(id model.NodeID) (model.Attr, bool) {
	pos, ok := v.s.nodes[id]
	if !ok {
		return model.Attr{}, false
	}
	if pos.Edge != 0 {
		edg, ok := v.s.edges[pos.Edge]
		if !ok || pos.Sample() >= len(edg.Points) {
			return model.Attr{}, false
		}
		return edg.Points[pos.Sample()], true
	}
	vert, ok := v.s.verts[pos.Vertex]
	if !ok {
		return model.Attr{}, false
	}
	return vert.Attr, true
}

// Prop returns the value of a committed property.
func (v *view) Prop(id model.PropID) (string, bool) {
	return v.s.props.get(id)
}

// NodeProps returns the properties of one node as "key[=value]" strings,
// ordered by key.
func (v *view) NodeProps(id model.NodeID) []string {
	var out []string
	for pid, val := range v.s.props.vals {
		if pid.Node == id {
			out = append(out, model.JoinProp(pid.Key, val))
		}
	}
	slices.Sort(out)
	return out
}

// Logs returns the committed log lines.
func (v *view) Logs() []string { return slices.Clone(v.s.logs) }

// Commits returns the number of commits applied, snapshot included.
func (v *view) Commits() uint32 { return v.s.commits }

// NextNodeID returns the smallest node id above every committed node. A
// collaborator reserves ids for a new commit from here.
func (v *view) NextNodeID() model.NodeID { return v.s.nextNode }

// Raised reports whether any raise property exists.
func (v *view) Raised() bool { return v.s.raised }

// BBox returns the committed filter box.
func (v *view) BBox() BBox { return v.s.filter.bbox }

// Visible returns the committed visible sets, sorted.
func (v *view) Visible() Visible {
	f := &v.s.filter
	out := Visible{
		Edges:    make([]model.EdgeID, 0, f.edges.GetCardinality()),
		Vertices: make([]model.NodeID, 0, f.verts.GetCardinality()),
		Props:    make([]model.PropID, 0, len(f.props)),
	}
	f.edges.Iterate(func(x uint32) bool {
		out.Edges = append(out.Edges, model.EdgeID(x))
		return true
	})
	f.verts.Iterate(func(x uint32) bool {
		out.Vertices = append(out.Vertices, model.NodeID(x))
		return true
	})
	for id := range f.props {
		out.Props = append(out.Props, id)
	}
	slices.SortFunc(out.Props, comparePropID)
	return out
}

// VertexIDs returns the committed vertex ids in ascending order.
func (v *view) VertexIDs() []model.NodeID {
	out := make([]model.NodeID, 0, len(v.s.verts))
	for id := range v.s.verts {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// EdgeIDs returns the committed edge ids in ascending order.
func (v *view) EdgeIDs() []model.EdgeID {
	out := make([]model.EdgeID, 0, len(v.s.edges))
	for id := range v.s.edges {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Stats counts the committed entities.
func (v *view) Stats() Stats {
	st := Stats{
		Nodes:    len(v.s.nodes),
		Vertices: len(v.s.verts),
		Edges:    len(v.s.edges),
		Props:    v.s.props.len(),
		Logs:     len(v.s.logs),
		Roots:    v.s.props.count(model.KeyRoot),
	}
	for _, e := range v.s.edges {
		if e.Loop {
			st.Loops++
		}
	}
	return st
}

// Roots lists the root vertices in ascending order.
func (v *view) Roots() []RootInfo {
	nodes := v.s.props.nodes(model.KeyRoot)
	out := make([]RootInfo, 0, len(nodes))
	for _, n := range nodes {
		name, _ := v.s.props.get(model.PropID{Node: n, Key: model.KeyRoot})
		info := RootInfo{Node: n, Name: name}
		if vert, ok := v.s.verts[n]; ok {
			info.Complete = vert.Complete
		}
		out = append(out, info)
	}
	return out
}

// Reader observes the committed graph under a shared lock.
type Reader struct {
	view
}

// Reader acquires a shared lock. Close must be called to release it.
func (s *Store) Reader() *Reader {
	s.lock.RLock()
	return &Reader{view{s: s}}
}

// Close releases the lock. It is safe to call more than once.
func (r *Reader) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.s.lock.RUnlock()
}

// Loader stages patches and selections. It holds a shared lock, so readers
// keep running, and the staging lock, so only one Loader or Updater stages
// at a time. Staged changes survive Close until an Updater applies or
// discards them.
type Loader struct {
	view
	borrowed bool
}

// Loader acquires a shared lock and the staging lock.
func (s *Store) Loader() *Loader {
	s.lock.RLock()
	s.staging.Lock()
	return &Loader{view: view{s: s}}
}

// Close releases the locks. It is safe to call more than once.
func (l *Loader) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.borrowed {
		return
	}
	l.s.staging.Unlock()
	l.s.lock.RUnlock()
}

// Apply validates d against the staged graph and stages its changes. On
// error the staged batch is inconsistent: further patches and
// Updater.Apply are refused until the batch is discarded.
func (l *Loader) Apply(info delta.CommitInfo, d delta.Delta) error {
	if l.closed {
		return ErrScopeClosed
	}
	s := l.s
	if s.corrupt != nil {
		return ErrCorrupt
	}
	if s.rejected != nil {
		return rejectf("staged batch was rejected: %v", s.rejected)
	}
	if err := l.apply(info, d); err != nil {
		s.rejected = err
		return err
	}
	return nil
}

func (l *Loader) apply(info delta.CommitInfo, d delta.Delta) error {
	s := l.s
	if d == nil {
		return rejectf("empty patch")
	}
	d = delta.Upgrade(d)
	if delta.NodeCount(d) > 0 {
		if info.Nid0 == 0 {
			return rejectf("%s needs node ids but nid0 is 0", d.Kind())
		}
		if s.nid0 == 0 || info.Nid0 < s.nid0 {
			s.nid0 = info.Nid0
		}
	}
	if err := s.load(info.Nid0, d); err != nil {
		return err
	}
	s.pending++
	return nil
}

func (s *Store) load(nid0 model.NodeID, d delta.Delta) error {
	switch d := d.(type) {
	case *delta.AddEdge:
		return s.loadAddEdge(nid0, d)
	case *delta.AddProp:
		return s.loadAddProp(nid0, d)
	case *delta.ChgProp:
		return s.loadChgProp(d)
	case *delta.AddPatch:
		return s.loadAddPatch(nid0, d)
	case *delta.DelPatch:
		return s.loadDelPatch(d)
	case *delta.Proofread:
		return s.loadProofread(d)
	case *delta.ResetProofread:
		return s.loadResetProofread(d)
	}
	return rejectf("unsupported patch kind %v", d.Kind())
}

// Merge collapses chains of staged degree-2 vertices into single edges.
// Updater.Apply merges as well; calling Merge first lets a filter see the
// merged edges.
func (l *Loader) Merge() error {
	if l.closed {
		return ErrScopeClosed
	}
	return l.s.tryMerge()
}

// Updater commits or discards the staged batch under the exclusive lock.
type Updater struct {
	view
}

// Updater acquires the exclusive lock and the staging lock.
func (s *Store) Updater() *Updater {
	s.lock.Lock()
	s.staging.Lock()
	return &Updater{view{s: s}}
}

// borrow returns a Loader over the Updater's locks.
func (u *Updater) borrow() *Loader {
	return &Loader{view: view{s: u.s}, borrowed: true}
}

// Empty reports whether nothing is staged.
func (u *Updater) Empty() bool { return u.s.stagingEmpty() }

// ResetFilter stages a rebuild of the visible sets that leaves them empty.
func (u *Updater) ResetFilter() {
	u.s.filter.reset()
}

// Apply commits the staged batch. Staging is cleared whether or not it
// succeeds. A batch holding a rejected patch or snapshot is refused. An
// error during promotion leaves the store corrupt.
func (u *Updater) Apply() (CommitResult, error) {
	if u.closed {
		return CommitResult{}, ErrScopeClosed
	}
	s := u.s
	defer s.discard()
	if s.corrupt != nil {
		return CommitResult{}, ErrCorrupt
	}
	if s.rejected != nil {
		return CommitResult{}, rejectf("staged batch was rejected: %v", s.rejected)
	}
	if err := s.tryMerge(); err != nil {
		return CommitResult{}, err
	}
	res, err := s.promote()
	if err != nil {
		s.corrupt = err
		return CommitResult{}, err
	}
	return res, nil
}

// Close discards anything still staged and releases the locks.
func (u *Updater) Close() {
	if u.closed {
		return
	}
	u.closed = true
	u.s.discard()
	u.s.staging.Unlock()
	u.s.lock.Unlock()
}
