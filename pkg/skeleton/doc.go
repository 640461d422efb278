// Package skeleton provides a transactional, in-memory store for traced
// neuron skeletons.
//
// # Overview
//
// A skeleton is an undirected graph of vertices (branch points, terminals
// and isolated nodes) joined by edges. An edge is a polyline of samples;
// every sample is a node with an id, and a [Position] tells whether a node
// is a vertex or which sample of which edge it is. Properties are
// "key[=value]" strings attached to nodes.
//
// # Scopes
//
// All access goes through scopes that must be closed:
//
//   - [Store.Reader]: a shared lock over the committed graph
//   - [Store.Loader]: a shared lock plus the staging lock; patches and
//     selections are validated and staged, readers keep running
//   - [Store.Updater]: the exclusive lock plus the staging lock; commits or
//     discards the staged batch
//
// [Store.Commit] runs one patch through both phases:
//
//	s := skeleton.New()
//	res, err := s.Commit(ctx, delta.CommitInfo{ID: 1, Nid0: 1}, &delta.AddEdge{
//	    Nodes: []model.Attr{a, b, c},
//	})
//
// A rejected patch is reported as an error with code PATCH_REJECTED and
// nothing is committed. The lock prefers writers: once an Updater waits, new
// readers wait behind it.
//
// # Commit
//
// Applying a batch runs, in order:
//
//  1. merge: chains of degree-2 vertices without a root property collapse
//     into single edges; loops are never closed into one edge
//  2. promotion of nodes, vertices, edges, properties and logs
//  3. the visible sets are rebuilt or patched if a filter was staged
//  4. topology: the components holding changed roots get their root,
//     parent links, loop flags, completeness and raised flags recomputed
//
// A failure after promotion started leaves the store corrupt: [Store.Err]
// reports it and every later commit returns [ErrCorrupt].
//
// # Filters
//
// The visible sets select what a client displays. [Loader.Filter] stages a
// rebuild from a [BBox], [Loader.RefreshFilter] stages the change caused by
// the staged batch, and the Highlight methods stage selections along
// neurons and loops.
package skeleton
