// Package delta defines the patch payloads applied to a skeleton store and
// their commit file encoding.
//
// # Payloads
//
// Every payload type implements [Delta]; [Kind] values are stable tags that
// appear in commit headers and must never be renumbered:
//
//   - [AddEdge]: a polyline whose ends attach to new terminals, existing
//     nodes, or segments of existing edges
//   - [AddProp], [ChgProp]: node properties in "key[=value]" form
//   - [AddPatch]: a bulk tree with parent back-references
//   - [DelPatch]: property removal and deletion of a run of nodes
//   - [Proofread], [ResetProofread]: coverage flag updates
//
// The legacy [ResetProofread0] is converted by [Upgrade] and never reaches a
// store.
//
// # Commit Files
//
// [Encode] writes a [CommitInfo] header and one payload. Integers are
// varints, strings are length prefixed, and sample coordinates are stored as
// differences from the previous sample. [Decode] validates the framing and
// upgrades legacy payloads.
//
// # Node Ids
//
// A commit reserves fresh node ids starting at CommitInfo.Nid0. [NodeCount]
// reports the size of that reservation.
package delta
