// Package io reads and writes skeleton snapshots.
//
// # JSON Snapshots
//
// A [skeleton.State] is stored as JSON with three arrays and a commit
// counter:
//
//	{
//	  "edges": [
//	    {"nodes": [9], "points": [{"pos": [81920, 0, 0], "misc": 512}]},
//	    {"nodes": [1, 2, 3], "points": [...]}
//	  ],
//	  "props": [{"node": 1, "prop": "root=cell"}],
//	  "logs": ["seeded"],
//	  "commits": 3
//	}
//
// A single-node edge is an isolated vertex. Points carry fixed point
// coordinates and packed misc bits exactly as a store holds them, so a
// snapshot written with [WriteJSON] and read with [ReadJSON] loads back
// into an identical store.
//
// # SWC Export
//
// [WriteSWC] writes the neuron file format used by tracing tools: one
// "id type x y z radius parent" line per node. Loop closures and
// properties have no SWC form and are written as comment lines that start
// with "#skelstore!".
//
// # Concurrency
//
// The functions here work on snapshots, which are plain values. Take the
// snapshot with a [skeleton.Reader] and release the lock before writing.
package io
