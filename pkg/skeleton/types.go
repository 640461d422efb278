package skeleton

import (
	"fmt"
	"slices"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
)

// Adjacency is one entry of a vertex's edge list. Right is set when the
// vertex is the right end of the edge.
type Adjacency struct {
	Edge  model.EdgeID `json:"edge"`
	Right bool         `json:"right"`
}

// Vertex is a branch point, a terminal or an isolated node. The fields
// after Edges are derived by the topology pass and are only meaningful on
// committed vertices.
type Vertex struct {
	Attr  model.Attr  `json:"attr"`
	Edges []Adjacency `json:"edges"`

	Root       model.NodeID `json:"root,omitempty"`
	ParentEdge model.EdgeID `json:"parent_edge,omitempty"`
	Loop       bool         `json:"loop,omitempty"`
	Raised     bool         `json:"raised,omitempty"`

	// Complete is maintained on root vertices only.
	Complete bool `json:"complete,omitempty"`
}

func (v *Vertex) clone() Vertex {
	c := *v
	c.Edges = slices.Clone(v.Edges)
	return c
}

// Edge is a polyline between two vertices. Nodes and Points run in
// parallel; the first and last entries are the end vertices.
type Edge struct {
	Left   model.NodeID   `json:"left"`
	Right  model.NodeID   `json:"right"`
	Nodes  []model.NodeID `json:"nodes"`
	Points []model.Attr   `json:"points"`

	Root         model.NodeID `json:"root,omitempty"`
	ParentVertex model.NodeID `json:"parent_vertex,omitempty"`
	Loop         bool         `json:"loop,omitempty"`
	Raised       bool         `json:"raised,omitempty"`
}

func (e *Edge) clone() Edge {
	c := *e
	c.Nodes = slices.Clone(e.Nodes)
	c.Points = slices.Clone(e.Points)
	return c
}

// span copies samples [i0, i1) into a new edge between left and right.
func (e *Edge) span(left, right model.NodeID, i0, i1 int) Edge {
	return Edge{
		Left:   left,
		Right:  right,
		Nodes:  slices.Clone(e.Nodes[i0:i1]),
		Points: slices.Clone(e.Points[i0:i1]),
	}
}

// end returns the vertex at the far side of e, seen from an adjacency
// entry with the given direction.
func (e *Edge) end(right bool) model.NodeID {
	if right {
		return e.Left
	}
	return e.Right
}

// Position locates a node: a sample of an edge, or a vertex.
type Position struct {
	Edge   model.EdgeID `json:"edge,omitempty"`
	Index  uint32       `json:"index,omitempty"`
	Vertex model.NodeID `json:"vertex,omitempty"`
}

func vertexPosition(id model.NodeID) Position { return Position{Vertex: id} }

func edgePosition(eid model.EdgeID, i int) Position {
	return Position{Edge: eid, Index: uint32(i) * model.PositionScale}
}

// IsZero reports whether p locates nothing.
func (p Position) IsZero() bool { return p.Edge == 0 && p.Vertex == 0 }

// Sample returns the index of the stored sample at or before p.
func (p Position) Sample() int { return int(p.Index / model.PositionScale) }

func (p Position) String() string {
	switch {
	case p.Edge != 0:
		return fmt.Sprintf("edge %d@%d", p.Edge, p.Index)
	case p.Vertex != 0:
		return fmt.Sprintf("vertex %d", p.Vertex)
	}
	return "none"
}

// RootMarker names a root vertex and the value of its root property.
type RootMarker struct {
	Node model.NodeID `json:"node"`
	Name string       `json:"name"`
}

// CommitResult reports what one commit changed, for cache invalidation.
type CommitResult struct {
	EdgesDeleted []model.EdgeID `json:"edges_deleted,omitempty"`
	TreesDeleted []model.NodeID `json:"trees_deleted,omitempty"`
	TreesAdded   []RootMarker   `json:"trees_added,omitempty"`
	TreesChanged []RootMarker   `json:"trees_changed,omitempty"`
	Nid0         model.NodeID   `json:"nid0,omitempty"`

	// Visible is set when the commit carried a filter or highlight update.
	Visible *VisibleDelta `json:"visible,omitempty"`
}

// VisibleDelta is a change of the visible sets. When Reset is set the
// previous sets were dropped and only the additions remain.
type VisibleDelta struct {
	Reset       bool           `json:"reset"`
	AddEdges    []model.EdgeID `json:"add_edges,omitempty"`
	DelEdges    []model.EdgeID `json:"del_edges,omitempty"`
	AddVertices []model.NodeID `json:"add_vertices,omitempty"`
	DelVertices []model.NodeID `json:"del_vertices,omitempty"`
	AddProps    []model.PropID `json:"add_props,omitempty"`
	DelProps    []model.PropID `json:"del_props,omitempty"`
}

// Visible is the committed visible subset.
type Visible struct {
	Edges    []model.EdgeID `json:"edges"`
	Vertices []model.NodeID `json:"vertices"`
	Props    []model.PropID `json:"props"`
}

// Stats counts the committed entities.
type Stats struct {
	Nodes    int `json:"nodes"`
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
	Props    int `json:"props"`
	Logs     int `json:"logs"`
	Roots    int `json:"roots"`
	Loops    int `json:"loop_edges"`
}

// RootInfo describes one rooted component.
type RootInfo struct {
	Node     model.NodeID `json:"node"`
	Name     string       `json:"name"`
	Complete bool         `json:"complete"`
}
