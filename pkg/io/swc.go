package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// swcTag prefixes extension lines: "<tag><id>/<id2>" records an extra
// connection that closes a loop, "<tag><id>@key=val" a property.
const swcTag = "#skelstore!"

// WriteSWC writes a snapshot as an SWC neuron file.
//
// Components are written starting at their root nodes, in ascending node
// order; nodes of unrooted components are written starting at their
// smallest id. Every node names an already written neighbor as its parent.
// Connections that would need a second parent are written as loop lines,
// and properties follow the nodes.
func WriteSWC(st skeleton.State, w io.Writer) error {
	attrs := make(map[model.NodeID]model.Attr)
	adj := make(map[model.NodeID][]model.NodeID)
	for _, e := range st.Edges {
		for i, n := range e.Nodes {
			attrs[n] = e.Points[i]
			if i > 0 {
				adj[n] = append(adj[n], e.Nodes[i-1])
				adj[e.Nodes[i-1]] = append(adj[e.Nodes[i-1]], n)
			}
		}
	}

	nodes := make([]model.NodeID, 0, len(attrs))
	for n := range attrs {
		nodes = append(nodes, n)
	}
	var roots []model.NodeID
	finished := make(map[model.NodeID]bool, len(attrs))
	for _, p := range st.Props {
		if key, _ := model.SplitProp(p.Prop); key == model.KeyRoot {
			if _, ok := attrs[p.Node]; ok {
				roots = append(roots, p.Node)
				finished[p.Node] = false
			}
		}
	}
	desc := func(a, b model.NodeID) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	}
	slices.SortFunc(nodes, desc)
	slices.SortFunc(roots, desc)
	// popped from the back: roots first, then the remaining nodes
	todo := append(nodes, roots...)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "## generated by skelstore\n## %d nodes, %d commits\n\n", len(attrs), st.Commits)
	for len(todo) > 0 {
		id := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		isRoot := false
		if done, ok := finished[id]; ok {
			if done {
				continue
			}
			isRoot = true
		}
		finished[id] = true

		attr := attrs[id].Canonical()
		written := false
		if isRoot {
			writeSWCNode(bw, id, 0, attr)
			written = true
		}
		neighbors := slices.Clone(adj[id])
		slices.Sort(neighbors)
		selfLoop := false
		for i := len(neighbors) - 1; i >= 0; i-- {
			id2 := neighbors[i]
			if id2 == id {
				selfLoop = true
				continue
			}
			done, ok := finished[id2]
			switch {
			case !ok:
				todo = append(todo, id2)
			case done && written:
				fmt.Fprintf(bw, "%s%d/%d\n", swcTag, id, id2)
			case done:
				writeSWCNode(bw, id, id2, attr)
				written = true
			}
		}
		if !written {
			writeSWCNode(bw, id, 0, attr)
		}
		if selfLoop {
			fmt.Fprintf(bw, "%s%d/%d\n", swcTag, id, id)
		}
	}

	for _, p := range st.Props {
		fmt.Fprintf(bw, "%s%d@%s\n", swcTag, p.Node, p.Prop)
	}
	return bw.Flush()
}

func writeSWCNode(w *bufio.Writer, id, parent model.NodeID, a model.Attr) {
	par := int64(-1)
	if parent != 0 {
		par = int64(parent)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	fmt.Fprintf(w, "%d %d %s %s %s %s %d\n", id, a.Misc.Type(),
		f(a.Coord(0)), f(a.Coord(1)), f(a.Coord(2)), f(a.Misc.Radius()), par)
}

// ExportSWC writes a snapshot to an SWC file at path.
func ExportSWC(st skeleton.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSWC(st, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
