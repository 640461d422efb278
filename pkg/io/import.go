package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// ReadJSON decodes a snapshot written by [WriteJSON].
//
// Only the framing is checked here: every edge needs as many points as
// nodes. Graph consistency is checked when the snapshot is loaded into a
// store with [skeleton.Loader.Load].
func ReadJSON(r io.Reader) (skeleton.State, error) {
	var st skeleton.State
	if err := json.NewDecoder(r).Decode(&st); err != nil {
		return skeleton.State{}, fmt.Errorf("decode: %w", err)
	}
	if err := checkFraming(st); err != nil {
		return skeleton.State{}, err
	}
	return st, nil
}

// UnmarshalJSON is [ReadJSON] from a byte slice.
func UnmarshalJSON(data []byte) (skeleton.State, error) {
	var st skeleton.State
	if err := json.Unmarshal(data, &st); err != nil {
		return skeleton.State{}, fmt.Errorf("decode: %w", err)
	}
	if err := checkFraming(st); err != nil {
		return skeleton.State{}, err
	}
	return st, nil
}

func checkFraming(st skeleton.State) error {
	for i, e := range st.Edges {
		if len(e.Nodes) == 0 || len(e.Nodes) != len(e.Points) {
			return fmt.Errorf("edge %d: %d nodes, %d points", i, len(e.Nodes), len(e.Points))
		}
	}
	return nil
}

// ImportJSON reads a snapshot from the JSON file at path.
func ImportJSON(path string) (skeleton.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return skeleton.State{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
