package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// WriteJSON encodes a snapshot as indented JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(st skeleton.State, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON is [WriteJSON] into a byte slice, without indentation.
func MarshalJSON(st skeleton.State) ([]byte, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ExportJSON writes a snapshot to a JSON file at path.
func ExportJSON(st skeleton.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(st, f)
}
