package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

func pt(x, y, z float64) model.Attr {
	return model.NewAttr(x, y, z, 1, 0)
}

func chain() skeleton.State {
	return skeleton.State{
		Edges: []skeleton.StateEdge{
			{Nodes: []model.NodeID{1, 2, 3}, Points: []model.Attr{pt(0, 0, 0), pt(1, 0, 0), pt(2, 0, 0)}},
		},
		Props:   []skeleton.StateProp{{Node: 2, Prop: "root=a"}},
		Commits: 2,
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := chain()
	want.Logs = []string{"first"}

	var buf bytes.Buffer
	if err := WriteJSON(want, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "snap.json")
	if err := ExportJSON(want, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err = ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !got.Equal(want) {
		t.Error("ImportJSON() returned a different snapshot")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"edges": [`},
		{"missing points", `{"edges": [{"nodes": [1, 2], "points": []}]}`},
		{"empty edge", `{"edges": [{"nodes": [], "points": []}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadJSON() error = nil, want error")
			}
			if _, err := UnmarshalJSON([]byte(tt.input)); err == nil {
				t.Error("UnmarshalJSON() error = nil, want error")
			}
		})
	}
}

func TestWriteSWC(t *testing.T) {
	tests := []struct {
		name string
		st   skeleton.State
		want []string
	}{
		{
			name: "rooted chain",
			st:   chain(),
			want: []string{
				"2 0 1 0 0 1 -1",
				"1 0 0 0 0 1 2",
				"3 0 2 0 0 1 2",
				"#skelstore!2@root=a",
			},
		},
		{
			name: "unrooted triangle",
			st: skeleton.State{Edges: []skeleton.StateEdge{
				{Nodes: []model.NodeID{1, 2}, Points: []model.Attr{pt(0, 0, 0), pt(1, 0, 0)}},
				{Nodes: []model.NodeID{2, 3}, Points: []model.Attr{pt(1, 0, 0), pt(1, 1, 0)}},
				{Nodes: []model.NodeID{3, 1}, Points: []model.Attr{pt(1, 1, 0), pt(0, 0, 0)}},
			}},
			want: []string{
				"1 0 0 0 0 1 -1",
				"2 0 1 0 0 1 1",
				"3 0 1 1 0 1 2",
				"#skelstore!3/1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteSWC(tt.st, &buf); err != nil {
				t.Fatalf("WriteSWC() error = %v", err)
			}
			var got []string
			for _, line := range strings.Split(buf.String(), "\n") {
				if line != "" && !strings.HasPrefix(line, "##") {
					got = append(got, line)
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WriteSWC() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
