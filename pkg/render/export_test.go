package render

import (
	"context"
	"strings"
	"testing"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render/nodelink"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

func testStore(t *testing.T) *skeleton.Store {
	t.Helper()
	pts := []model.Attr{model.NewAttr(0, 0, 0, 1, 0), model.NewAttr(1, 0, 0, 1, 0)}
	st := skeleton.State{
		Edges: []skeleton.StateEdge{{Nodes: []model.NodeID{1, 2}, Points: pts}},
		Props: []skeleton.StateProp{{Node: 1, Prop: "root=soma"}},
	}
	s := skeleton.New()
	l := s.Loader()
	if err := l.Load(st); err != nil {
		t.Fatal(err)
	}
	l.Close()
	u := s.Updater()
	defer u.Close()
	if _, err := u.Apply(); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"prop": "root=soma"`},
		{"swc", "#skelstore!1@root=soma"},
		{"dot", "v1 -- v2"},
	}
	s := testStore(t)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r := s.Reader()
			defer r.Close()
			data, err := Export(context.Background(), r, tt.format, nodelink.Options{})
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("Export() = %s, want it to contain %q", data, tt.want)
			}
			if !ValidFormat(tt.format) {
				t.Errorf("ValidFormat(%q) = false", tt.format)
			}
		})
	}
}

func TestExportUnknownFormat(t *testing.T) {
	r := testStore(t).Reader()
	defer r.Close()
	_, err := Export(context.Background(), r, "pdf", nodelink.Options{})
	if !apperr.Is(err, apperr.ErrCodeUnsupported) {
		t.Errorf("Export() error = %v, want %v", err, apperr.ErrCodeUnsupported)
	}
	if ValidFormat("pdf") {
		t.Error("ValidFormat(pdf) = true")
	}
}

func TestContentType(t *testing.T) {
	for format, want := range map[string]string{
		"json": "application/json",
		"svg":  "image/svg+xml",
		"swc":  "text/plain; charset=utf-8",
	} {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}
