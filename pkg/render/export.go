package render

import (
	"bytes"
	"context"
	"slices"

	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	skio "github.com/Aishwarya3011/gapr-sub000/pkg/io"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render/nodelink"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "swc", "dot", "svg"}

// Source is what an export reads. [skeleton.Reader] implements it.
type Source interface {
	nodelink.Graph
	Dump() skeleton.State
}

// Export renders src in format. Callers hold the scope src belongs to for
// the duration of the call.
func Export(ctx context.Context, src Source, format string, opts nodelink.Options) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "json":
		if err := skio.WriteJSON(src.Dump(), &buf); err != nil {
			return nil, err
		}
	case "swc":
		if err := skio.WriteSWC(src.Dump(), &buf); err != nil {
			return nil, err
		}
	case "dot":
		buf.WriteString(nodelink.ToDOT(src, opts))
	case "svg":
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(src, opts))
	default:
		return nil, apperr.New(apperr.ErrCodeUnsupported,
			"unknown export format %q (want one of %v)", format, Formats)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ValidFormat reports whether format is one of [Formats].
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}
