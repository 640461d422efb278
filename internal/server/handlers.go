package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Aishwarya3011/gapr-sub000/pkg/cache"
	apperr "github.com/Aishwarya3011/gapr-sub000/pkg/errors"
	skio "github.com/Aishwarya3011/gapr-sub000/pkg/io"
	"github.com/Aishwarya3011/gapr-sub000/pkg/model"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render"
	"github.com/Aishwarya3011/gapr-sub000/pkg/render/nodelink"
	"github.com/Aishwarya3011/gapr-sub000/pkg/skeleton"
)

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	skeleton.Stats
	Commits  uint32       `json:"commits"`
	NextNode model.NodeID `json:"next_node"`
	Raised   bool         `json:"raised"`
	BBox     string       `json:"bbox"`
}

type errorResponse struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperr.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: apperr.UserMessage(err)})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.ErrCodeNotFound:
		return http.StatusNotFound
	case apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidBBox, apperr.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperr.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case apperr.ErrCodeConflict:
		return http.StatusConflict
	case apperr.ErrCodePatchRejected:
		return http.StatusUnprocessableEntity
	case apperr.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func parseID(name, value string) (uint32, error) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.ErrCodeInvalidInput, "invalid %s %q", name, value)
	}
	return uint32(id), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Err(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "corrupt", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	rd := s.store.Reader()
	resp := StatsResponse{
		Stats:    rd.Stats(),
		Commits:  rd.Commits(),
		NextNode: rd.NextNodeID(),
		Raised:   rd.Raised(),
		BBox:     rd.BBox().String(),
	}
	rd.Close()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	rd := s.store.Reader()
	st := rd.Dump()
	rd.Close()
	w.Header().Set("Content-Type", "application/json")
	if err := skio.WriteJSON(st, w); err != nil {
		s.logger.Error("write state", "id", RequestID(r.Context()), "err", err)
	}
}

func (s *Server) handleRoots(w http.ResponseWriter, r *http.Request) {
	rd := s.store.Reader()
	roots := rd.Roots()
	rd.Close()
	writeJSON(w, http.StatusOK, roots)
}

func (s *Server) handleVisible(w http.ResponseWriter, r *http.Request) {
	rd := s.store.Reader()
	vis := rd.Visible()
	rd.Close()
	writeJSON(w, http.StatusOK, vis)
}

func (s *Server) handleVertex(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("vertex", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rd := s.store.Reader()
	v, ok := rd.Vertex(model.NodeID(id))
	rd.Close()
	if !ok {
		s.writeError(w, r, apperr.New(apperr.ErrCodeNotFound, "vertex %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	id, err := parseID("edge", chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rd := s.store.Reader()
	e, ok := rd.Edge(model.EdgeID(id))
	rd.Close()
	if !ok {
		s.writeError(w, r, apperr.New(apperr.ErrCodeNotFound, "edge %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleExport renders the committed graph. Exports are cached by the
// hash of the snapshot, plus the visible set when highlighting.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := chi.URLParam(r, "format")
	if !render.ValidFormat(format) {
		s.writeError(w, r, apperr.New(apperr.ErrCodeUnsupported, "unknown export format %q", format))
		return
	}
	opts := nodelink.Options{
		Detailed:  r.URL.Query().Get("detailed") == "true",
		Highlight: r.URL.Query().Get("highlight") == "true",
	}

	rd := s.store.Reader()
	defer rd.Close()

	snap, err := skio.MarshalJSON(rd.Dump())
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "encode snapshot"))
		return
	}
	h := cache.NewHasher()
	h.Add(snap)
	if opts.Highlight {
		vis, _ := json.Marshal(rd.Visible())
		h.Add(vis)
	}
	if opts.Detailed {
		h.Add([]byte("detailed"))
	}
	key := s.keyer.ExportKey(h.Sum(), cache.ExportKeyOpts{Format: format, Visible: opts.Highlight})

	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get", "key", key, "err", err)
	}
	if !hit {
		data, err = render.Export(ctx, rd, format, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("cache set", "key", key, "err", err)
		}
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Write(data)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	bbox, err := skeleton.ParseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.store.Select(r.Context(), "bbox", func(l *skeleton.Loader) error {
		return l.Filter(bbox)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Visible)
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	mode := chi.URLParam(r, "mode")
	q := r.URL.Query()

	var edge model.EdgeID
	if mode != "raised" {
		id, err := parseID("edge", q.Get("edge"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		edge = model.EdgeID(id)
	}
	dir := 0
	if v := q.Get("dir"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, apperr.New(apperr.ErrCodeInvalidInput, "invalid dir %q", v))
			return
		}
		dir = d
	}
	fn, err := skeleton.Highlight(mode, edge, dir)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.store.Select(r.Context(), mode, fn)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Visible)
}
