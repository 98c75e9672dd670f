package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/hiveplot/pkg/buildinfo"
	"github.com/matzehuels/hiveplot/pkg/errors"
	"github.com/matzehuels/hiveplot/pkg/graph"
	"github.com/matzehuels/hiveplot/pkg/observability"
	"github.com/matzehuels/hiveplot/pkg/pipeline"
)

// Request is the body of the layout and render endpoints.
type Request struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// ----- Health -----

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: buildinfo.Version, Commit: buildinfo.Commit})
}

// ----- Layout -----

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	if err := req.Options.ValidateForLayout(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, l)
}

// ----- Render -----

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	opts := req.Options
	opts.Formats = []string{format}
	if err := opts.ValidateForLayout(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := s.runner.ExecuteGraph(r.Context(), req.Graph, opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	setCacheHeader(w, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// ----- Helpers -----

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeError(w, r, status, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return Request{}, false
	}
	req.Options.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return req, true
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfiguration,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNodeNotFound, errors.ErrCodeGroupNotFound:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	resp := ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", resp.RequestID, "err", err)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
}
