package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/errors"
	graphio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/observability"
	"github.com/matzehuels/graphkit/pkg/pipeline"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

// ImportResponse is the body of a successful /import.
type ImportResponse struct {
	ID      string           `json:"id"`
	Format  string           `json:"format"`
	Regime  string           `json:"regime"`
	Stats   graphio.Stats    `json:"stats"`
	TookMS  int64            `json:"took_ms"`
	Summary pipeline.Summary `json:"summary"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
	"json":             "application/json",
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) formats(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"import": graphio.Formats(),
		"export": pipeline.OutputFormats(),
	})
}

func (s *Server) importGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := loadOptions(r, "format")
	if err != nil {
		respondError(w, err)
		return
	}
	id := uuid.NewString()
	l := observability.LoggerFromContext(r.Context()).With("import_id", id)
	opts.Logger = l

	loaded, err := s.runner.Load(r.Context(), opts, graphio.Reader(r.Body))
	if err != nil {
		respondError(w, err)
		return
	}
	sum, err := loaded.Summary()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ImportResponse{
		ID:      id,
		Format:  string(loaded.Format),
		Regime:  loaded.Regime.String(),
		Stats:   loaded.Stats,
		TookMS:  loaded.Took.Milliseconds(),
		Summary: sum,
	})
}

func (s *Server) convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	to := q.Get("to")
	if err := pipeline.ValidateOutput(to); err != nil {
		respondError(w, err)
		return
	}
	opts, err := loadOptions(r, "from")
	if err != nil {
		respondError(w, err)
		return
	}
	opts.Logger = observability.LoggerFromContext(r.Context())

	loaded, err := s.runner.Load(r.Context(), opts, graphio.Reader(r.Body))
	if err != nil {
		respondError(w, err)
		return
	}
	var buf bytes.Buffer
	draw := nodelink.Options{Detailed: flag(q.Get("detailed")), EdgeWeights: true}
	if err := loaded.Write(r.Context(), to, &buf, draw); err != nil {
		respondError(w, err)
		return
	}

	ct, ok := contentTypes[to]
	if !ok {
		ct = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// loadOptions reads the load options from the query string. formatKey
// names the parameter holding the input format.
func loadOptions(r *http.Request, formatKey string) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:     q.Get(formatKey),
		Regime:     q.Get("regime"),
		Directed:   flag(q.Get("directed")),
		Weighted:   flag(q.Get("weighted")),
		SelfLoops:  flag(q.Get("selfloops")),
		MultiEdges: flag(q.Get("multiedges")),
	}
	if opts.Format == "" {
		return opts, errors.InvalidArgument("query parameter %q is required", formatKey)
	}
	return opts, nil
}

func flag(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = "INTERNAL"
	}
	respondJSON(w, statusOf(err), ErrorResponse{
		Error:   true,
		Code:    code,
		Message: err.Error(),
	})
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidArgument, errors.ErrCodeNullPointer:
		return http.StatusBadRequest
	case errors.ErrCodeImport, errors.ErrCodeClassCast, errors.ErrCodeIndexOutOfBounds:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeInvalidState:
		return http.StatusConflict
	case errors.ErrCodeNoSuchElement:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
