package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/fitfuzz/internal/app"
	"github.com/okian/fitfuzz/internal/domain/types"
	"github.com/okian/fitfuzz/internal/plot"
)

// VariablesHandler serves the linguistic variables and their plots.
type VariablesHandler struct {
	deps VariableSource
}

// NewVariablesHandler creates a new variables handler.
func NewVariablesHandler(deps VariableSource) *VariablesHandler {
	return &VariablesHandler{deps: deps}
}

// HandleList handles GET /variables.
func (h *VariablesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.variables"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	views, err := h.deps.Variables(r.Context())
	if err != nil {
		h.writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /variables/{name}.
func (h *VariablesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.variable"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	v, err := h.deps.Variable(r.PathValue("name"))
	if err != nil {
		h.writeLookupError(w, op, err)
		return
	}
	view, err := types.NewVariableView(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePlot handles GET /variables/{name}/plot.{png,svg,pdf}.
func (h *VariablesHandler) HandlePlot(w http.ResponseWriter, r *http.Request) {
	const op = "api.variable_plot"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	format, ok := strings.CutPrefix(r.PathValue("file"), "plot.")
	if !ok {
		http.NotFound(w, r)
		return
	}
	contentType, err := plot.ContentType(format)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	v, err := h.deps.Variable(r.PathValue("name"))
	if err != nil {
		h.writeLookupError(w, op, err)
		return
	}

	var buf bytes.Buffer
	if err := plot.Render(&buf, v, format); err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *VariablesHandler) writeLookupError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrVariableNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
	}
}
