package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/fitfuzz/internal/adapters/repository"
	service "github.com/okian/fitfuzz/internal/app"
	"github.com/okian/fitfuzz/internal/domain/model"
)

const defaultActivityLimit = 20

// ActivityHandler serves the latest activity log entries.
type ActivityHandler struct {
	deps     ActivityReader
	maxLimit int
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(deps ActivityReader, maxLimit int) *ActivityHandler {
	if maxLimit <= 0 {
		maxLimit = DefaultMaxActivityLimit
	}
	return &ActivityHandler{deps: deps, maxLimit: maxLimit}
}

type activityResponse struct {
	Count   int              `json:"count"`
	Entries []model.Activity `json:"entries"`
}

// HandleRecent handles GET /activity?limit=N.
func (h *ActivityHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	const op = "api.activity"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, err := parseLimit(r.URL.Query(), min(defaultActivityLimit, h.maxLimit))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if limit > h.maxLimit {
		err := fmt.Errorf("limit %d exceeds maximum %d", limit, h.maxLimit)
		writeError(w, http.StatusBadRequest, "limit_exceeded", WrapKind(op, ErrLimitExceeded, err))
		return
	}

	entries, err := h.deps.Recent(r.Context(), limit)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, repository.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []model.Activity{}
	}
	writeJSON(w, http.StatusOK, activityResponse{Count: len(entries), Entries: entries})
}
