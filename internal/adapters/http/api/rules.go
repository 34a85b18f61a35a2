package api

import (
	"errors"
	"net/http"

	service "github.com/okian/fitfuzz/internal/app"
)

// RulesHandler serves the rule base.
type RulesHandler struct {
	deps RuleSource
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(deps RuleSource) *RulesHandler {
	return &RulesHandler{deps: deps}
}

type rulesResponse struct {
	Rules []string `json:"rules"`
}

// HandleRules handles GET /rules.
func (h *RulesHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	const op = "api.rules"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rules, err := h.deps.Rules()
	if err != nil {
		if errors.Is(err, service.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rulesResponse{Rules: rules})
}
