// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	"github.com/okian/fitfuzz/internal/domain/model"
	"github.com/okian/fitfuzz/internal/domain/types"
	service "github.com/okian/fitfuzz/internal/app"
)

// DefaultMaxActivityLimit caps GET /activity when no limit is configured.
const DefaultMaxActivityLimit = 100

// Recommender evaluates one (age, bmi) request.
type Recommender interface {
	Recommend(ctx context.Context, req service.Request) (types.Recommendation, error)
}

// VariableSource exposes the linguistic variables of the running engine.
type VariableSource interface {
	Variables(ctx context.Context) ([]types.VariableView, error)
	Variable(name string) (*fuzzy.Variable, error)
}

// RuleSource lists the rule base.
type RuleSource interface {
	Rules() ([]string, error)
}

// ActivityReader reads the activity log.
type ActivityReader interface {
	Recent(ctx context.Context, n int) ([]model.Activity, error)
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Recommender
	VariableSource
	RuleSource
	ActivityReader
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler         *HealthHandler
	statsHandler          *StatsHandler
	recommendationHandler *RecommendationHandler
	variablesHandler      *VariablesHandler
	rulesHandler          *RulesHandler
	activityHandler       *ActivityHandler
	dashboardHandler      *dashboardHandler
}

// NewServer creates a new API server with all handlers. A non-positive
// maxActivityLimit falls back to DefaultMaxActivityLimit.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxActivityLimit int) *Server {
	return &Server{
		healthHandler:         NewHealthHandler(),
		statsHandler:          NewStatsHandler(statsProvider),
		recommendationHandler: NewRecommendationHandler(deps),
		variablesHandler:      NewVariablesHandler(deps),
		rulesHandler:          NewRulesHandler(deps),
		activityHandler:       NewActivityHandler(deps, maxActivityLimit),
		dashboardHandler:      newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationHandler.HandleRecommendation, "recommendations"))
	mux.HandleFunc("/variables", MetricsMiddleware(s.variablesHandler.HandleList, "variables"))
	mux.HandleFunc("/variables/{name}", MetricsMiddleware(s.variablesHandler.HandleGet, "variable"))
	mux.HandleFunc("/variables/{name}/{file}", MetricsMiddleware(s.variablesHandler.HandlePlot, "variable_plot"))
	mux.HandleFunc("/rules", MetricsMiddleware(s.rulesHandler.HandleRules, "rules"))
	mux.HandleFunc("/activity", MetricsMiddleware(s.activityHandler.HandleRecent, "activity"))
}

// recommendationRequest mirrors the OpenAPI schema for POST /recommendations.
type recommendationRequest struct {
	Age     *float64 `json:"age"`
	BMI     *float64 `json:"bmi"`
	Explain bool     `json:"explain"`
}

func (r recommendationRequest) validate() error {
	switch {
	case r.Age == nil:
		return errMissing("age")
	case r.BMI == nil:
		return errMissing("bmi")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
