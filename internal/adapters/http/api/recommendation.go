package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	service "github.com/okian/fitfuzz/internal/app"
	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/domain/fuzzy"
)

var errTrailingData = errors.New("request body must hold a single JSON object")

// RecommendationHandler handles recommendation requests.
type RecommendationHandler struct {
	deps Recommender
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(deps Recommender) *RecommendationHandler {
	return &RecommendationHandler{deps: deps}
}

// HandleRecommendation handles POST /recommendations with a JSON body and
// GET /recommendations?age=&bmi=&explain= for the input form.
func (h *RecommendationHandler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	var (
		req recommendationRequest
		err error
	)
	switch r.Method {
	case http.MethodPost:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
		if err == nil && !errors.Is(dec.Decode(&struct{}{}), io.EOF) {
			err = errTrailingData
		}
	case http.MethodGet:
		req, err = recommendationFromQuery(r)
	default:
		http.NotFound(w, r)
		return
	}
	if err == nil {
		err = req.validate()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.Recommend(r.Context(), service.Request{Age: *req.Age, BMI: *req.BMI, Explain: req.Explain})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rec)
	case errors.Is(err, fuzzy.ErrDegenerateAggregate):
		writeError(w, http.StatusUnprocessableEntity, "no_recommendation", WrapKind(op, ErrNoRecommendation, err))
	case isInvalidInput(err):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
	}
}

func recommendationFromQuery(r *http.Request) (recommendationRequest, error) {
	q := r.URL.Query()
	age, err := parseFloatParam(q, "age")
	if err != nil {
		return recommendationRequest{}, err
	}
	bmi, err := parseFloatParam(q, "bmi")
	if err != nil {
		return recommendationRequest{}, err
	}
	explain, err := parseBoolParam(q, "explain")
	if err != nil {
		return recommendationRequest{}, err
	}
	return recommendationRequest{Age: &age, BMI: &bmi, Explain: explain}, nil
}

func isInvalidInput(err error) bool {
	return errors.Is(err, exercise.ErrAgeOutOfRange) ||
		errors.Is(err, exercise.ErrBMIOutOfRange) ||
		errors.Is(err, exercise.ErrNotANumber)
}
