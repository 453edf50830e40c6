package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Scout/internal/interpreter"
	"github.com/MikeSquared-Agency/Scout/internal/scoring"
	"github.com/MikeSquared-Agency/Scout/internal/search"
)

// maxRequestBody bounds inline candidate pools.
const maxRequestBody = 8 << 20

type SearchHandler struct {
	search    *search.Service
	validator *validator.Validate
	logger    *slog.Logger
}

func NewSearchHandler(svc *search.Service, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{search: svc, validator: newValidator(), logger: logger}
}

// SearchRequest runs against the stored candidate pool. An absent top_k
// uses the configured default; top_k above the configured maximum is capped
// and the applied value is echoed as summary.top_k.
type SearchRequest struct {
	Query    string          `json:"query" validate:"required_without=Criteria,max=2000"`
	Criteria json.RawMessage `json:"criteria,omitempty"`
	TopK     *int            `json:"top_k,omitempty" validate:"omitempty,min=0,max=1000"`
}

type RankRequest struct {
	Criteria   json.RawMessage   `json:"criteria" validate:"required"`
	Candidates []json.RawMessage `json:"candidates" validate:"required,max=10000"`
	TopK       *int              `json:"top_k,omitempty" validate:"omitempty,min=0,max=1000"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.search.Search(r.Context(), search.Request{
		Query:    req.Query,
		Criteria: req.Criteria,
		TopK:     req.TopK,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SearchHandler) Rank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.search.RankPool(r.Context(), req.Criteria, req.Candidates, req.TopK)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SearchHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// statusFor maps search errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, scoring.ErrInvalidCriteria):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, interpreter.ErrInterpreter):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("validation error: %s - %s", ve[0].Field(), ve[0].Tag())
	}
	return "validation error: invalid request"
}
