package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/MikeSquared-Agency/Scout/internal/hermes"
	"github.com/MikeSquared-Agency/Scout/internal/store"
)

type CandidatesHandler struct {
	store     store.Store
	hermes    hermes.Client
	validator *validator.Validate
	logger    *slog.Logger
}

func NewCandidatesHandler(s store.Store, h hermes.Client, logger *slog.Logger) *CandidatesHandler {
	return &CandidatesHandler{store: s, hermes: h, validator: newValidator(), logger: logger}
}

type CandidateRequest struct {
	ID                string   `json:"candidate_id,omitempty"`
	Name              string   `json:"name" validate:"required,max=200"`
	Title             string   `json:"title,omitempty"`
	Skills            []string `json:"skills" validate:"max=200,dive,max=100"`
	Location          string   `json:"location,omitempty"`
	ExperienceYears   int      `json:"experience_years" validate:"min=0,max=80"`
	Availability      string   `json:"availability,omitempty"`
	Summary           string   `json:"summary,omitempty" validate:"max=10000"`
	Projects          []string `json:"projects,omitempty"`
	PublicationsCount int      `json:"publications_count" validate:"min=0"`
	ReputationScore   int      `json:"reputation_score" validate:"min=0"`
	RecencySignal     string   `json:"recency_signal,omitempty"`
}

func (h *CandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.CandidateFilter{}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	candidates, err := h.store.ListCandidates(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if candidates == nil {
		candidates = []*store.Candidate{}
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.store.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "candidate not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Put creates or replaces a candidate. A candidate_id in the body must
// match the path. Ids end up in event subjects, so they must be a single
// subject token.
func (h *CandidatesHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !hermes.ValidToken(id) {
		writeError(w, http.StatusBadRequest, "candidate_id must not contain '.', '*', '>' or whitespace")
		return
	}

	var req CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != "" && req.ID != id {
		writeError(w, http.StatusBadRequest, "candidate_id does not match path")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	c := &store.Candidate{
		ID:                id,
		Name:              req.Name,
		Title:             req.Title,
		Skills:            req.Skills,
		Location:          req.Location,
		ExperienceYears:   req.ExperienceYears,
		Availability:      req.Availability,
		Summary:           req.Summary,
		Projects:          req.Projects,
		PublicationsCount: req.PublicationsCount,
		ReputationScore:   req.ReputationScore,
		RecencySignal:     req.RecencySignal,
	}
	if err := h.store.UpsertCandidate(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.hermes != nil {
		updated := c.UpdatedAt
		if updated.IsZero() {
			updated = time.Now().UTC()
		}
		if err := h.hermes.Publish(hermes.SubjectCandidateUpserted(id), hermes.CandidateUpsertedEvent{
			CandidateID: id,
			UpdatedAt:   updated,
		}); err != nil {
			h.logger.Warn("failed to publish candidate event", "candidate_id", id, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, c)
}
