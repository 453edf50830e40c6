package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Scout/internal/config"
	"github.com/MikeSquared-Agency/Scout/internal/hermes"
	"github.com/MikeSquared-Agency/Scout/internal/interpreter"
	"github.com/MikeSquared-Agency/Scout/internal/metrics"
	"github.com/MikeSquared-Agency/Scout/internal/scoring"
	"github.com/MikeSquared-Agency/Scout/internal/store"
)

// topInEvent caps how many ranked candidates are carried on the bus.
const topInEvent = 10

// Request is one search. Criteria takes precedence over Query; the
// interpreter is only consulted when Criteria is absent. A nil TopK uses the
// configured default.
type Request struct {
	ID       string
	Query    string
	Criteria json.RawMessage
	TopK     *int
}

type Response struct {
	SearchID string                    `json:"search_id"`
	Results  []scoring.ScoredCandidate `json:"results"`
	Summary  scoring.ResultSummary     `json:"summary"`
}

type Service struct {
	store          store.Store
	hermes         hermes.Client
	interpreter    interpreter.Client
	ranker         *scoring.Ranker
	metrics        *metrics.Metrics
	candidateLimit int
	logger         *slog.Logger
}

func New(s store.Store, h hermes.Client, ic interpreter.Client, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:          s,
		hermes:         h,
		interpreter:    ic,
		ranker:         scoring.NewRanker(cfg.RankerConfig(), logger),
		metrics:        m,
		candidateLimit: cfg.Scoring.CandidateLimit,
		logger:         logger,
	}
}

// Search resolves criteria, loads the candidate pool and ranks it. The
// outcome is published on the bus either way; publish failures are logged
// and never fail the search.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	id := req.ID
	if !hermes.ValidToken(id) {
		id = uuid.NewString()
	}
	start := time.Now()

	resp, err := s.search(ctx, id, req)
	s.metrics.Search(Outcome(err))
	if err != nil {
		s.logger.Warn("search failed", "search_id", id, "error", err)
		s.publish(hermes.SubjectSearchFailed(id), hermes.SearchFailedEvent{
			SearchID:  id,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return nil, err
	}

	elapsed := time.Since(start)
	s.logger.Info("search ranked",
		"search_id", id,
		"results", resp.Summary.Count,
		"scored", resp.Summary.Scored,
		"skipped", resp.Summary.Skipped,
		"duration_ms", elapsed.Milliseconds(),
	)
	s.publish(hermes.SubjectSearchRanked(id), rankedEvent(resp, elapsed))
	return resp, nil
}

func (s *Service) search(ctx context.Context, id string, req Request) (*Response, error) {
	raw, err := s.resolveCriteria(ctx, req)
	if err != nil {
		return nil, err
	}
	crit, err := scoring.ParseCriteria(raw, s.ranker.DefaultWeights())
	if err != nil {
		return nil, err
	}

	pool, err := s.store.ListCandidates(ctx, store.CandidateFilter{Limit: s.candidateLimit})
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	result, err := s.rank(ctx, crit, pool, req.TopK)
	if err != nil {
		return nil, err
	}
	return &Response{SearchID: id, Results: result.Results, Summary: result.Summary}, nil
}

func (s *Service) resolveCriteria(ctx context.Context, req Request) (json.RawMessage, error) {
	if c := bytes.TrimSpace(req.Criteria); len(c) > 0 && !bytes.Equal(c, []byte("null")) {
		return c, nil
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query or criteria is required", scoring.ErrInvalidCriteria)
	}
	if s.interpreter == nil {
		return nil, fmt.Errorf("%w: no interpreter configured", interpreter.ErrInterpreter)
	}
	raw, err := s.interpreter.Interpret(ctx, query)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("query interpreted", "query", query, "criteria", string(raw))
	return raw, nil
}

// RankPool ranks a caller-supplied pool instead of the stored one. Each
// candidate is decoded on its own with field-level defaults; only records
// that are not objects or lack an id are skipped and counted.
func (s *Service) RankPool(ctx context.Context, rawCriteria json.RawMessage, rawCandidates []json.RawMessage, topK *int) (*Response, error) {
	resp, err := s.rankPool(ctx, rawCriteria, rawCandidates, topK)
	s.metrics.Search(Outcome(err))
	return resp, err
}

func (s *Service) rankPool(ctx context.Context, rawCriteria json.RawMessage, rawCandidates []json.RawMessage, topK *int) (*Response, error) {
	crit, err := scoring.ParseCriteria(rawCriteria, s.ranker.DefaultWeights())
	if err != nil {
		return nil, err
	}

	pool := make([]*store.Candidate, 0, len(rawCandidates))
	undecodable := 0
	for i, raw := range rawCandidates {
		c, err := scoring.ParseCandidate(raw)
		if err != nil {
			undecodable++
			s.logger.Warn("skipping candidate", "index", i, "error", err)
			continue
		}
		pool = append(pool, c)
	}

	result, err := s.rank(ctx, crit, pool, topK)
	if err != nil {
		return nil, err
	}
	result.Summary.Skipped += undecodable
	s.metrics.Skipped(undecodable)
	return &Response{SearchID: uuid.NewString(), Results: result.Results, Summary: result.Summary}, nil
}

func (s *Service) rank(ctx context.Context, crit *scoring.SearchCriteria, pool []*store.Candidate, topK *int) (*scoring.RankResult, error) {
	k := scoring.AutoTopK
	if topK != nil {
		k = *topK
	}
	start := time.Now()
	result, err := s.ranker.Rank(ctx, crit, pool, k)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRank(time.Since(start), result.Summary.Scored, result.Summary.Skipped)
	return result, nil
}

// SetupSubscriptions serves search requests arriving on the bus. Results
// are only delivered as ranked/failed events.
func (s *Service) SetupSubscriptions(ctx context.Context) error {
	if s.hermes == nil {
		return nil
	}
	return s.hermes.Subscribe(hermes.SubjectSearchRequest, func(_ string, data []byte) {
		var evt hermes.SearchRequestEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			s.logger.Warn("invalid search request event", "error", err)
			return
		}
		s.logger.Info("search requested via hermes", "search_id", evt.SearchID, "source", evt.Source)
		// Errors are already logged and published as failed events.
		_, _ = s.Search(ctx, Request{
			ID:       evt.SearchID,
			Query:    evt.Query,
			Criteria: evt.Criteria,
			TopK:     evt.TopK,
		})
	})
}

func (s *Service) publish(subject string, data interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func rankedEvent(resp *Response, elapsed time.Duration) hermes.SearchRankedEvent {
	evt := hermes.SearchRankedEvent{
		SearchID:     resp.SearchID,
		Count:        resp.Summary.Count,
		AverageScore: resp.Summary.AverageScore,
		Scored:       resp.Summary.Scored,
		Skipped:      resp.Summary.Skipped,
		DurationMs:   elapsed.Milliseconds(),
		Timestamp:    time.Now().UTC(),
	}
	for i, r := range resp.Results {
		if i == topInEvent {
			break
		}
		evt.Top = append(evt.Top, hermes.RankedCandidate{
			CandidateID: r.ID,
			FinalScore:  r.FinalScore,
			Fit:         r.Fit,
		})
	}
	return evt
}

// MaxTopK is the largest top_k a search will honour.
func (s *Service) MaxTopK() int {
	return s.ranker.MaxTopK()
}

// Outcome classifies a search error for metrics and HTTP status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, scoring.ErrInvalidCriteria):
		return metrics.OutcomeInvalidCriteria
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return metrics.OutcomeCancelled
	case errors.Is(err, interpreter.ErrInterpreter):
		return metrics.OutcomeInterpreter
	default:
		return metrics.OutcomeStore
	}
}
