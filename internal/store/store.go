package store

import (
	"context"
	"time"
)

// Candidate is an immutable profile supplied to the ranking engine.
type Candidate struct {
	ID                string   `json:"candidate_id"`
	Name              string   `json:"name"`
	Title             string   `json:"title,omitempty"`
	Skills            []string `json:"skills"`
	Location          string   `json:"location,omitempty"`
	ExperienceYears   int      `json:"experience_years"`
	Availability      string   `json:"availability,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	Projects          []string `json:"projects,omitempty"`
	PublicationsCount int      `json:"publications_count"`
	ReputationScore   int      `json:"reputation_score"`
	RecencySignal     string   `json:"recency_signal,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type CandidateFilter struct {
	Limit  int
	Offset int
}

// Store is the candidate source. Implementations must return candidates in a
// stable order so that ranking ties resolve the same way across requests.
type Store interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*Candidate, error)
	GetCandidate(ctx context.Context, id string) (*Candidate, error)
	UpsertCandidate(ctx context.Context, c *Candidate) error
	Close() error
}
