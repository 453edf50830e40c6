package hermes

import (
	"encoding/json"
	"time"
)

// SearchRequestEvent asks Scout to run a search. Either Query or Criteria
// must be set; Criteria wins when both are present. An absent TopK uses the
// configured default while an explicit 0 ranks nothing.
type SearchRequestEvent struct {
	SearchID string          `json:"search_id,omitempty"`
	Query    string          `json:"query,omitempty"`
	Criteria json.RawMessage `json:"criteria,omitempty"`
	TopK     *int            `json:"top_k,omitempty"`
	Source   string          `json:"source,omitempty"`
}

type RankedCandidate struct {
	CandidateID string `json:"candidate_id"`
	FinalScore  int    `json:"final_score"`
	Fit         string `json:"fit"`
}

type SearchRankedEvent struct {
	SearchID     string            `json:"search_id"`
	Count        int               `json:"count"`
	AverageScore int               `json:"average_score"`
	Scored       int               `json:"scored"`
	Skipped      int               `json:"skipped"`
	Top          []RankedCandidate `json:"top"`
	DurationMs   int64             `json:"duration_ms"`
	Timestamp    time.Time         `json:"timestamp"`
}

type SearchFailedEvent struct {
	SearchID  string    `json:"search_id"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

type CandidateUpsertedEvent struct {
	CandidateID string    `json:"candidate_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
