package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MikeSquared-Agency/Scout/internal/store"
)

// ParseCandidate decodes a caller-supplied candidate record. Like
// ParseCriteria it only fails when the payload is not an object or has no
// candidate_id; a field of the wrong type falls back to its zero value, a
// single string stands in for a one-item list and fractional counters are
// truncated.
func ParseCandidate(raw []byte) (*store.Candidate, error) {
	raw = bytes.TrimSpace(raw)
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidCandidate)
	}

	c := &store.Candidate{
		ID:                strings.TrimSpace(idValue(lookup(m, "candidate_id", "candidateId", "id"))),
		Name:              stringValue(lookup(m, "name")),
		Title:             stringValue(lookup(m, "title")),
		Skills:            stringList(lookup(m, "skills")),
		Location:          stringValue(lookup(m, "location")),
		ExperienceYears:   count(lookup(m, "experience_years", "experienceYears")),
		Availability:      stringValue(lookup(m, "availability")),
		Summary:           stringValue(lookup(m, "summary")),
		Projects:          stringList(lookup(m, "projects")),
		PublicationsCount: count(lookup(m, "publications_count", "publicationsCount")),
		ReputationScore:   count(lookup(m, "reputation_score", "reputationScore")),
		RecencySignal:     stringValue(lookup(m, "recency_signal", "recencySignal")),
	}
	if c.ID == "" {
		return nil, fmt.Errorf("%w: missing candidate_id", ErrInvalidCandidate)
	}
	return c, nil
}

// idValue accepts string ids and integral numeric ids.
func idValue(v interface{}) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return stringValue(v)
}

// count converts a decoded number into a non-negative int, truncating
// fractions and saturating at MaxInt32.
func count(v interface{}) int {
	f := number(v)
	switch {
	case f <= 0 || math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(f)
	}
}
