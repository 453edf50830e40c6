package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCriteria is returned when criteria is not a structured object at all.
var ErrInvalidCriteria = errors.New("invalid criteria")

// SearchCriteria is the structured form of a hiring query.
type SearchCriteria struct {
	RelevantSkills      []string  `json:"relevant_skills"`
	LocationPreferences []string  `json:"location_preferences"`
	ExperienceLevel     string    `json:"experience_level,omitempty"`
	WorkType            string    `json:"work_type,omitempty"`
	Specializations     []string  `json:"specializations"`
	ScoringWeights      WeightSet `json:"scoring_weights"`
}

// Normalize returns a copy with trimmed, non-nil lists, a lower-cased
// experience level and sanitized weights. It never fails.
func (c SearchCriteria) Normalize() SearchCriteria {
	return SearchCriteria{
		RelevantSkills:      cleanList(c.RelevantSkills),
		LocationPreferences: cleanList(c.LocationPreferences),
		ExperienceLevel:     strings.ToLower(strings.TrimSpace(c.ExperienceLevel)),
		WorkType:            strings.TrimSpace(c.WorkType),
		Specializations:     cleanList(c.Specializations),
		ScoringWeights:      c.ScoringWeights.Sanitize(),
	}
}

// ParseCriteria decodes criteria as produced by a query interpreter. Only a
// payload that is not a JSON object fails; every malformed field inside an
// object falls back to a default. A missing scoring_weights object uses
// defaults, while individual missing weights count as 0.
func ParseCriteria(raw []byte, defaults WeightSet) (*SearchCriteria, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidCriteria)
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCriteria, err)
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidCriteria)
	}

	c := SearchCriteria{
		RelevantSkills:      stringList(lookup(m, "relevant_skills", "relevantSkills")),
		LocationPreferences: stringList(lookup(m, "location_preferences", "locationPreferences")),
		ExperienceLevel:     stringValue(lookup(m, "experience_level", "experienceLevel")),
		WorkType:            stringValue(lookup(m, "work_type", "workType")),
		Specializations:     stringList(lookup(m, "specializations")),
		ScoringWeights:      defaults,
	}

	if wm, ok := lookup(m, "scoring_weights", "scoringWeights").(map[string]interface{}); ok {
		c.ScoringWeights = WeightSet{
			Skill:          number(lookup(wm, "skill", "skills")),
			Location:       number(lookup(wm, "location")),
			Experience:     number(lookup(wm, "experience")),
			Availability:   number(lookup(wm, "availability")),
			Specialization: number(lookup(wm, "specialization", "specializations")),
		}
	}

	normalized := c.Normalize()
	return &normalized, nil
}

func lookup(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringList(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

func stringValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func number(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) {
			return 0
		}
		return f
	default:
		return 0
	}
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
