package scoring

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/Scout/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestWeightSetValidate(t *testing.T) {
	over := WeightSet{Skill: 1, Location: 1, Experience: 1, Availability: 1, Specialization: 1}
	if err := over.Validate(); err == nil {
		t.Error("expected error for weights summing to 5")
	}
	neg := WeightSet{Skill: -0.5, Location: 1.5}
	if err := neg.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
	clean := neg.Sanitize()
	if clean.Skill != 0 || clean.Location != 1.5 {
		t.Errorf("unexpected sanitized weights: %+v", clean)
	}
	if got := (WeightSet{Skill: math.NaN(), Location: math.Inf(1)}).Sanitize(); got.Skill != 0 || got.Location != 0 {
		t.Errorf("expected NaN/Inf sanitized to 0, got %+v", got)
	}
}

func endToEndCriteria() *SearchCriteria {
	return &SearchCriteria{
		RelevantSkills:      []string{"LangChain", "RAG"},
		LocationPreferences: []string{"Europe"},
		ExperienceLevel:     "senior",
		WorkType:            "contract",
		Specializations:     []string{"GenAI"},
		ScoringWeights: WeightSet{
			Skill:          0.3,
			Location:       0.2,
			Experience:     0.2,
			Availability:   0.1,
			Specialization: 0.2,
		},
	}
}

func endToEndCandidate() *store.Candidate {
	return &store.Candidate{
		ID:                "cand-1",
		Name:              "Ada",
		Title:             "Staff Engineer",
		Skills:            []string{"LangChain", "Python"},
		Location:          "Berlin, Germany",
		ExperienceYears:   6,
		Availability:      "Open to contract work",
		Summary:           "GenAI engineer building retrieval systems",
		PublicationsCount: 3,
		ReputationScore:   1200,
	}
}

func TestScoreCandidateEndToEnd(t *testing.T) {
	s := NewScorer(discardLogger())
	result := s.ScoreCandidate(&MatchContext{
		Criteria:  endToEndCriteria(),
		Candidate: endToEndCandidate(),
		Now:       fixedNow,
	})

	want := MatchDetail{
		SkillMatch:          50,
		LocationMatch:       100,
		ExperienceMatch:     100,
		AvailabilityMatch:   100,
		SpecializationMatch: 100,
		BonusScore:          8, // reputation +5, experience +3
	}
	if result.Match != want {
		t.Errorf("match detail = %+v, want %+v", result.Match, want)
	}
	// 0.3*50 + 0.2*100 + 0.2*100 + 0.1*100 + 0.2*100 = 85, plus 8
	if result.FinalScore != 93 {
		t.Errorf("expected final score 93, got %d", result.FinalScore)
	}
	if result.Fit != "strong" {
		t.Errorf("expected fit 'strong', got %q", result.Fit)
	}
	if len(result.Explanation.Dimensions) != 5 {
		t.Fatalf("expected 5 dimensions, got %d", len(result.Explanation.Dimensions))
	}
	if d := result.Explanation.Dimensions[0]; d.Name != DimensionSkill || d.Weight != 0.3 || math.Abs(d.Weighted-15) > 0.001 {
		t.Errorf("unexpected skill dimension: %+v", d)
	}
	if result.Explanation.Location.Kind != LocationRegion {
		t.Errorf("expected region location match, got %s", result.Explanation.Location.Kind)
	}
	if result.ID != "cand-1" {
		t.Errorf("expected candidate embedded, got id %q", result.ID)
	}
}

func TestScoreCandidateClamp(t *testing.T) {
	s := NewScorer(discardLogger())

	t.Run("weights above one", func(t *testing.T) {
		crit := endToEndCriteria()
		crit.ScoringWeights = WeightSet{Skill: 1, Location: 1, Experience: 1, Availability: 1, Specialization: 1}
		c := endToEndCandidate()
		c.PublicationsCount = 10
		c.RecencySignal = "active 2 hours ago"
		result := s.ScoreCandidate(&MatchContext{Criteria: crit, Candidate: c, Now: fixedNow})
		if result.FinalScore != 100 {
			t.Errorf("expected clamp to 100, got %d", result.FinalScore)
		}
		if result.Match.BonusScore != MaxBonus {
			t.Errorf("expected max bonus %d, got %f", MaxBonus, result.Match.BonusScore)
		}
	})

	t.Run("zero weights", func(t *testing.T) {
		crit := endToEndCriteria()
		crit.ScoringWeights = WeightSet{}
		c := endToEndCandidate()
		c.ReputationScore = 0
		c.ExperienceYears = 1
		result := s.ScoreCandidate(&MatchContext{Criteria: crit, Candidate: c, Now: fixedNow})
		if result.FinalScore != 0 {
			t.Errorf("expected 0 with zero weights and no bonus, got %d", result.FinalScore)
		}
		if result.Fit != "weak" {
			t.Errorf("expected fit 'weak', got %q", result.Fit)
		}
	})
}

func TestScoreCandidateIdempotent(t *testing.T) {
	s := NewScorer(discardLogger())
	mc := &MatchContext{Criteria: endToEndCriteria(), Candidate: endToEndCandidate(), Now: fixedNow}
	first := s.ScoreCandidate(mc)
	second := s.ScoreCandidate(mc)
	if first.FinalScore != second.FinalScore || first.Match != second.Match {
		t.Errorf("scoring not idempotent: %+v vs %+v", first.Match, second.Match)
	}
}

func TestFitLabels(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "strong"},
		{80, "strong"},
		{79, "good"},
		{60, "good"},
		{59, "partial"},
		{40, "partial"},
		{39, "weak"},
		{0, "weak"},
	}
	for _, tt := range tests {
		if got := FitLabel(tt.score); got != tt.want {
			t.Errorf("FitLabel(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
