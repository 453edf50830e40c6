package scoring

import (
	"log/slog"
	"math"

	"github.com/MikeSquared-Agency/Scout/internal/store"
)

// MatchDetail holds the raw 0-100 score of each dimension plus the bonus.
type MatchDetail struct {
	SkillMatch          float64 `json:"skill_match"`
	LocationMatch       float64 `json:"location_match"`
	ExperienceMatch     float64 `json:"experience_match"`
	AvailabilityMatch   float64 `json:"availability_match"`
	SpecializationMatch float64 `json:"specialization_match"`
	BonusScore          float64 `json:"bonus_score"`
}

// Explanation answers "why did this candidate match".
type Explanation struct {
	Skills                 []SkillMatch    `json:"skills"`
	Location               LocationMatch   `json:"location"`
	ExperienceBand         *ExperienceBand `json:"experience_band,omitempty"`
	SpecializationsMatched []string        `json:"specializations_matched,omitempty"`
	Bonus                  []string        `json:"bonus,omitempty"`
	Dimensions             []FactorResult  `json:"dimensions"`
}

// ScoredCandidate is a candidate with its final score and explanation.
type ScoredCandidate struct {
	store.Candidate
	FinalScore  int         `json:"final_score"`
	Fit         string      `json:"fit"`
	Match       MatchDetail `json:"match"`
	Explanation Explanation `json:"explanation"`
}

// Scorer combines the dimension scores into one bounded final score.
type Scorer struct {
	logger *slog.Logger
}

func NewScorer(logger *slog.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// ScoreCandidate computes the full scoring result for one candidate.
//
//	final = clamp(0, 100, round(sum(score_d * weight_d) + bonus))
//
// Weights are applied verbatim; a set summing above 1.0 is absorbed by the clamp.
func (s *Scorer) ScoreCandidate(mc *MatchContext) ScoredCandidate {
	skill, skills := SkillFactor(mc)
	location, loc := LocationFactor(mc)
	experience, band := ExperienceFactor(mc)
	availability := AvailabilityFactor(mc)
	specialization, specs := SpecializationFactor(mc)
	bonus, reasons := BonusFactor(mc)

	factors := []FactorResult{skill, location, experience, availability, specialization}
	weights := mc.Criteria.ScoringWeights.asList()

	var total float64
	for i := range factors {
		factors[i].Weight = weights[i]
		factors[i].Weighted = factors[i].Score * weights[i]
		total += factors[i].Weighted
	}

	final := int(clamp(math.Round(total+bonus), 0, 100))

	if s.logger != nil {
		s.logger.Debug("candidate scored",
			"candidate_id", mc.Candidate.ID,
			"weighted", total,
			"bonus", bonus,
			"final_score", final,
		)
	}

	return ScoredCandidate{
		Candidate:  *mc.Candidate,
		FinalScore: final,
		Fit:        FitLabel(final),
		Match: MatchDetail{
			SkillMatch:          skill.Score,
			LocationMatch:       location.Score,
			ExperienceMatch:     experience.Score,
			AvailabilityMatch:   availability.Score,
			SpecializationMatch: specialization.Score,
			BonusScore:          bonus,
		},
		Explanation: Explanation{
			Skills:                 skills,
			Location:               loc,
			ExperienceBand:         band,
			SpecializationsMatched: specs,
			Bonus:                  reasons,
			Dimensions:             factors,
		},
	}
}

// FitLabel maps a final score to a coarse label:
// 80-100=strong, 60-79=good, 40-59=partial, 0-39=weak.
func FitLabel(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 60:
		return "good"
	case score >= 40:
		return "partial"
	default:
		return "weak"
	}
}
