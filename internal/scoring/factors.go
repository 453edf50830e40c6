package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/Scout/internal/store"
)

// Dimension names, in weighting order.
const (
	DimensionSkill          = "skill"
	DimensionLocation       = "location"
	DimensionExperience     = "experience"
	DimensionAvailability   = "availability"
	DimensionSpecialization = "specialization"
)

// FactorResult captures one dimension's contribution to the final score.
type FactorResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
}

// MatchContext bundles the inputs needed to score one candidate. Criteria and
// Candidate are read-only; Now is fixed for the whole ranking request.
type MatchContext struct {
	Criteria  *SearchCriteria
	Candidate *store.Candidate
	Now       time.Time
}

// SkillMatch explains how one requested skill was satisfied.
type SkillMatch struct {
	Skill     string    `json:"skill"`
	MatchedBy string    `json:"matched_by,omitempty"`
	Kind      MatchKind `json:"kind"`
}

type LocationKind string

const (
	LocationDirect LocationKind = "direct"
	LocationRegion LocationKind = "region"
	LocationRemote LocationKind = "remote"
	LocationNone   LocationKind = "none"
)

// LocationMatch explains the location outcome.
type LocationMatch struct {
	Kind LocationKind `json:"kind"`
	Term string       `json:"term,omitempty"`
}

// --- Dimension scorers ---

// SkillFactor scores the share of requested skills matched by any candidate
// skill, capped at 100.
func SkillFactor(mc *MatchContext) (FactorResult, []SkillMatch) {
	requested := mc.Criteria.RelevantSkills
	matches := make([]SkillMatch, 0, len(requested))
	matched := 0
	for _, req := range requested {
		m := matchSkill(req, mc.Candidate.Skills)
		if m.Kind != MatchNone {
			matched++
		}
		matches = append(matches, m)
	}

	score := float64(matched) / float64(max(1, len(requested))) * 100
	score = clamp(score, 0, 100)

	reason := "no skills requested"
	if len(requested) > 0 {
		reason = fmt.Sprintf("%d of %d skills matched", matched, len(requested))
	}
	return FactorResult{Name: DimensionSkill, Score: score, Reason: reason}, matches
}

func matchSkill(requested string, skills []string) SkillMatch {
	req := strings.ToLower(strings.TrimSpace(requested))
	if req == "" {
		return SkillMatch{Skill: requested, Kind: MatchNone}
	}

	for _, s := range skills {
		if strings.EqualFold(strings.TrimSpace(s), req) {
			return SkillMatch{Skill: requested, MatchedBy: s, Kind: MatchExact}
		}
	}
	for _, s := range skills {
		have := strings.ToLower(strings.TrimSpace(s))
		if have == "" {
			continue
		}
		if strings.Contains(have, req) || strings.Contains(req, have) {
			return SkillMatch{Skill: requested, MatchedBy: s, Kind: MatchSubstring}
		}
	}
	for _, rule := range synonymRules {
		if !strings.Contains(req, rule.Trigger) {
			continue
		}
		for _, s := range skills {
			have := strings.ToLower(s)
			for _, exp := range rule.Expansions {
				if strings.Contains(have, exp) {
					return SkillMatch{Skill: requested, MatchedBy: s, Kind: MatchSynonym}
				}
			}
		}
	}
	return SkillMatch{Skill: requested, Kind: MatchNone}
}

// LocationFactor checks direct location matches, then region expansion, then
// remote availability. The first outcome that applies wins.
func LocationFactor(mc *MatchContext) (FactorResult, LocationMatch) {
	loc := strings.ToLower(strings.TrimSpace(mc.Candidate.Location))

	if loc != "" {
		for _, pref := range mc.Criteria.LocationPreferences {
			p := strings.ToLower(strings.TrimSpace(pref))
			if p != "" && strings.Contains(loc, p) {
				return FactorResult{Name: DimensionLocation, Score: 100, Reason: "direct match: " + pref},
					LocationMatch{Kind: LocationDirect, Term: pref}
			}
		}
		for _, pref := range mc.Criteria.LocationPreferences {
			for _, term := range regionTerms(pref) {
				if containsTerm(loc, term) {
					return FactorResult{Name: DimensionLocation, Score: 100, Reason: "in region " + pref + " via " + term},
						LocationMatch{Kind: LocationRegion, Term: term}
				}
			}
		}
	}

	if strings.Contains(strings.ToLower(mc.Candidate.Availability), "remote") {
		return FactorResult{Name: DimensionLocation, Score: 70, Reason: "open to remote"},
			LocationMatch{Kind: LocationRemote, Term: "remote"}
	}
	return FactorResult{Name: DimensionLocation, Score: 0, Reason: "no location match"},
		LocationMatch{Kind: LocationNone}
}

// ExperienceFactor classifies years against the requested band. Mismatch
// never scores below 50.
func ExperienceFactor(mc *MatchContext) (FactorResult, *ExperienceBand) {
	band, ok := LookupBand(mc.Criteria.ExperienceLevel)
	if !ok {
		return FactorResult{Name: DimensionExperience, Score: 50, Reason: "no experience level"}, nil
	}

	years := max(0, mc.Candidate.ExperienceYears)
	switch {
	case years >= band.Min && years <= band.Max:
		return FactorResult{Name: DimensionExperience, Score: 100, Reason: fmt.Sprintf("%d years within %d-%d", years, band.Min, band.Max)}, &band
	case years >= band.Min-bandToleranceBelow && years <= band.Max+bandToleranceAbove:
		return FactorResult{Name: DimensionExperience, Score: 80, Reason: fmt.Sprintf("%d years near %d-%d", years, band.Min, band.Max)}, &band
	default:
		return FactorResult{Name: DimensionExperience, Score: 50, Reason: fmt.Sprintf("%d years outside %d-%d", years, band.Min, band.Max)}, &band
	}
}

// AvailabilityFactor compares the requested work type with the candidate's
// availability text. Mismatch earns partial credit.
func AvailabilityFactor(mc *MatchContext) FactorResult {
	avail := strings.ToLower(mc.Candidate.Availability)
	workType := strings.ToLower(strings.TrimSpace(mc.Criteria.WorkType))

	if strings.Contains(avail, workType) {
		return FactorResult{Name: DimensionAvailability, Score: 100, Reason: "work type matched"}
	}
	if strings.Contains(workType, "remote") && strings.Contains(avail, "remote") {
		return FactorResult{Name: DimensionAvailability, Score: 100, Reason: "remote matched"}
	}
	return FactorResult{Name: DimensionAvailability, Score: 60, Reason: "partial"}
}

// SpecializationFactor scores the share of specializations found in the
// candidate's summary, projects or title.
func SpecializationFactor(mc *MatchContext) (FactorResult, []string) {
	specs := mc.Criteria.Specializations
	if len(specs) == 0 {
		return FactorResult{Name: DimensionSpecialization, Score: 50, Reason: "no specializations requested"}, nil
	}

	texts := make([]string, 0, len(mc.Candidate.Projects)+2)
	texts = append(texts, strings.ToLower(mc.Candidate.Summary), strings.ToLower(mc.Candidate.Title))
	for _, p := range mc.Candidate.Projects {
		texts = append(texts, strings.ToLower(p))
	}

	var found []string
	for _, spec := range specs {
		s := strings.ToLower(strings.TrimSpace(spec))
		if s == "" {
			continue
		}
		for _, t := range texts {
			if strings.Contains(t, s) {
				found = append(found, spec)
				break
			}
		}
	}

	score := float64(len(found)) / float64(len(specs)) * 100
	return FactorResult{
		Name:   DimensionSpecialization,
		Score:  clamp(score, 0, 100),
		Reason: fmt.Sprintf("%d of %d specializations found", len(found), len(specs)),
	}, found
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
