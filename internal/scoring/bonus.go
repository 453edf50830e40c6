package scoring

import (
	"strings"
	"time"
)

const (
	publicationsThreshold = 5
	reputationThreshold   = 1000
	seniorityYears        = 5
	recencyWindow         = 48 * time.Hour

	publicationsBonus = 5
	reputationBonus   = 5
	seniorityBonus    = 3
	recencyBonus      = 2

	// MaxBonus is the largest bonus any candidate can earn.
	MaxBonus = publicationsBonus + reputationBonus + seniorityBonus + recencyBonus
)

// Bonus reasons reported in explanations.
const (
	BonusPublications   = "publications"
	BonusReputation     = "reputation"
	BonusExperience     = "experience"
	BonusRecentActivity = "recent_activity"
)

// BonusFactor returns the additive reputation bonus in [0, MaxBonus] and the
// reasons that earned it.
func BonusFactor(mc *MatchContext) (float64, []string) {
	c := mc.Candidate
	var bonus float64
	var reasons []string

	if c.PublicationsCount > publicationsThreshold {
		bonus += publicationsBonus
		reasons = append(reasons, BonusPublications)
	}
	if c.ReputationScore > reputationThreshold {
		bonus += reputationBonus
		reasons = append(reasons, BonusReputation)
	}
	if c.ExperienceYears >= seniorityYears {
		bonus += seniorityBonus
		reasons = append(reasons, BonusExperience)
	}
	if recentlyActive(c.RecencySignal, mc.Now) {
		bonus += recencyBonus
		reasons = append(reasons, BonusRecentActivity)
	}
	return bonus, reasons
}

// recentlyActive accepts free text such as "3 hours ago" or "1 day ago", or a
// timestamp within recencyWindow before now.
func recentlyActive(signal string, now time.Time) bool {
	s := strings.ToLower(strings.TrimSpace(signal))
	if s == "" {
		return false
	}
	if strings.Contains(s, "hour") || strings.Contains(s, "day") {
		return true
	}
	if now.IsZero() {
		return false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		t, err := time.Parse(layout, strings.TrimSpace(signal))
		if err != nil {
			continue
		}
		d := now.Sub(t)
		return d >= 0 && d <= recencyWindow
	}
	return false
}
