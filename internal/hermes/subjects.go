package hermes

import "strings"

const (
	SubjectSearchRequest = "scout.search.request"

	StreamName   = "SCOUT_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectSearchRanked(searchID string) string { return "scout.search." + searchID + ".ranked" }
func SubjectSearchFailed(searchID string) string { return "scout.search." + searchID + ".failed" }

// Candidate pool changes made through the admin API.
func SubjectCandidateUpserted(candidateID string) string {
	return "scout.candidate." + candidateID + ".upserted"
}

// ValidToken reports whether s can stand as a single subject token: it is
// non-empty and free of separators, wildcards and whitespace.
func ValidToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".*> \t\r\n")
}
