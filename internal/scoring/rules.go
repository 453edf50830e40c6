package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchKind records how a requested skill was satisfied.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchSynonym   MatchKind = "synonym"
	MatchNone      MatchKind = "none"
)

// SynonymRule lets a requested skill containing Trigger match any candidate
// skill containing one of Expansions. Both sides are compared lower-cased.
type SynonymRule struct {
	Trigger    string
	Expansions []string
}

var synonymRules = []SynonymRule{
	{Trigger: "ai", Expansions: []string{"artificial"}},
	{Trigger: "ml", Expansions: []string{"machine learning"}},
	{Trigger: "llm", Expansions: []string{"language model"}},
	{Trigger: "nlp", Expansions: []string{"natural language"}},
	{Trigger: "k8s", Expansions: []string{"kubernetes"}},
}

// SynonymRules returns a copy of the synonym table.
func SynonymRules() []SynonymRule {
	out := make([]SynonymRule, len(synonymRules))
	copy(out, synonymRules)
	return out
}

// regionCountries expands a requested region into location terms. Terms are
// matched on word boundaries so "uk" does not hit "Milwaukee".
var regionCountries = map[string][]string{
	"europe": {
		"germany", "netherlands", "poland", "sweden", "uk", "united kingdom", "england", "scotland",
		"france", "spain", "italy", "portugal", "ireland", "switzerland", "austria", "belgium",
		"denmark", "norway", "finland", "czech", "estonia", "lithuania", "latvia", "romania",
		"greece", "hungary", "ukraine", "berlin", "munich", "amsterdam", "london", "paris",
		"madrid", "barcelona", "lisbon", "warsaw", "stockholm", "dublin", "zurich", "vienna",
	},
	"north america": {"usa", "united states", "us", "canada", "mexico", "new york", "san francisco", "toronto"},
	"latin america": {"brazil", "argentina", "colombia", "chile", "peru", "mexico", "uruguay"},
	"asia":          {"india", "singapore", "japan", "china", "korea", "vietnam", "indonesia", "philippines", "thailand"},
	"middle east":   {"israel", "uae", "united arab emirates", "dubai", "saudi arabia", "qatar", "turkey"},
	"oceania":       {"australia", "new zealand", "sydney", "melbourne", "auckland"},
}

var regionAliases = map[string]string{
	"eu":    "europe",
	"emea":  "europe",
	"na":    "north america",
	"latam": "latin america",
	"apac":  "asia",
	"anz":   "oceania",
}

// ExperienceBand is an inclusive range of years.
type ExperienceBand struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var experienceBands = map[string]ExperienceBand{
	"junior":    {Min: 0, Max: 3},
	"mid":       {Min: 3, Max: 6},
	"senior":    {Min: 5, Max: 10},
	"lead":      {Min: 7, Max: 15},
	"principal": {Min: 10, Max: 20},
}

// Tolerance around a band that still earns partial credit.
const (
	bandToleranceBelow = 1
	bandToleranceAbove = 2
)

// LookupBand resolves an experience level. Unknown levels report false.
func LookupBand(level string) (ExperienceBand, bool) {
	b, ok := experienceBands[strings.ToLower(strings.TrimSpace(level))]
	return b, ok
}

// regionTerms returns the expansion for a requested location, or nil if the
// location is not a known region.
func regionTerms(location string) []string {
	key := strings.ToLower(strings.TrimSpace(location))
	if alias, ok := regionAliases[key]; ok {
		key = alias
	}
	return regionCountries[key]
}

// containsTerm reports whether term occurs in text bounded by non-alphanumerics.
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for start := 0; start <= len(text)-len(term); {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(term)
		if boundaryBefore(text, idx) && boundaryAfter(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
