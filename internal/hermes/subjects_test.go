package hermes

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "scout.search.abc.ranked", SubjectSearchRanked("abc"))
	assert.Equal(t, "scout.search.abc.failed", SubjectSearchFailed("abc"))
	assert.Equal(t, "scout.candidate.c-1.upserted", SubjectCandidateUpserted("c-1"))
	assert.False(t, strings.Contains(SubjectSearchRequest, "*"))
}

func TestStreamMaxAgeParses(t *testing.T) {
	d, err := time.ParseDuration(StreamMaxAge)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, d)
}

func TestSearchRequestEventCriteriaPassthrough(t *testing.T) {
	raw := []byte(`{"query":"senior go engineer","criteria":{"relevantSkills":["Go"]},"top_k":5}`)
	var ev SearchRequestEvent
	require.NoError(t, json.Unmarshal(raw, &ev))
	assert.Equal(t, "senior go engineer", ev.Query)
	require.NotNil(t, ev.TopK)
	assert.Equal(t, 5, *ev.TopK)
	assert.JSONEq(t, `{"relevantSkills":["Go"]}`, string(ev.Criteria))
}

func TestSearchRequestEventTopKAbsent(t *testing.T) {
	var ev SearchRequestEvent
	require.NoError(t, json.Unmarshal([]byte(`{"query":"go"}`), &ev))
	assert.Nil(t, ev.TopK)

	require.NoError(t, json.Unmarshal([]byte(`{"query":"go","top_k":0}`), &ev))
	require.NotNil(t, ev.TopK)
	assert.Equal(t, 0, *ev.TopK)
}

func TestValidToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"c-1", true},
		{"req_42", true},
		{"", false},
		{"a.b", false},
		{"a*", false},
		{"a>", false},
		{"a b", false},
		{"a\tb", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidToken(tt.in), "ValidToken(%q)", tt.in)
	}
}
