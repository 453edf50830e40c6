package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidCriteria = "invalid_criteria"
	OutcomeInterpreter     = "interpreter_error"
	OutcomeStore           = "store_error"
	OutcomeCancelled       = "cancelled"
)

type Metrics struct {
	Searches          *prometheus.CounterVec
	CandidatesScored  prometheus.Counter
	CandidatesSkipped prometheus.Counter
	RankDuration      prometheus.Histogram
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production so promhttp.Handler serves them.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scout_searches_total",
			Help: "Searches handled, by outcome.",
		}, []string{"outcome"}),
		CandidatesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_candidates_scored_total",
			Help: "Candidates scored across all searches.",
		}),
		CandidatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_candidates_skipped_total",
			Help: "Candidate records skipped as unusable.",
		}),
		RankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scout_rank_duration_seconds",
			Help:    "Time spent scoring and ranking one candidate pool.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Searches, m.CandidatesScored, m.CandidatesSkipped, m.RankDuration)
	}
	return m
}

// ObserveRank records one completed ranking pass. Safe on a nil receiver.
func (m *Metrics) ObserveRank(d time.Duration, scored, skipped int) {
	if m == nil {
		return
	}
	m.RankDuration.Observe(d.Seconds())
	m.CandidatesScored.Add(float64(scored))
	m.CandidatesSkipped.Add(float64(skipped))
}

// Search counts one search with the given outcome. Safe on a nil receiver.
func (m *Metrics) Search(outcome string) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
}

// Skipped counts candidate records dropped before ranking.
func (m *Metrics) Skipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.CandidatesSkipped.Add(float64(n))
}
