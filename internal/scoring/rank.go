package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Scout/internal/store"
)

// ErrInvalidCandidate marks a candidate record that cannot be scored.
var ErrInvalidCandidate = errors.New("invalid candidate")

const (
	// AutoTopK asks the ranker for its configured default K. An explicit 0
	// is a real K and yields an empty result.
	AutoTopK = -1

	DefaultTopK              = 20
	DefaultMaxTopK           = 100
	DefaultLocationThreshold = 50
)

// RankerConfig is loaded once at startup and shared by every request.
type RankerConfig struct {
	DefaultWeights    WeightSet
	DefaultTopK       int
	MaxTopK           int
	Workers           int
	LocationThreshold float64
}

// ResultSummary aggregates the truncated result set. Min and max experience
// are nil when the set is empty.
type ResultSummary struct {
	Count                 int            `json:"count"`
	AverageScore          int            `json:"average_score"`
	MinExperience         *int           `json:"min_experience,omitempty"`
	MaxExperience         *int           `json:"max_experience,omitempty"`
	TopK                  int            `json:"top_k"`
	StrongLocationMatches int            `json:"strong_location_matches"`
	Skills                []string       `json:"skills"`
	Criteria              SearchCriteria `json:"criteria"`
	Scored                int            `json:"scored"`
	Skipped               int            `json:"skipped"`
}

// RankResult is the output of one ranking request.
type RankResult struct {
	Results []ScoredCandidate `json:"results"`
	Summary ResultSummary     `json:"summary"`
}

// Ranker scores a candidate pool concurrently and returns the top K.
// It holds no per-request state.
type Ranker struct {
	cfg    RankerConfig
	scorer *Scorer
	logger *slog.Logger
	now    func() time.Time
}

func NewRanker(cfg RankerConfig, logger *slog.Logger) *Ranker {
	if cfg.DefaultWeights == (WeightSet{}) {
		cfg.DefaultWeights = DefaultWeights()
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = DefaultTopK
	}
	if cfg.MaxTopK <= 0 {
		cfg.MaxTopK = DefaultMaxTopK
	}
	if cfg.MaxTopK < cfg.DefaultTopK {
		cfg.MaxTopK = cfg.DefaultTopK
	}
	if cfg.LocationThreshold <= 0 {
		cfg.LocationThreshold = DefaultLocationThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ranker{
		cfg:    cfg,
		scorer: NewScorer(logger),
		logger: logger,
		now:    time.Now,
	}
}

// DefaultWeights returns the weights applied to criteria that carry none.
func (r *Ranker) DefaultWeights() WeightSet {
	return r.cfg.DefaultWeights
}

// Rank scores every usable candidate, sorts by final score descending with
// ties kept in pool order, and truncates to topK. A negative topK uses the
// configured default and values above MaxTopK are capped; the K actually
// applied is reported in the summary.
// Candidates without an id are skipped. If ctx is cancelled no results are
// returned.
func (r *Ranker) Rank(ctx context.Context, criteria *SearchCriteria, candidates []*store.Candidate, topK int) (*RankResult, error) {
	if criteria == nil {
		return nil, fmt.Errorf("%w: criteria is required", ErrInvalidCriteria)
	}
	crit := criteria.Normalize()
	if err := crit.ScoringWeights.Validate(); err != nil {
		r.logger.Warn("scoring weights not normalized, final scores will be clamped", "error", err)
	}

	k := r.resolveTopK(topK)
	now := r.now()

	pool := make([]*store.Candidate, 0, len(candidates))
	skipped := 0
	for i, c := range candidates {
		if err := validateCandidate(c); err != nil {
			skipped++
			r.logger.Warn("skipping candidate", "index", i, "error", err)
			continue
		}
		pool = append(pool, sanitizeCandidate(c))
	}

	results := make([]ScoredCandidate, len(pool))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i := range pool {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.scorer.ScoreCandidate(&MatchContext{
				Criteria:  &crit,
				Candidate: pool[i],
				Now:       now,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	if len(results) > k {
		results = results[:k]
	}

	summary := summarize(results, crit, r.cfg.LocationThreshold)
	summary.Scored = len(pool)
	summary.Skipped = skipped
	summary.TopK = k

	return &RankResult{Results: results, Summary: summary}, nil
}

func (r *Ranker) resolveTopK(topK int) int {
	switch {
	case topK < 0:
		return r.cfg.DefaultTopK
	case topK > r.cfg.MaxTopK:
		r.logger.Debug("top_k capped", "requested", topK, "max", r.cfg.MaxTopK)
		return r.cfg.MaxTopK
	default:
		return topK
	}
}

// MaxTopK is the largest K the ranker will apply.
func (r *Ranker) MaxTopK() int {
	return r.cfg.MaxTopK
}

func (r *Ranker) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func validateCandidate(c *store.Candidate) error {
	if c == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidCandidate)
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: missing candidate_id", ErrInvalidCandidate)
	}
	return nil
}

// sanitizeCandidate returns a copy with negative counters treated as 0.
func sanitizeCandidate(c *store.Candidate) *store.Candidate {
	cp := *c
	cp.ExperienceYears = max(0, cp.ExperienceYears)
	cp.PublicationsCount = max(0, cp.PublicationsCount)
	cp.ReputationScore = max(0, cp.ReputationScore)
	return &cp
}

func summarize(results []ScoredCandidate, crit SearchCriteria, locationThreshold float64) ResultSummary {
	summary := ResultSummary{
		Count:    len(results),
		Skills:   crit.RelevantSkills,
		Criteria: crit,
	}
	if len(results) == 0 {
		return summary
	}

	minExp, maxExp := results[0].ExperienceYears, results[0].ExperienceYears
	var total int
	for _, r := range results {
		total += r.FinalScore
		minExp = min(minExp, r.ExperienceYears)
		maxExp = max(maxExp, r.ExperienceYears)
		if r.Match.LocationMatch > locationThreshold {
			summary.StrongLocationMatches++
		}
	}
	summary.AverageScore = int(math.Round(float64(total) / float64(len(results))))
	summary.MinExperience = &minExp
	summary.MaxExperience = &maxExp
	return summary
}
