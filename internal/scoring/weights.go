package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each matching dimension.
// Weights should sum to 1.0 but the composite score tolerates any
// non-negative set; the final score is clamped instead.
type WeightSet struct {
	Skill          float64 `json:"skill"`
	Location       float64 `json:"location"`
	Experience     float64 `json:"experience"`
	Availability   float64 `json:"availability"`
	Specialization float64 `json:"specialization"`
}

// DefaultWeights returns the weight distribution used when a criteria object
// carries no weights at all.
func DefaultWeights() WeightSet {
	return WeightSet{
		Skill:          0.30,
		Location:       0.20,
		Experience:     0.20,
		Availability:   0.10,
		Specialization: 0.20,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Skill + w.Location + w.Experience + w.Availability + w.Specialization
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	for _, v := range w.asList() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid weight: %f", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Sanitize replaces negative, NaN and infinite weights with 0.
func (w WeightSet) Sanitize() WeightSet {
	return WeightSet{
		Skill:          sanitizeWeight(w.Skill),
		Location:       sanitizeWeight(w.Location),
		Experience:     sanitizeWeight(w.Experience),
		Availability:   sanitizeWeight(w.Availability),
		Specialization: sanitizeWeight(w.Specialization),
	}
}

func (w WeightSet) asList() []float64 {
	return []float64{w.Skill, w.Location, w.Experience, w.Availability, w.Specialization}
}

func sanitizeWeight(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
