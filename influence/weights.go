package influence

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DepthWeight is one entry of the depth-weight table.
type DepthWeight struct {
	Depth  int     `yaml:"depth"`
	Weight float64 `yaml:"weight"`
}

// Weights is the decay schedule mapping hop depth to contribution weight.
// The zero value has no depths and rejects every Compute call.
type Weights struct {
	byDepth []float64 // byDepth[d-1] is the weight of depth d
}

// DefaultWeights returns the classic 1.0 / 0.65 / 0.2 three-hop schedule.
func DefaultWeights() Weights {
	return Weights{byDepth: []float64{1.0, 0.65, 0.2}}
}

// NewWeights builds a table from entries whose depths must be the consecutive
// integers 1..n (in that order) with non-negative weights. A weight that rises
// with depth is accepted but logged.
func NewWeights(entries ...DepthWeight) (Weights, error) {
	if len(entries) == 0 {
		return Weights{}, errors.Wrap(ErrInvalidWeights, "no entries")
	}
	byDepth := make([]float64, len(entries))
	for i, e := range entries {
		if e.Depth != i+1 {
			return Weights{}, errors.Wrapf(ErrInvalidWeights, "entry %d has depth %d, want %d", i, e.Depth, i+1)
		}
		if e.Weight < 0 {
			return Weights{}, errors.Wrapf(ErrInvalidWeights, "depth %d has negative weight %g", e.Depth, e.Weight)
		}
		if i > 0 && e.Weight > byDepth[i-1] {
			log.Warn().Int("depth", e.Depth).Float64("weight", e.Weight).Float64("previous", byDepth[i-1]).
				Msg("depth weight increases with depth")
		}
		byDepth[i] = e.Weight
	}
	return Weights{byDepth: byDepth}, nil
}

// MaxDepth is the deepest hop the table has a weight for.
func (w Weights) MaxDepth() int { return len(w.byDepth) }

// Weight returns the contribution of a hop at depth, or 0 outside the table.
func (w Weights) Weight(depth int) float64 {
	if depth < 1 || depth > len(w.byDepth) {
		return 0
	}
	return w.byDepth[depth-1]
}

// Entries returns the table as (depth, weight) pairs.
func (w Weights) Entries() []DepthWeight {
	out := make([]DepthWeight, len(w.byDepth))
	for i, wt := range w.byDepth {
		out[i] = DepthWeight{Depth: i + 1, Weight: wt}
	}
	return out
}
