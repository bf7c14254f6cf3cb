package algo

import "math"

// Default trend parameters.
const (
	DefaultDecay     = 0.8
	DefaultTrendUp   = 0.5
	DefaultTrendDown = -0.5
)

// flatEpsilon is the relative variance below which a history counts as flat.
const flatEpsilon = 1e-12

// EWZScore returns the z-score of the last observation against the
// exponentially weighted mean and deviation of the observations before it.
// decay is the weight kept by the running averages at each step.
//
// An empty series yields 0. A flat history yields the raw difference.
func EWZScore(obs []float64, decay float64) float64 {
	if len(obs) == 0 {
		return 0
	}

	var avg, sqAvg float64
	for i, x := range obs {
		switch {
		case i == 0:
			avg = x
			sqAvg = x * x
		case i < len(obs)-1:
			avg = avg*decay + (1-decay)*x
			sqAvg = sqAvg*decay + (1-decay)*x*x
		}
	}

	last := obs[len(obs)-1]
	variance := sqAvg - avg*avg
	if variance <= flatEpsilon*math.Max(1, sqAvg) {
		return last - avg
	}
	return (last - avg) / math.Sqrt(variance)
}
