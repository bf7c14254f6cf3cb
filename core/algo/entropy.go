// Package algo has the numeric building blocks for ratings and trends.
package algo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NormalizedEntropy computes the Shannon entropy of each group's category
// distribution, divided by ln(K) where K is the number of distinct categories
// observed across all groups. The result for each group is in [0, 1]:
// 0 when all mass is in one category, 1 when the group is uniform over all K.
//
// Groups with a zero total, and all groups when K <= 1, yield 0.
func NormalizedEntropy(groups map[string]map[string]float64) map[string]float64 {
	categories := make(map[string]struct{})
	for _, counts := range groups {
		for label := range counts {
			categories[label] = struct{}{}
		}
	}

	result := make(map[string]float64, len(groups))
	k := len(categories)
	for group, counts := range groups {
		if k <= 1 {
			result[group] = 0
			continue
		}
		result[group] = groupEntropy(counts) / math.Log(float64(k))
		result[group] = math.Max(0, math.Min(1, result[group]))
	}
	return result
}

// groupEntropy returns the entropy in nats of a single count distribution.
func groupEntropy(counts map[string]float64) float64 {
	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		if c > 0 {
			values = append(values, c)
		}
	}
	total := floats.Sum(values)
	if total <= 0 {
		return 0
	}
	floats.Scale(1/total, values)
	return stat.Entropy(values)
}
