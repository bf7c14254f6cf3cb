package algo

import (
	"sort"

	"github.com/huangsam/mediascore/schema"
)

// RankByTotal sorts sources by total mentions in descending order and
// returns the top 'limit'. Ties keep person id order.
func RankByTotal(sources []schema.AnalysedSource, limit int) []schema.AnalysedSource {
	ranked := make([]schema.AnalysedSource, len(sources))
	copy(ranked, sources)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	if len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// TrendingUp returns, among the 'limit' highest trends, the sources whose
// trend exceeds threshold, most trending first.
func TrendingUp(sources []schema.AnalysedSource, limit int, threshold float64) []schema.AnalysedSource {
	ranked := sortedByTrend(sources)
	start := max(0, len(ranked)-limit)

	var up []schema.AnalysedSource
	for i := len(ranked) - 1; i >= start; i-- {
		if ranked[i].Trend > threshold {
			up = append(up, ranked[i])
		}
	}
	return up
}

// TrendingDown returns, among the 'limit' lowest trends, the sources whose
// trend is below threshold, most trending first.
func TrendingDown(sources []schema.AnalysedSource, limit int, threshold float64) []schema.AnalysedSource {
	ranked := sortedByTrend(sources)
	end := min(limit, len(ranked))

	var down []schema.AnalysedSource
	for _, s := range ranked[:end] {
		if s.Trend < threshold {
			down = append(down, s)
		}
	}
	return down
}

// sortedByTrend returns a copy of sources sorted by ascending trend.
func sortedByTrend(sources []schema.AnalysedSource) []schema.AnalysedSource {
	ranked := make([]schema.AnalysedSource, len(sources))
	copy(ranked, sources)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Trend < ranked[j].Trend
	})
	return ranked
}
