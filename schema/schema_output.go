package schema

import "sort"

// RankedOutlet adds presentation data to an outlet's final rating.
type RankedOutlet struct {
	Rank   int     `json:"rank"`
	Outlet string  `json:"outlet"`
	Rating float64 `json:"rating"`
	Label  string  `json:"label"`
}

// GetPlainLabel returns a plain text label for a rating in [0, 1].
// Ratings above 1 are possible when tree weights do not sum to 1.
func GetPlainLabel(rating float64) string {
	switch {
	case rating >= 0.75:
		return "Strong"
	case rating >= 0.5:
		return "Fair"
	case rating >= 0.25:
		return "Weak"
	default:
		return "Poor"
	}
}

// RankOutlets orders outlets by their final rating, best first, ties by name.
func RankOutlets(result RatingResult) []RankedOutlet {
	final := result.FinalRatings()
	output := make([]RankedOutlet, 0, len(final))
	for _, name := range result.Outlets {
		output = append(output, RankedOutlet{Outlet: name, Rating: final[name]})
	}
	sort.SliceStable(output, func(i, j int) bool {
		if output[i].Rating != output[j].Rating {
			return output[i].Rating > output[j].Rating
		}
		return output[i].Outlet < output[j].Outlet
	})
	for i := range output {
		output[i].Rank = i + 1
		output[i].Label = GetPlainLabel(output[i].Rating)
	}
	return output
}
