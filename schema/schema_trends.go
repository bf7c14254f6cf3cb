package schema

import "time"

// AnalysedSource is the trend analysis of one source person.
type AnalysedSource struct {
	Person         Person    `json:"person"`
	UtteranceCount int       `json:"utterance_count"`
	SourceCounts   []float64 `json:"source_counts"` // daily share of all mentions, in percent
	Total          int       `json:"total"`
	Trend          float64   `json:"trend"`
	Normalised     float64   `json:"normalised"` // total relative to the most used source
}

// AnalysedUtterance is a group of identical quotes by one person.
type AnalysedUtterance struct {
	Quote      string      `json:"quote"`
	Count      int         `json:"count"`
	Utterances []Utterance `json:"utterances"`
	Sample     Utterance   `json:"sample"`
}

// TrendReport is the outcome of a source trend analysis.
type TrendReport struct {
	Start         time.Time                     `json:"start"`
	End           time.Time                     `json:"end"`
	Days          int                           `json:"days"`
	TopPeople     []AnalysedSource              `json:"top_people"`
	TrendingUp    []AnalysedSource              `json:"trending_up"`
	TrendingDown  []AnalysedSource              `json:"trending_down"`
	Utterances    map[int64][]AnalysedUtterance `json:"utterances"`
	ProblemPeople []PersonSourceCount           `json:"problem_people"`
}
