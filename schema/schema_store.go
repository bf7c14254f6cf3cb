package schema

import "time"

// BuildRecord represents a row from the mediascore_builds table.
type BuildRecord struct {
	BuildID        int64
	Tree           string
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalDocuments int32
	TotalOutlets   int32
	ConfigParams   *string
}

// RatingValueRecord represents a row from the mediascore_rating_values table.
type RatingValueRecord struct {
	BuildID  int64
	Position int32
	Depth    int32
	Label    string
	Weight   float64
	Outlet   string
	Value    float64
}

// NamedScoreRecord represents a row from the mediascore_named_scores table.
type NamedScoreRecord struct {
	BuildID int64
	Label   string
	Outlet  string
	Value   float64
}
