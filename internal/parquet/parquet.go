// Package parquet provides data structures and functions for exporting build
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/mediascore/schema"
	"github.com/parquet-go/parquet-go"
)

// Build represents a single rating build with metadata.
// This struct maps to the mediascore_builds database table.
type Build struct {
	// BuildID is the unique identifier for this build
	BuildID int64 `parquet:"build_id,snappy"`

	// Tree is the rating tree the build evaluated
	Tree string `parquet:"tree,snappy"`

	// StartTime is when the build began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the build completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the build in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalDocuments int32 `parquet:"total_documents,snappy"`
	TotalOutlets   int32 `parquet:"total_outlets,snappy"`

	// ConfigParams contains the JSON-encoded build settings (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RatingValue is the value of one rating tree node for one outlet.
// This struct maps to the mediascore_rating_values database table.
type RatingValue struct {
	BuildID int64 `parquet:"build_id,snappy"`

	// Position is the pre-order index of the node in its tree
	Position int32   `parquet:"position,snappy"`
	Depth    int32   `parquet:"depth,snappy"`
	Label    string  `parquet:"label,snappy,dict"`
	Weight   float64 `parquet:"weight,snappy"`
	Outlet   string  `parquet:"outlet,snappy,dict"`
	Value    float64 `parquet:"value,snappy"`
}

// NamedScore is the value of one Named Score for one outlet.
// This struct maps to the mediascore_named_scores database table.
type NamedScore struct {
	BuildID int64   `parquet:"build_id,snappy"`
	Label   string  `parquet:"label,snappy,dict"`
	Outlet  string  `parquet:"outlet,snappy,dict"`
	Value   float64 `parquet:"value,snappy"`
}

// WriteBuildsParquet writes a slice of Build structs to a Parquet file.
func WriteBuildsParquet(data []Build, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRatingValuesParquet writes a slice of RatingValue structs to a Parquet file.
func WriteRatingValuesParquet(data []RatingValue, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteNamedScoresParquet writes a slice of NamedScore structs to a Parquet file.
func WriteNamedScoresParquet(data []NamedScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to a new file. The schema is derived from the
// struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// ConvertBuildRecords converts schema.BuildRecord to Build for Parquet export.
func ConvertBuildRecords(records []schema.BuildRecord) []Build {
	result := make([]Build, len(records))
	for i, record := range records {
		result[i] = Build{
			BuildID:        record.BuildID,
			Tree:           record.Tree,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalDocuments: record.TotalDocuments,
			TotalOutlets:   record.TotalOutlets,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertRatingValueRecords converts schema.RatingValueRecord to RatingValue for Parquet export.
func ConvertRatingValueRecords(records []schema.RatingValueRecord) []RatingValue {
	result := make([]RatingValue, len(records))
	for i, record := range records {
		result[i] = RatingValue(record)
	}
	return result
}

// ConvertNamedScoreRecords converts schema.NamedScoreRecord to NamedScore for Parquet export.
func ConvertNamedScoreRecords(records []schema.NamedScoreRecord) []NamedScore {
	result := make([]NamedScore, len(records))
	for i, record := range records {
		result[i] = NamedScore(record)
	}
	return result
}
