package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/parquet"
)

// Export suffixes appended to the output prefix.
const (
	BuildsSuffix       = ".builds.parquet"
	RatingValuesSuffix = ".rating_values.parquet"
	NamedScoresSuffix  = ".named_scores.parquet"
)

// Export writes the whole build history to three Parquet files named after
// outputFile. Progress messages go to out.
func Export(store contract.HistoryStore, outputFile string, out io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalBuilds == 0 {
		return errors.New("no build history found to export")
	}

	_, _ = fmt.Fprintf(out, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(out, "Total builds: %d\n", status.TotalBuilds)

	builds, err := store.GetAllBuilds()
	if err != nil {
		return fmt.Errorf("failed to retrieve builds: %w", err)
	}
	ratings, err := store.GetAllRatingValues()
	if err != nil {
		return fmt.Errorf("failed to retrieve rating values: %w", err)
	}
	scores, err := store.GetAllNamedScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve named scores: %w", err)
	}

	buildsFile := outputFile + BuildsSuffix
	if err := parquet.WriteBuildsParquet(parquet.ConvertBuildRecords(builds), buildsFile); err != nil {
		return fmt.Errorf("failed to write builds: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d builds to: %s\n", len(builds), buildsFile)

	ratingsFile := outputFile + RatingValuesSuffix
	if err := parquet.WriteRatingValuesParquet(parquet.ConvertRatingValueRecords(ratings), ratingsFile); err != nil {
		return fmt.Errorf("failed to write rating values: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d rating values to: %s\n", len(ratings), ratingsFile)

	scoresFile := outputFile + NamedScoresSuffix
	if err := parquet.WriteNamedScoresParquet(parquet.ConvertNamedScoreRecords(scores), scoresFile); err != nil {
		return fmt.Errorf("failed to write named scores: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d named scores to: %s\n", len(scores), scoresFile)

	return nil
}
