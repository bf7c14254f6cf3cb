package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ratingJSON is the JSON shape of a rating build.
type ratingJSON struct {
	schema.RatingResult
	Ranking []schema.RankedOutlet `json:"ranking"`
}

// WriteRatingResults outputs a rating build, dispatching based on the output format configured.
func WriteRatingResults(result schema.RatingResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRatingJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRatingCSV(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRatingTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

func writeRatingJSON(w io.Writer, result schema.RatingResult) error {
	return writeJSON(w, ratingJSON{RatingResult: result, Ranking: schema.RankOutlets(result)})
}

// writeRatingCSV writes one line per tree node with a value column per outlet.
func writeRatingCSV(w io.Writer, result schema.RatingResult, fmtFloat func(float64) string) error {
	header := append([]string{"position", "depth", "label", "weight", "leaf"}, result.Outlets...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for pos, row := range result.Ratings {
			record := []string{
				strconv.Itoa(pos),
				strconv.Itoa(row.Depth),
				row.Label,
				strconv.FormatFloat(row.Weight, 'f', -1, 64),
				strconv.FormatBool(row.Leaf),
			}
			for _, v := range row.Values {
				record = append(record, fmtFloat(v))
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// writeRatingTable writes the rating tree with its values, then the outlet ranking.
func writeRatingTable(w io.Writer, result schema.RatingResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header(append([]string{"Weight", "Rating"}, result.Outlets...))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxTableLabelWidth(cfg, len(result.Outlets)+1)
	var data [][]string
	for _, row := range result.Ratings {
		record := []string{
			strconv.FormatFloat(row.Weight, 'f', -1, 64),
			indentLabel(row.Label, row.Depth, maxWidth),
		}
		for _, v := range row.Values {
			record = append(record, fmtFloat(v))
		}
		data = append(data, record)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeRankingTable(w, schema.RankOutlets(result), cfg, fmtFloat); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Rated %d outlets over %d documents (tree: %s)\n", len(result.Outlets), result.Documents, result.Tree); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Build completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

func writeRankingTable(w io.Writer, ranked []schema.RankedOutlet, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(ranked) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Outlet", "Rating", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range ranked {
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			r.Outlet,
			fmtFloat(r.Rating),
			colorLabel(r.Label, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
