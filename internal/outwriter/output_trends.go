package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Trend report sections, in display order.
const (
	topSection     = "top"
	upSection      = "trending_up"
	downSection    = "trending_down"
	problemSection = "problem"
)

// trendSection pairs a section of the report with its title.
type trendSection struct {
	key     string
	title   string
	sources []schema.AnalysedSource
}

func trendSections(report schema.TrendReport) []trendSection {
	return []trendSection{
		{topSection, "Top sources", report.TopPeople},
		{upSection, "Trending up", report.TrendingUp},
		{downSection, "Trending down", report.TrendingDown},
	}
}

// WriteTrendReport outputs a source trend report, dispatching based on the output format configured.
func WriteTrendReport(report schema.TrendReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendCSV(w, report, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(w, report, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// writeTrendCSV writes every ranked person of every section, then the problem people.
func writeTrendCSV(w io.Writer, report schema.TrendReport, fmtFloat func(float64) string) error {
	header := []string{"section", "rank", "person_id", "person", "total", "utterances", "trend", "normalised"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, section := range trendSections(report) {
			for i, s := range section.sources {
				record := []string{
					section.key,
					strconv.Itoa(i + 1),
					strconv.FormatInt(s.Person.ID, 10),
					s.Person.Name,
					strconv.Itoa(s.Total),
					strconv.Itoa(s.UtteranceCount),
					fmtFloat(s.Trend),
					fmtFloat(s.Normalised),
				}
				if err := cw.Write(record); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		for i, p := range report.ProblemPeople {
			record := []string{
				problemSection,
				strconv.Itoa(i + 1),
				strconv.FormatInt(p.ID, 10),
				p.Name,
				strconv.Itoa(p.Sources),
				"", "", "",
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeTrendTable(w io.Writer, report schema.TrendReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	maxWidth := getMaxTableLabelWidth(cfg, 4)
	for _, section := range trendSections(report) {
		if len(section.sources) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", section.title); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Person", "Total", "Quotes", "Trend", "Share"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for i, s := range section.sources {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncateLabel(s.Person.Name, maxWidth),
				strconv.Itoa(s.Total),
				strconv.Itoa(s.UtteranceCount),
				fmtFloat(s.Trend),
				fmtFloat(s.Normalised),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if err := writeQuoteTable(w, report, maxWidth); err != nil {
		return err
	}
	if err := writeProblemTable(w, report.ProblemPeople); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Analysed %d days from %s to %s\n", report.Days,
		report.Start.Format(time.DateOnly), report.End.Format(time.DateOnly)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v. Document backend: %s\n", duration, cfg.DocumentBackend); err != nil {
		return err
	}
	return nil
}

// writeQuoteTable lists the selected quotes of the top people, in ranking order.
func writeQuoteTable(w io.Writer, report schema.TrendReport, maxWidth int) error {
	var data [][]string
	for _, s := range report.TopPeople {
		for _, u := range report.Utterances[s.Person.ID] {
			data = append(data, []string{
				contract.TruncateLabel(s.Person.Name, 24),
				strconv.Itoa(u.Count),
				u.Sample.Outlet,
				contract.TruncateLabel(u.Quote, maxWidth),
			})
		}
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Quotes"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Person", "Count", "Outlet", "Quote"})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeProblemTable(w io.Writer, people []schema.PersonSourceCount) error {
	if len(people) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sources missing details"); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Person", "Sources", "Missing"})
	var data [][]string
	for _, p := range people {
		data = append(data, []string{p.Name, strconv.Itoa(p.Sources), missingDetails(p.Person)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// missingDetails names the person fields that are not filled in.
func missingDetails(p schema.Person) string {
	var missing []string
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if p.Race == "" {
		missing = append(missing, "race")
	}
	if p.Affiliation == "" {
		missing = append(missing, "affiliation")
	}
	return strings.Join(missing, ", ")
}
