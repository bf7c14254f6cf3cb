// Package agg turns grouped counts from the document store into Named Scores
// on the Raw sheet of a rating workbook.
package agg

import (
	"context"
	"fmt"
	"slices"

	"github.com/huangsam/mediascore/core/algo"
	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
)

// Section writes one block of scores starting at row and returns the next free row.
type Section func(ctx context.Context, a *Aggregator, row int) (int, error)

// Aggregator issues the grouped-count queries of a build over a fixed document set.
type Aggregator struct {
	store       contract.DocumentStore
	ids         []int64
	scores      *sheet.Builder
	bucketLimit int
}

// New creates an aggregator over the documents ids that writes to scores.
// A bucketLimit below 1 falls back to algo.DefaultBucketLimit.
func New(store contract.DocumentStore, ids []int64, scores *sheet.Builder, bucketLimit int) *Aggregator {
	if bucketLimit < 1 {
		bucketLimit = algo.DefaultBucketLimit
	}
	return &Aggregator{
		store:       store,
		ids:         ids,
		scores:      scores,
		bucketLimit: bucketLimit,
	}
}

// Sections returns the score catalogue of a tree kind, in sheet order.
// Custom trees rate over the children catalogue.
func Sections(kind schema.TreeKind) []Section {
	switch kind {
	case schema.MediaDiversityTree:
		return []Section{totals, taxonomyScores, regionScores, sourceScores}
	default:
		return []Section{
			totals, sourceBuckets, raceScores, ageScores, qualityScores,
			childSourceScores, roleScores, victimScores, principleScores,
			childGenderScores, originScores, topicScores, typeScores,
		}
	}
}

// Run writes the outlet header and every section of the tree's catalogue.
func (a *Aggregator) Run(ctx context.Context, kind schema.TreeKind) error {
	a.scores.WriteHeader()
	row := sheet.FirstScoreRow
	for _, section := range Sections(kind) {
		next, err := section(ctx, a, row)
		if err != nil {
			return err
		}
		row = next - 1 + sheet.SectionGap
	}
	return nil
}

// countDocuments runs a document count with unknown categories normalised.
func (a *Aggregator) countDocuments(ctx context.Context, q schema.DocumentQuery) ([]schema.CountRow, error) {
	rows, err := a.store.CountDocuments(ctx, a.ids, q)
	if err != nil {
		return nil, fmt.Errorf("count documents by %q: %w", q.GroupBy, err)
	}
	if q.GroupBy == schema.NoDocumentDimension {
		return rows, nil
	}
	return normalize(rows), nil
}

// countSources runs a source count with unknown categories normalised.
func (a *Aggregator) countSources(ctx context.Context, q schema.SourceQuery) ([]schema.CountRow, error) {
	rows, err := a.store.CountSources(ctx, a.ids, q)
	if err != nil {
		return nil, fmt.Errorf("count sources by %q: %w", q.GroupBy, err)
	}
	if q.GroupBy == schema.NoSourceDimension {
		return rows, nil
	}
	return normalize(rows), nil
}

// bucketRows counts documents per outlet by their number of sources.
// Bucket labels get suffix appended, e.g. "1 Child Sources".
func (a *Aggregator) bucketRows(ctx context.Context, childOnly bool, suffix string) ([]schema.CountRow, []string, error) {
	perDoc, err := a.store.SourcesPerDocument(ctx, a.ids, childOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("count sources per document: %w", err)
	}
	rows := make([]schema.CountRow, 0, len(perDoc))
	for _, d := range perDoc {
		if d.Sources < 1 {
			continue
		}
		rows = append(rows, schema.CountRow{
			Outlet:   d.Outlet,
			Category: algo.Bucket(d.Sources, a.bucketLimit) + suffix,
			Count:    1,
		})
	}
	labels := algo.BucketLabels(a.bucketLimit)
	for i := range labels {
		labels[i] += suffix
	}
	return rows, labels, nil
}

// row returns the row of an already written score.
func (a *Aggregator) row(label string) (int, error) {
	row, err := a.scores.Row(label)
	if err != nil {
		return 0, fmt.Errorf("score %q must be written first: %w", label, err)
	}
	return row, nil
}

// writeCount writes a per-outlet total as a single score row.
func (a *Aggregator) writeCount(label string, rows []schema.CountRow, row int) error {
	return a.scores.WriteValueRow(label, byOutlet(rows), row)
}

// writeEntropy writes the normalised entropy of rows as a single score row.
func (a *Aggregator) writeEntropy(label string, rows []schema.CountRow, row int) error {
	return a.scores.WriteValueRow(label, entropy(rows), row)
}

// writeTotal writes a SUM over rows [from, to].
func (a *Aggregator) writeTotal(label string, from, to, row int) error {
	return a.scores.WriteFormulaRow(label, sheet.SumRows(from, to), row)
}

// writePercent writes "Percent <label>" as the ratio of the row of label
// to the row of denominator. It returns the next free row.
func (a *Aggregator) writePercent(label, denominator string, row int) (int, error) {
	return a.writePercentOf(sheet.PercentLabel(label), label, denominator, row)
}

// writePercentOf writes the score name as the row of numerator over denominator.
func (a *Aggregator) writePercentOf(name, numerator, denominator string, row int) (int, error) {
	num, err := a.row(numerator)
	if err != nil {
		return row, err
	}
	den, err := a.row(denominator)
	if err != nil {
		return row, err
	}
	if err := a.scores.WritePercentRow(name, den, num, row); err != nil {
		return row, err
	}
	return row + 1, nil
}

// writeTableWithPercents writes a score table, a blank row, and a percent
// table of the same labels over the denominator score.
func (a *Aggregator) writeTableWithPercents(labels []string, rows []schema.CountRow, denominator string, row int) (int, error) {
	den, err := a.row(denominator)
	if err != nil {
		return row, err
	}
	start := row
	next, err := a.scores.WriteScoreTable(labels, rows, row)
	if err != nil {
		return next, err
	}
	return a.scores.WritePercentTable(labels, den, start, next+1)
}

// writeSubsetTotal writes a table of labels, then a SUM row named total over it.
// It returns the row of the total.
func (a *Aggregator) writeSubsetTotal(labels []string, rows []schema.CountRow, total string, row int) (int, error) {
	start := row
	next, err := a.scores.WriteScoreTable(labels, rows, row)
	if err != nil {
		return next, err
	}
	if err := a.writeTotal(total, start, next-1, next); err != nil {
		return next, err
	}
	return next, nil
}

// writeGenderRatio writes female/male and its folding into [0,1].
// It returns the next free row.
func (a *Aggregator) writeGenderRatio(male, female, ratio, score string, row int) (int, error) {
	maleRow, err := a.row(male)
	if err != nil {
		return row, err
	}
	femaleRow, err := a.row(female)
	if err != nil {
		return row, err
	}
	if err := a.scores.WriteFormulaRow(ratio, sheet.Ratio(femaleRow, maleRow), row); err != nil {
		return row, err
	}
	if err := a.scores.WriteFormulaRow(score, sheet.InverseRatio(row), row+1); err != nil {
		return row, err
	}
	return row + 2, nil
}

// normalize replaces empty categories with schema.UnknownCategory.
func normalize(rows []schema.CountRow) []schema.CountRow {
	out := make([]schema.CountRow, len(rows))
	for i, r := range rows {
		if r.Category == "" {
			r.Category = schema.UnknownCategory
		}
		out[i] = r
	}
	return out
}

// categories returns the distinct categories of rows, sorted.
func categories(rows []schema.CountRow) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// withCategories adds labels missing from the observed categories and sorts the result.
func withCategories(observed []string, always ...string) []string {
	out := append(slices.Clone(observed), always...)
	slices.Sort(out)
	return slices.Compact(out)
}

// prefixed renames categories to "<prefix><category>".
func prefixed(prefix string, rows []schema.CountRow) []schema.CountRow {
	out := make([]schema.CountRow, len(rows))
	for i, r := range rows {
		r.Category = prefix + r.Category
		out[i] = r
	}
	return out
}

// prefixedLabels renames labels to "<prefix><label>".
func prefixedLabels(prefix string, labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = prefix + l
	}
	return out
}

// only keeps rows whose category is one of labels.
func only(rows []schema.CountRow, labels ...string) []schema.CountRow {
	var out []schema.CountRow
	for _, r := range rows {
		if slices.Contains(labels, r.Category) {
			out = append(out, r)
		}
	}
	return out
}

// byOutlet sums rows per outlet.
func byOutlet(rows []schema.CountRow) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range rows {
		out[r.Outlet] += r.Count
	}
	return out
}

// entropy computes the normalised entropy of the category mix of each outlet.
func entropy(rows []schema.CountRow) map[string]float64 {
	groups := make(map[string]map[string]float64)
	for _, r := range rows {
		if groups[r.Outlet] == nil {
			groups[r.Outlet] = make(map[string]float64)
		}
		groups[r.Outlet][r.Category] += r.Count
	}
	return algo.NormalizedEntropy(groups)
}
