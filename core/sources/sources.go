// Package sources analyses how often people are used as sources over a
// period: daily share series, trend scores and representative quotes.
package sources

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/mediascore/core/algo"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/schema"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// Default report sizes.
const (
	DefaultTopLimit     = 20
	DefaultTrendLimit   = 10
	DefaultQuoteLimit   = 10
	DefaultPerDocument  = 2
	DefaultProblemLimit = 20
)

const day = 24 * time.Hour

// Options tune a trend analysis. Zero values fall back to the defaults.
type Options struct {
	Start      time.Time // zero means the earliest mention
	End        time.Time // zero means the latest mention
	Decay      float64
	TrendUp    float64
	TrendDown  float64
	TopLimit   int
	TrendLimit int
	QuoteLimit int

	// PerDocument caps the kept quote groups a single document may contribute to.
	PerDocument int
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.Decay <= 0 || o.Decay >= 1 {
		o.Decay = algo.DefaultDecay
	}
	if o.TrendUp == 0 && o.TrendDown == 0 {
		o.TrendUp, o.TrendDown = algo.DefaultTrendUp, algo.DefaultTrendDown
	}
	if o.TopLimit < 1 {
		o.TopLimit = DefaultTopLimit
	}
	if o.TrendLimit < 1 {
		o.TrendLimit = DefaultTrendLimit
	}
	if o.QuoteLimit < 1 {
		o.QuoteLimit = DefaultQuoteLimit
	}
	if o.PerDocument < 1 {
		o.PerDocument = DefaultPerDocument
	}
	return o
}

// Analyser runs source trend analyses against a document store.
type Analyser struct {
	store contract.DocumentStore
	opts  Options
}

// NewAnalyser creates an analyser with the given options.
func NewAnalyser(store contract.DocumentStore, opts Options) *Analyser {
	return &Analyser{store: store, opts: opts.withDefaults()}
}

// Analyse builds the trend report of the people used as sources in ids.
func (a *Analyser) Analyse(ctx context.Context, ids []int64) (schema.TrendReport, error) {
	log := zerolog.Ctx(ctx)
	report := schema.TrendReport{Utterances: map[int64][]schema.AnalysedUtterance{}}

	people, err := a.store.SourcePeople(ctx, ids)
	if err != nil {
		return report, fmt.Errorf("failed to load source people: %w", err)
	}
	slices.SortFunc(people, func(x, y schema.Person) int { return compareIDs(x.ID, y.ID) })
	personIDs := make([]int64, len(people))
	for i, p := range people {
		personIDs[i] = p.ID
	}

	mentions, err := a.store.SourceMentions(ctx, ids, personIDs)
	if err != nil {
		return report, fmt.Errorf("failed to load source mentions: %w", err)
	}
	utterances, err := a.store.UtteranceCounts(ctx, ids, personIDs)
	if err != nil {
		return report, fmt.Errorf("failed to count utterances: %w", err)
	}

	report.Start, report.End = a.period(mentions)
	report.Days = len(dailyIndex(report.Start, report.End))
	analysed := a.analysePeople(people, mentions, utterances, report.Start, report.Days)

	report.TopPeople = algo.RankByTotal(analysed, a.opts.TopLimit)
	report.TrendingUp = algo.TrendingUp(analysed, a.opts.TrendLimit, a.opts.TrendUp)
	report.TrendingDown = algo.TrendingDown(analysed, a.opts.TrendLimit, a.opts.TrendDown)
	log.Debug().
		Int("people", len(analysed)).
		Int("trending_up", len(report.TrendingUp)).
		Int("trending_down", len(report.TrendingDown)).
		Msg("Analysed source trends")

	quoted := reportedPeople(report)
	if len(quoted) > 0 {
		all, err := a.store.Utterances(ctx, ids, quoted)
		if err != nil {
			return report, fmt.Errorf("failed to load utterances: %w", err)
		}
		for pid, list := range byPerson(all) {
			report.Utterances[pid] = SelectQuotes(list, a.opts.QuoteLimit, a.opts.PerDocument)
		}
	}

	report.ProblemPeople, err = a.store.ProblemPeople(ctx, ids, DefaultProblemLimit)
	if err != nil {
		return report, fmt.Errorf("failed to find problem people: %w", err)
	}
	return report, nil
}

// period returns the analysed day range, filling open ends from the mentions.
func (a *Analyser) period(mentions []schema.SourceMention) (time.Time, time.Time) {
	start, end := a.opts.Start, a.opts.End
	for _, m := range mentions {
		if a.opts.Start.IsZero() && (start.IsZero() || m.PublishedAt.Before(start)) {
			start = m.PublishedAt
		}
		if a.opts.End.IsZero() && m.PublishedAt.After(end) {
			end = m.PublishedAt
		}
	}
	return start, end
}

// analysePeople builds the normalised daily series and trend of every person.
func (a *Analyser) analysePeople(people []schema.Person, mentions []schema.SourceMention,
	utterances map[int64]int, start time.Time, days int,
) []schema.AnalysedSource {
	counts := make(map[int64][]float64, len(people))
	for _, p := range people {
		counts[p.ID] = make([]float64, days)
	}
	first := truncateDay(start)
	for _, m := range mentions {
		series, ok := counts[m.PersonID]
		if !ok {
			continue
		}
		i := int(truncateDay(m.PublishedAt).Sub(first) / day)
		if i >= 0 && i < days {
			series[i]++
		}
	}

	totals := make([]float64, days)
	for _, series := range counts {
		floats.Add(totals, series)
	}

	analysed := make([]schema.AnalysedSource, 0, len(people))
	biggest := 0
	for _, p := range people {
		series := counts[p.ID]
		total := int(floats.Sum(series))
		biggest = max(biggest, total)
		analysed = append(analysed, schema.AnalysedSource{
			Person:         p,
			UtteranceCount: utterances[p.ID],
			SourceCounts:   Normalise(series, totals),
			Total:          total,
		})
	}
	for i := range analysed {
		analysed[i].Trend = algo.EWZScore(analysed[i].SourceCounts, a.opts.Decay)
		if biggest > 0 {
			analysed[i].Normalised = float64(analysed[i].Total) / float64(biggest)
		}
	}
	return analysed
}

// Normalise converts daily counts to percentages of the daily totals.
// Days without any mentions are 0.
func Normalise(series, totals []float64) []float64 {
	out := make([]float64, len(series))
	for i, n := range series {
		if totals[i] > 0 {
			out[i] = 100 * n / totals[i]
		}
	}
	return out
}

// dailyIndex returns the days from start to end, both inclusive.
func dailyIndex(start, end time.Time) []time.Time {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	first, last := truncateDay(start), truncateDay(end)
	if last.Before(first) {
		return nil
	}
	out := make([]time.Time, contract.CalculateDaysBetween(first, last)+1)
	for i := range out {
		out[i] = first.AddDate(0, 0, i)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// reportedPeople returns the distinct ids of every person in the report lists.
func reportedPeople(report schema.TrendReport) []int64 {
	var out []int64
	for _, list := range [][]schema.AnalysedSource{report.TopPeople, report.TrendingUp, report.TrendingDown} {
		for _, s := range list {
			out = append(out, s.Person.ID)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func byPerson(utterances []schema.Utterance) map[int64][]schema.Utterance {
	out := make(map[int64][]schema.Utterance)
	for _, u := range utterances {
		out[u.PersonID] = append(out[u.PersonID], u)
	}
	return out
}

func compareIDs(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
