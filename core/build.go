package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/mediascore/core/agg"
	"github.com/huangsam/mediascore/core/rating"
	"github.com/huangsam/mediascore/core/sheet"
	"github.com/huangsam/mediascore/core/sources"
	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/workbook"
	"github.com/huangsam/mediascore/schema"
	"github.com/rs/zerolog"
)

// BuildRating runs one rating build over the documents selected by cfg.Filter.
// Every score, row and cell of the build lives only for the duration of the call.
// History is recorded on a best-effort basis and never fails the build.
func BuildRating(ctx context.Context, cfg *contract.Config, docs contract.DocumentStore, hist contract.HistoryStore) (schema.RatingResult, error) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	tree, err := loadTree(cfg)
	if err != nil {
		return schema.RatingResult{}, err
	}

	ids, err := docs.DocumentIDs(ctx, cfg.Filter)
	if err != nil {
		return schema.RatingResult{}, fmt.Errorf("failed to select documents: %w", err)
	}
	if len(ids) == 0 {
		return schema.RatingResult{}, contract.ErrNoDocuments
	}

	outlets, err := docs.Outlets(ctx, ids)
	if err != nil {
		return schema.RatingResult{}, fmt.Errorf("failed to list outlets: %w", err)
	}
	names := make([]string, len(outlets))
	for i, o := range outlets {
		names[i] = o.Name
	}
	log.Debug().Int("documents", len(ids)).Strs("outlets", names).Str("tree", string(cfg.Tree)).Msg("building rating")

	book := sheet.NewBook()
	scores := sheet.NewBuilder(book.Raw, names)
	if err := agg.New(docs, ids, scores, cfg.BucketLimit).Run(ctx, cfg.Tree); err != nil {
		return schema.RatingResult{}, fmt.Errorf("failed to aggregate facts: %w", err)
	}

	rows, err := rating.Evaluate(tree, scores, book)
	if err != nil {
		return schema.RatingResult{}, fmt.Errorf("failed to evaluate rating tree: %w", err)
	}

	named, err := namedScoreValues(scores, book)
	if err != nil {
		return schema.RatingResult{}, err
	}

	generated := time.Now()
	data, err := workbook.Render(book, generated)
	if err != nil {
		return schema.RatingResult{}, fmt.Errorf("failed to render workbook: %w", err)
	}

	result := schema.RatingResult{
		Tree:        cfg.Tree,
		Generated:   generated,
		Documents:   len(ids),
		Outlets:     names,
		Ratings:     rows,
		NamedScores: named,
		Workbook:    data,
	}

	recordBuild(ctx, hist, cfg, start, result)
	log.Info().Int("documents", len(ids)).Int("scores", scores.Registry().Len()).Dur("took", time.Since(start)).Msg("rating built")
	return result, nil
}

// loadTree returns the built-in tree of cfg.Tree, or the declared custom tree.
func loadTree(cfg *contract.Config) ([]schema.RatingNode, error) {
	if cfg.Tree == schema.CustomTree {
		return rating.LoadTree(cfg.TreeFile)
	}
	return rating.Tree(cfg.Tree)
}

// namedScoreValues evaluates every registered score for every outlet,
// in registry order then outlet order.
func namedScoreValues(scores *sheet.Builder, book *sheet.Book) ([]schema.NamedScoreValue, error) {
	ev := sheet.NewEvaluator(book)
	outlets := scores.Outlets()
	labels := scores.Registry().Labels()

	values := make([]schema.NamedScoreValue, 0, len(labels)*len(outlets))
	for _, label := range labels {
		for i, outlet := range outlets {
			ref, err := scores.Ref(label, i)
			if err != nil {
				return nil, err
			}
			v, err := ev.Value(ref)
			if err != nil {
				return nil, fmt.Errorf("failed to evaluate score %q: %w", label, err)
			}
			values = append(values, schema.NamedScoreValue{Label: label, Outlet: outlet, Value: v})
		}
	}
	return values, nil
}

// recordBuild stores the build in the history store. Failures are logged.
func recordBuild(ctx context.Context, hist contract.HistoryStore, cfg *contract.Config, start time.Time, result schema.RatingResult) {
	if hist == nil {
		return
	}
	log := zerolog.Ctx(ctx)

	buildID, err := hist.BeginBuild(string(result.Tree), start, cfg.Params())
	if err != nil {
		log.Warn().Err(err).Msg("failed to record build")
		return
	}
	if err := hist.RecordRatings(buildID, ratingRecords(result)); err != nil {
		log.Warn().Err(err).Int64("build", buildID).Msg("failed to record rating values")
	}
	if err := hist.RecordNamedScores(buildID, namedScoreRecords(result)); err != nil {
		log.Warn().Err(err).Int64("build", buildID).Msg("failed to record named scores")
	}
	if err := hist.EndBuild(buildID, time.Now(), result.Documents, len(result.Outlets)); err != nil {
		log.Warn().Err(err).Int64("build", buildID).Msg("failed to finish build record")
	}
}

// ratingRecords flattens the rated rows into one record per node and outlet.
func ratingRecords(result schema.RatingResult) []schema.RatingValueRecord {
	records := make([]schema.RatingValueRecord, 0, len(result.Ratings)*len(result.Outlets))
	for pos, row := range result.Ratings {
		for i, outlet := range result.Outlets {
			records = append(records, schema.RatingValueRecord{
				Position: int32(pos),
				Depth:    int32(row.Depth),
				Label:    row.Label,
				Weight:   row.Weight,
				Outlet:   outlet,
				Value:    row.Values[i],
			})
		}
	}
	return records
}

func namedScoreRecords(result schema.RatingResult) []schema.NamedScoreRecord {
	records := make([]schema.NamedScoreRecord, len(result.NamedScores))
	for i, v := range result.NamedScores {
		records[i] = schema.NamedScoreRecord{Label: v.Label, Outlet: v.Outlet, Value: v.Value}
	}
	return records
}

// BuildTrends runs the source trend analysis over the documents selected by cfg.Filter.
func BuildTrends(ctx context.Context, cfg *contract.Config, docs contract.DocumentStore) (schema.TrendReport, error) {
	ids, err := docs.DocumentIDs(ctx, cfg.Filter)
	if err != nil {
		return schema.TrendReport{}, fmt.Errorf("failed to select documents: %w", err)
	}
	if len(ids) == 0 {
		return schema.TrendReport{}, contract.ErrNoDocuments
	}

	analyser := sources.NewAnalyser(docs, sources.Options{
		Start:       cfg.Filter.Start,
		End:         cfg.Filter.End,
		Decay:       cfg.Decay,
		TrendUp:     cfg.TrendUp,
		TrendDown:   cfg.TrendDown,
		TopLimit:    cfg.TopPeople,
		TrendLimit:  cfg.TrendLimit,
		QuoteLimit:  cfg.QuoteLimit,
		PerDocument: cfg.QuotesPerDocument,
	})
	return analyser.Analyse(ctx, ids)
}

// TreeDefinitions describes the built-in trees, and the custom tree when cfg declares one.
func TreeDefinitions(cfg *contract.Config) ([]schema.TreeDefinition, error) {
	var defs []schema.TreeDefinition
	for _, kind := range schema.AllTreeKinds {
		tree, err := rating.Tree(kind)
		if err != nil {
			return nil, err
		}
		defs = append(defs, describeTree(string(kind), tree))
	}
	if cfg != nil && cfg.TreeFile != "" {
		tree, err := rating.LoadTree(cfg.TreeFile)
		if err != nil {
			return nil, err
		}
		defs = append(defs, describeTree(cfg.TreeFile, tree))
	}
	return defs, nil
}

func describeTree(name string, tree []schema.RatingNode) schema.TreeDefinition {
	return schema.TreeDefinition{
		Name:   name,
		Depth:  rating.Depth(tree),
		Leaves: rating.Leaves(tree),
		Nodes:  rating.Flatten(tree),
	}
}
