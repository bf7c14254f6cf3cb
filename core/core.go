// Package core has core logic for rating builds and source trend reports.
package core

import (
	"context"
	"time"

	"github.com/huangsam/mediascore/internal/contract"
	"github.com/huangsam/mediascore/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing the report commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteRating builds the rating workbook, saves it when a path is configured,
// and prints the rating summary.
// It serves as the main entry point for the 'rating' command.
func ExecuteRating(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, err := BuildRating(ctx, cfg, mgr.GetDocumentStore(), mgr.GetHistoryStore())
	if err != nil {
		return err
	}
	if cfg.WorkbookFile != "" {
		if err := outwriter.WriteWorkbook(cfg.WorkbookFile, result.Workbook); err != nil {
			return err
		}
	}
	return outwriter.WriteRatingResults(result, cfg, time.Since(start))
}

// ExecuteTrends runs the source trend analysis and prints the report.
// It serves as the main entry point for the 'trends' command.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	report, err := BuildTrends(ctx, cfg, mgr.GetDocumentStore())
	if err != nil {
		return err
	}
	return outwriter.WriteTrendReport(report, cfg, time.Since(start))
}

// ExecuteTrees prints the rating tree definitions. It needs no store.
func ExecuteTrees(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	defs, err := TreeDefinitions(cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteTreeDefinitions(defs, cfg)
}
