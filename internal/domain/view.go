package domain

import (
	"context"
	"errors"
	"fmt"

	"tsguard.dev/pkg/tsguard/internal/controller"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// View replays a saved report through the UI without touching the sources.
func (w *workflow) View(ctx context.Context, reportPath m.Path) (m.Summary, error) {
	report, err := w.LoadReport(reportPath)
	if err != nil {
		return m.Summary{}, fmt.Errorf("load report: %w", err)
	}

	if err := w.Start(ctx, controller.WithLintMode()); err != nil {
		return m.Summary{}, err
	}

	for _, result := range report.Files {
		if result.Err == nil && result.ErrMessage != "" {
			result.Err = errors.New(result.ErrMessage)
		}

		w.DisplayFileResult(ctx, result)
	}

	if err := w.DisplaySummary(ctx, report.Summary); err != nil {
		w.Close(ctx)
		return report.Summary, fmt.Errorf("display summary: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return report.Summary, nil
}
