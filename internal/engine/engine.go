// Package engine orchestrates the reconciliation run: fetch each extract
// from the mailbox, parse and aggregate it, index the destination tab,
// plan the write batch, and apply it. The two documents run independently;
// a failure in one never aborts the other.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/aggregate"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/common"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/extract"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/model"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/planner"
	"github.com/aayush-gd-dfw/retail-upcoming-revenue-report/internal/service"
)

// Config controls one reconciliation run.
type Config struct {
	TabName          string
	UpcomingSubject  string
	CompletedSubject string
	Policy           model.CompletedPolicy
	DryRun           bool
}

// Engine wires the collaborators into the reconciliation pipeline.
type Engine struct {
	mailbox service.Mailbox
	store   service.SheetStore
	decoder service.TabularDecoder
	logger  *slog.Logger
	layout  model.SheetLayout
	config  Config
}

// New creates a reconciliation engine.
func New(mailbox service.Mailbox, store service.SheetStore, decoder service.TabularDecoder, layout model.SheetLayout, config Config, logger *slog.Logger) (*Engine, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	if config.TabName == "" {
		return nil, fmt.Errorf("%w: tab name", common.ErrMissingConfig)
	}
	if _, err := model.ParseCompletedPolicy(string(config.Policy)); err != nil {
		return nil, err
	}
	return &Engine{
		mailbox: mailbox,
		store:   store,
		decoder: decoder,
		layout:  layout,
		config:  config,
		logger:  logger,
	}, nil
}

// Run executes both document pipelines and reports their outcomes. The
// returned report is always complete; Run itself only fails on context
// cancellation.
func (e *Engine) Run(ctx context.Context) (*model.RunReport, error) {
	report := &model.RunReport{}

	report.Upcoming = e.runUpcoming(ctx)
	e.logOutcome(report.Upcoming)

	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Completed = e.runCompleted(ctx)
	e.logOutcome(report.Completed)

	return report, ctx.Err()
}

// runUpcoming reconciles the upcoming extract: per-unit per-date subtotal
// sums written to the scheduled-revenue columns for dates strictly after
// the extract's anchor date.
func (e *Engine) runUpcoming(ctx context.Context) model.DocumentOutcome {
	outcome := model.DocumentOutcome{Document: model.DocUpcoming}

	att, err := e.mailbox.FetchLatestAttachment(ctx, e.config.UpcomingSubject)
	if err != nil {
		return e.classify(outcome, err)
	}
	outcome.Filename = att.Filename

	table, err := e.decoder.Decode(att.Data)
	if err != nil {
		return e.fail(outcome, fmt.Errorf("failed to decode %s: %w", att.Filename, err))
	}

	result, err := aggregate.Upcoming(table, e.layout)
	if err != nil {
		return e.fail(outcome, err)
	}
	outcome.Date = result.Anchor
	outcome.Skips = result.Skips

	tab, ix, err := e.openAndIndex(ctx)
	if err != nil {
		return e.fail(outcome, err)
	}

	writes := planner.PlanUpcoming(e.layout, result, ix)
	if err := e.apply(ctx, tab, writes); err != nil {
		return e.fail(outcome, err)
	}

	outcome.Status = model.StatusProcessed
	outcome.CellsWritten = len(writes)
	return outcome
}

// runCompleted reconciles the completed extract: the filename-derived date
// keys a completed-revenue write and a scheduled-revenue clear at the
// global row and each unit's row.
func (e *Engine) runCompleted(ctx context.Context) model.DocumentOutcome {
	outcome := model.DocumentOutcome{Document: model.DocCompleted}

	att, err := e.mailbox.FetchLatestAttachment(ctx, e.config.CompletedSubject)
	if err != nil {
		return e.classify(outcome, err)
	}
	outcome.Filename = att.Filename

	fileDate, err := extract.FilenameDate(att.Filename)
	if err != nil {
		return e.fail(outcome, err)
	}
	outcome.Date = fileDate

	table, err := e.decoder.Decode(att.Data)
	if err != nil {
		return e.fail(outcome, fmt.Errorf("failed to decode %s: %w", att.Filename, err))
	}

	result, err := aggregate.Completed(table, e.layout, e.config.Policy)
	if err != nil {
		return e.fail(outcome, err)
	}
	outcome.Skips = result.Skips

	tab, ix, err := e.openAndIndex(ctx)
	if err != nil {
		return e.fail(outcome, err)
	}

	writes := planner.PlanCompleted(e.layout, fileDate, result, ix)
	if err := e.apply(ctx, tab, writes); err != nil {
		return e.fail(outcome, err)
	}

	outcome.Status = model.StatusProcessed
	outcome.CellsWritten = len(writes)
	return outcome
}

// openAndIndex opens the destination tab and indexes every date column:
// the global one and each unit's own. The indices are the run's single
// consistent snapshot of the sheet; nothing is re-read after planning.
func (e *Engine) openAndIndex(ctx context.Context) (service.SheetTab, planner.Indices, error) {
	tab, err := e.store.OpenTab(ctx, e.config.TabName)
	if err != nil {
		return nil, planner.Indices{}, fmt.Errorf("failed to open tab %q: %w", e.config.TabName, err)
	}

	ix := planner.Indices{ByUnit: make(map[string]planner.RowIndex, len(e.layout.Units))}

	column, err := tab.ReadColumn(ctx, e.layout.DateCol)
	if err != nil {
		return nil, planner.Indices{}, fmt.Errorf("failed to read global date column: %w", err)
	}
	ix.Global = planner.BuildRowIndex(column)

	for _, unit := range e.layout.Units {
		column, err := tab.ReadColumn(ctx, unit.DateCol)
		if err != nil {
			return nil, planner.Indices{}, fmt.Errorf("failed to read date column for %s: %w", unit.Name, err)
		}
		ix.ByUnit[unit.Name] = planner.BuildRowIndex(column)
	}

	return tab, ix, nil
}

func (e *Engine) apply(ctx context.Context, tab service.SheetTab, writes []model.CellWrite) error {
	if e.config.DryRun {
		e.logger.Info("dry run: skipping batch apply", "writes", len(writes))
		return nil
	}
	return tab.ApplyBatch(ctx, writes)
}

// classify maps a fetch error to skipped or failed.
func (e *Engine) classify(outcome model.DocumentOutcome, err error) model.DocumentOutcome {
	if common.IsSkip(err) {
		outcome.Status = model.StatusSkipped
		outcome.Err = err
		return outcome
	}
	return e.fail(outcome, err)
}

func (e *Engine) fail(outcome model.DocumentOutcome, err error) model.DocumentOutcome {
	outcome.Status = model.StatusFailed
	outcome.Err = err
	return outcome
}

func (e *Engine) logOutcome(outcome model.DocumentOutcome) {
	switch outcome.Status {
	case model.StatusProcessed:
		e.logger.Info("document reconciled",
			"document", outcome.Document,
			"filename", outcome.Filename,
			"date", outcome.Date.Format("2006-01-02"),
			"cells_written", outcome.CellsWritten,
			"rows_skipped", outcome.Skips.Total())
	case model.StatusSkipped:
		e.logger.Info("document skipped",
			"document", outcome.Document,
			"reason", outcome.Err)
	case model.StatusFailed:
		e.logger.Error("document failed",
			"document", outcome.Document,
			"filename", outcome.Filename,
			"error", outcome.Err)
	}
}
