package arsync

import (
	"context"
	"errors"
	"fmt"

	"ar-sync/feature/arsync/models"

	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned when run history is read without a database.
var ErrHistoryDisabled = errors.New("run history is disabled")

// History stores run summaries. A History without a database accepts writes and
// discards them.
type History struct {
	db *gorm.DB
}

// NewHistory creates a history store. db may be nil.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Enabled reports whether runs are persisted.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// Migrate creates or updates the ar_sync_runs table.
func (h *History) Migrate() error {
	if !h.Enabled() {
		return nil
	}
	if err := h.db.AutoMigrate(&models.SyncRun{}); err != nil {
		return fmt.Errorf("failed to migrate run history: %w", err)
	}
	return nil
}

// Record inserts one run and sets its ID.
func (h *History) Record(ctx context.Context, run *models.SyncRun) error {
	if !h.Enabled() {
		return nil
	}
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = 20
	}

	var runs []models.SyncRun
	if err := h.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// RunFromReport summarises a report for the history table.
func RunFromReport(report *models.Report, runErr error, reportKey string) models.SyncRun {
	run := models.SyncRun{
		Trigger:    report.Trigger,
		Origin:     report.Origin,
		Status:     runStatus(runErr),
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Updated:    report.Outcome.Updated,
		Created:    report.Outcome.Created,
		NotFound:   report.Outcome.NotFound,
		Errors:     report.Outcome.Errors,
		Total:      report.Outcome.Total,
		ReportKey:  reportKey,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	return run
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return models.RunStatusSucceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.RunStatusAborted
	default:
		return models.RunStatusFailed
	}
}
