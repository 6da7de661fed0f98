package arsync

import (
	"context"
	"time"

	"ar-sync/feature/arsync/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Run triggers recorded in history.
const (
	TriggerHTTP    = "http"
	TriggerStartup = "startup"
	TriggerCLI     = "cli"
)

// persistTimeout bounds report upload and history insert after a run.
const persistTimeout = 30 * time.Second

// Runner executes one sync.
type Runner interface {
	Run(ctx context.Context) (*models.Report, error)
}

// Service runs syncs one at a time and records them.
type Service struct {
	runner     Runner
	history    *History
	reports    *ReportStore
	runTimeout time.Duration
	metrics    *Metrics
	logger     *zap.Logger

	group singleflight.Group
}

// NewService creates a service. reports may be nil; history may wrap a nil database.
func NewService(runner Runner, history *History, reports *ReportStore, runTimeout time.Duration, logger *zap.Logger) *Service {
	if history == nil {
		history = NewHistory(nil)
	}
	return &Service{
		runner:     runner,
		history:    history,
		reports:    reports,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// SetMetrics enables Prometheus export of run outcomes.
func (s *Service) SetMetrics(m *Metrics) {
	s.metrics = m
}

// RunSync runs a sync, or waits for the one already running. shared is true when
// the result was delivered to more than one trigger. Cancelling ctx stops the
// wait, not the run.
func (s *Service) RunSync(ctx context.Context, trigger string) (report *models.Report, shared bool, err error) {
	ch := s.group.DoChan("sync", func() (any, error) {
		return s.execute(context.WithoutCancel(ctx), trigger)
	})

	select {
	case res := <-ch:
		report, _ = res.Val.(*models.Report)
		return report, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// RecentRuns lists recorded runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	return s.history.Recent(ctx, limit)
}

func (s *Service) execute(ctx context.Context, trigger string) (*models.Report, error) {
	log := s.logger.With(zap.String("trigger", trigger))

	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	s.metrics.started()
	report, runErr := s.runner.Run(runCtx)
	if report == nil {
		report = &models.Report{StartedAt: time.Now(), FinishedAt: time.Now()}
	}
	report.Trigger = trigger
	s.metrics.observe(report, runErr)

	if runErr != nil {
		log.Error("Sync run failed", zap.Error(runErr))
	}

	persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	var key string
	if s.reports != nil {
		var err error
		if key, err = s.reports.Save(persistCtx, report); err != nil {
			log.Warn("Failed to upload run report", zap.Error(err))
		} else {
			log.Info("Uploaded run report", zap.String("key", key))
		}
	}

	if s.history.Enabled() {
		run := RunFromReport(report, runErr, key)
		if err := s.history.Record(persistCtx, &run); err != nil {
			log.Warn("Failed to record run", zap.Error(err))
		}
	}

	return report, runErr
}
