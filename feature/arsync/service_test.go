package arsync_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ar-sync/core/storage/mocks"
	"ar-sync/feature/arsync"
	"ar-sync/feature/arsync/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingRunner returns its report once release is closed.
type blockingRunner struct {
	calls   int32
	started chan struct{}
	release chan struct{}
	report  *models.Report
	err     error
}

func newBlockingRunner(report *models.Report, err error) *blockingRunner {
	return &blockingRunner{
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
		report:  report,
		err:     err,
	}
}

func (r *blockingRunner) Run(ctx context.Context) (*models.Report, error) {
	atomic.AddInt32(&r.calls, 1)
	r.started <- struct{}{}
	select {
	case <-r.release:
	case <-ctx.Done():
		return &models.Report{}, ctx.Err()
	}
	out := *r.report
	return &out, r.err
}

func finished(outcome models.Outcome) *models.Report {
	now := time.Now()
	return &models.Report{StartedAt: now, FinishedAt: now, Outcome: outcome}
}

func TestService_ConcurrentTriggersShareOneRun(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{Updated: 2, Total: 2}), nil)
	svc := arsync.NewService(runner, nil, nil, 0, zap.NewNop())

	var wg sync.WaitGroup
	type result struct {
		report *models.Report
		shared bool
		err    error
	}
	results := make([]result, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		r, s, err := svc.RunSync(context.Background(), arsync.TriggerStartup)
		results[0] = result{r, s, err}
	}()
	<-runner.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		r, s, err := svc.RunSync(context.Background(), arsync.TriggerHTTP)
		results[1] = result{r, s, err}
	}()

	// Give the second trigger time to join before releasing the run.
	time.Sleep(50 * time.Millisecond)
	close(runner.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.calls))
	for _, r := range results {
		require.NoError(t, r.err)
		assert.True(t, r.shared)
		assert.Equal(t, 2, r.report.Outcome.Updated)
		assert.Equal(t, arsync.TriggerStartup, r.report.Trigger)
	}
}

func TestService_SequentialRunsAreIndependent(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{Created: 1, Total: 1}), nil)
	close(runner.release)
	svc := arsync.NewService(runner, nil, nil, 0, zap.NewNop())

	_, shared, err := svc.RunSync(context.Background(), arsync.TriggerHTTP)
	require.NoError(t, err)
	assert.False(t, shared)

	_, _, err = svc.RunSync(context.Background(), arsync.TriggerHTTP)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&runner.calls))
}

func TestService_CallerCancelDoesNotStopRun(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{Updated: 1, Total: 1}), nil)
	history := setupSQLite(t)
	svc := arsync.NewService(runner, history, nil, 0, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := svc.RunSync(ctx, arsync.TriggerHTTP)
		done <- err
	}()
	<-runner.started
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(runner.release)
	require.Eventually(t, func() bool {
		runs, err := history.Recent(context.Background(), 10)
		return err == nil && len(runs) == 1
	}, time.Second, 10*time.Millisecond)

	runs, err := svc.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusSucceeded, runs[0].Status)
	assert.Equal(t, 1, runs[0].Updated)
}

func TestService_RunTimeoutAbortsRun(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{}), nil)
	history := setupSQLite(t)
	svc := arsync.NewService(runner, history, nil, 20*time.Millisecond, zap.NewNop())

	_, _, err := svc.RunSync(context.Background(), arsync.TriggerCLI)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	runs, err := history.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusAborted, runs[0].Status)
	assert.Equal(t, arsync.TriggerCLI, runs[0].Trigger)
}

func TestService_RecordsFailureAndUploadsReport(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{}), errors.New("netsuite: suiteql: HTTP 401: INVALID_LOGIN"))
	close(runner.release)

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "ar-sync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	history := setupSQLite(t)
	svc := arsync.NewService(runner, history, arsync.NewReportStore(client, "ar-sync", "reports"), 0, zap.NewNop())

	report, _, err := svc.RunSync(context.Background(), arsync.TriggerHTTP)
	assert.ErrorContains(t, err, "INVALID_LOGIN")
	require.NotNil(t, report)

	runs, err := history.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusFailed, runs[0].Status)
	assert.Contains(t, runs[0].ReportKey, "reports/")
	client.AssertExpectations(t)
}

func TestService_ReportUploadFailureIsNotFatal(t *testing.T) {
	runner := newBlockingRunner(finished(models.Outcome{Updated: 1, Total: 1}), nil)
	close(runner.release)

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket missing"))

	svc := arsync.NewService(runner, nil, arsync.NewReportStore(client, "b", "p"), 0, zap.NewNop())

	report, _, err := svc.RunSync(context.Background(), arsync.TriggerHTTP)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Outcome.Updated)
}
