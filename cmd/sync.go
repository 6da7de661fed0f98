package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ar-sync/feature/arsync"
	"ar-sync/feature/arsync/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunSync    bool
	nameMatchSync string
	unmatchedSync string
)

// syncCmd runs one sync from the terminal.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one NetSuite to HubSpot sync",
	Long: `Fetches open receivables from NetSuite and applies them to HubSpot companies.

Examples:
  # Preview what would change
  ar-sync sync --dry-run

  # Only update existing companies, never create
  ar-sync sync --unmatched skip

  # Fall back to first-word name search
  ar-sync sync --name-match token --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Resolve every customer but write nothing to HubSpot")
	syncCmd.Flags().StringVar(&nameMatchSync, "name-match", "", "Name fallback policy: exact or token (default from SYNC_NAME_MATCH)")
	syncCmd.Flags().StringVar(&unmatchedSync, "unmatched", "", "Unmatched policy: create or skip (default from SYNC_UNMATCHED)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if dryRunSync {
		a.cfg.Sync.DryRun = true
	}
	if nameMatchSync != "" {
		a.cfg.Sync.NameMatch = nameMatchSync
	}
	if unmatchedSync != "" {
		a.cfg.Sync.Unmatched = unmatchedSync
	}

	svc, err := a.syncService(nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, _, err := svc.RunSync(ctx, arsync.TriggerCLI)
	if report != nil {
		printSyncReport(a.log, report)
	}
	if err != nil {
		return err
	}

	if report.DryRun {
		a.log.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printSyncReport logs the outcome and a sample of failed records.
func printSyncReport(l *zap.Logger, report *models.Report) {
	o := report.Outcome

	l.Info("Sync report",
		zap.String("trigger", report.Trigger),
		zap.String("origin", report.Origin),
		zap.Int("total", o.Total),
		zap.Int("updated", o.Updated),
		zap.Int("created", o.Created),
		zap.Int("not_found", o.NotFound),
		zap.Int("errors", o.Errors),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)

	var failed []models.RecordResult
	for _, r := range report.Results {
		if r.Action == models.ActionError {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return
	}

	maxShow := min(5, len(failed))
	for _, r := range failed[:maxShow] {
		l.Warn("Failed record",
			zap.String("customer_id", r.ExternalCustomerID),
			zap.String("customer_name", r.DisplayName),
			zap.String("error", r.Error),
		)
	}
	if len(failed) > maxShow {
		l.Warn("Additional failed records not shown", zap.Int("count", len(failed)-maxShow))
	}
}
