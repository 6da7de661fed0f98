package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ar-sync/feature/arsync/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNoCompanyName is recorded when an unmatched record has no name to create a company with.
var ErrNoCompanyName = errors.New("cannot create company without a name")

// Reconciler applies NetSuite balances to HubSpot companies.
type Reconciler struct {
	source   Source
	resolver Resolver
	writer   Writer
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a reconciler.
func New(source Source, resolver Resolver, writer Writer, opts Options, logger *zap.Logger) *Reconciler {
	if opts.Unmatched == "" {
		opts.Unmatched = UnmatchedCreate
	}
	return &Reconciler{
		source:   source,
		resolver: resolver,
		writer:   writer,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// RoundMoney rounds an amount to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders an amount the way it is written to HubSpot, e.g. "82346.00".
func FormatMoney(d decimal.Decimal) string {
	return RoundMoney(d).StringFixed(2)
}

// Run executes one sync. The returned report is never nil; on error it holds
// whatever was processed before the failure. A fetch failure or a cancelled
// context is returned as the error; per-record failures are only counted.
func (r *Reconciler) Run(ctx context.Context) (*models.Report, error) {
	report := &models.Report{
		DryRun:    r.opts.DryRun,
		NameMatch: r.opts.NameMatch,
		Unmatched: string(r.opts.Unmatched),
		StartedAt: r.now(),
		Results:   []models.RecordResult{},
	}
	defer func() {
		report.FinishedAt = r.now()
	}()

	batch, err := r.source.Fetch(ctx)
	if err != nil {
		return report, err
	}
	report.Origin = batch.Origin
	report.Outcome.Total = len(batch.Records) + len(batch.Rejected)

	// Rows that never became records are failures of this run
	for _, rej := range batch.Rejected {
		report.Results = append(report.Results, models.RecordResult{
			ExternalCustomerID: rej.ExternalCustomerID,
			Action:             models.ActionError,
			Error:              rej.Reason,
		})
		report.Outcome.Errors++
	}

	r.logger.Info("Starting sync",
		zap.Int("records", len(batch.Records)),
		zap.String("origin", batch.Origin),
		zap.String("unmatched", string(r.opts.Unmatched)),
		zap.Bool("dry_run", r.opts.DryRun),
	)

	for i, record := range batch.Records {
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				return report, err
			}
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.process(ctx, record)
		report.Results = append(report.Results, result)
		tally(&report.Outcome, result.Action)
	}

	r.logger.Info("Sync finished",
		zap.Int("updated", report.Outcome.Updated),
		zap.Int("created", report.Outcome.Created),
		zap.Int("not_found", report.Outcome.NotFound),
		zap.Int("errors", report.Outcome.Errors),
	)

	return report, nil
}

// pause holds the loop for Pace after a record finishes. The limiter starts with
// its only token taken, so Wait blocks for the full interval.
func (r *Reconciler) pause(ctx context.Context) error {
	if r.opts.Pace <= 0 {
		return nil
	}
	gap := rate.NewLimiter(rate.Every(r.opts.Pace), 1)
	gap.Allow()
	if err := gap.Wait(ctx); err != nil {
		// Wait fails early when the slot is past the deadline
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return nil
}

func tally(o *models.Outcome, action models.ActionType) {
	switch action {
	case models.ActionUpdate:
		o.Updated++
	case models.ActionCreate:
		o.Created++
	case models.ActionSkip:
		o.NotFound++
	default:
		o.Errors++
	}
}

// process handles one record. It never returns an error; failures are carried in
// the result so the loop can move on.
func (r *Reconciler) process(ctx context.Context, record models.ReceivableRecord) (result models.RecordResult) {
	log := r.logger.With(
		zap.String("customer_id", record.ExternalCustomerID),
		zap.String("customer_name", record.DisplayName),
	)
	result = models.RecordResult{
		ExternalCustomerID: record.ExternalCustomerID,
		DisplayName:        record.DisplayName,
	}

	defer func() {
		if p := recover(); p != nil {
			result.Action = models.ActionError
			result.Error = fmt.Sprintf("panic: %v", p)
			log.Error("Record failed", zap.String("error", result.Error))
		}
	}()

	fail := func(err error) models.RecordResult {
		result.Action = models.ActionError
		result.Error = err.Error()
		log.Error("Record failed", zap.Error(err))
		return result
	}

	match, err := r.resolver.Resolve(ctx, record.ExternalCustomerID, record.DisplayName)
	if err != nil {
		return fail(err)
	}
	result.Basis = match.Basis

	if match.Found() {
		company := match.Company
		result.CompanyID = company.ID
		if match.Basis == models.MatchByName && company.ExternalCustomerID != nil && *company.ExternalCustomerID != record.ExternalCustomerID {
			log.Warn("Relinking company matched by name",
				zap.String("company_id", company.ID),
				zap.String("previous_customer_id", *company.ExternalCustomerID),
			)
		}

		props := r.linkProperties(record, match.Basis)
		if !r.opts.DryRun {
			if _, err := r.writer.Update(ctx, company.ID, props); err != nil {
				return fail(err)
			}
		}
		result.Action = models.ActionUpdate
		log.Info("Updated company", zap.String("company_id", company.ID), zap.String("basis", string(match.Basis)), zap.Bool("dry_run", r.opts.DryRun))
		return result
	}

	if r.opts.Unmatched == UnmatchedSkip {
		result.Action = models.ActionSkip
		log.Info("No matching company")
		return result
	}

	if strings.TrimSpace(record.DisplayName) == "" {
		return fail(ErrNoCompanyName)
	}
	props := r.linkProperties(record, models.MatchNone)
	props[r.opts.Names.Name] = record.DisplayName
	if !r.opts.DryRun {
		created, err := r.writer.Create(ctx, props)
		if err != nil {
			return fail(err)
		}
		result.CompanyID = created.ID
	}
	result.Action = models.ActionCreate
	log.Info("Created company", zap.String("company_id", result.CompanyID), zap.Bool("dry_run", r.opts.DryRun))
	return result
}

// linkProperties builds the properties written for a record. The legal name is
// written only when the company is linked for the first time.
func (r *Reconciler) linkProperties(record models.ReceivableRecord, basis models.MatchBasis) map[string]string {
	names := r.opts.Names
	props := map[string]string{
		names.ExternalID:     record.ExternalCustomerID,
		names.TotalBalance:   FormatMoney(record.TotalBalance),
		names.PastDueBalance: FormatMoney(record.PastDueBalance),
	}
	if names.LegalName != "" && basis != models.MatchByID && record.DisplayName != "" {
		props[names.LegalName] = record.DisplayName
	}
	return props
}
