package source

import (
	"context"
	"fmt"

	"ar-sync/core/erp"
	"ar-sync/feature/arsync/models"

	"go.uber.org/zap"
)

// Origins reported in models.Batch.
const (
	OriginNetSuite  = "netsuite"
	OriginCustomers = "netsuite_customers"
	OriginSnapshot  = "snapshot"
)

// Querier executes one SuiteQL statement.
type Querier interface {
	Query(ctx context.Context, q string) ([]erp.Row, error)
}

// CustomerLister lists customers through the record REST API.
type CustomerLister interface {
	Customers(ctx context.Context, limit int) ([]erp.Customer, error)
}

// ERPSource fetches receivables from NetSuite. When the query finds nothing it
// falls back to the customer list, then to the snapshot.
type ERPSource struct {
	querier       Querier
	query         string
	customers     CustomerLister
	customerLimit int
	snapshot      SnapshotLoader
	logger        *zap.Logger
}

// NewERPSource creates a source. An empty query uses DefaultQuery; a nil snapshot
// disables the fallback.
func NewERPSource(querier Querier, query string, snapshot SnapshotLoader, logger *zap.Logger) *ERPSource {
	if query == "" {
		query = DefaultQuery
	}
	return &ERPSource{
		querier:  querier,
		query:    query,
		snapshot: snapshot,
		logger:   logger,
	}
}

// SetCustomerList enables the customer list fallback. Customers found that way
// carry zero balances.
func (s *ERPSource) SetCustomerList(customers CustomerLister, limit int) {
	s.customers = customers
	s.customerLimit = limit
}

// Fetch returns the batch for one run. Any NetSuite error is returned as is; the
// fallbacks are consulted only when the stage before them succeeds with zero rows.
func (s *ERPSource) Fetch(ctx context.Context) (models.Batch, error) {
	rows, err := s.querier.Query(ctx, s.query)
	if err != nil {
		return models.Batch{}, fmt.Errorf("fetch receivables: %w", err)
	}

	origin := OriginNetSuite
	if len(rows) == 0 && s.customers != nil {
		s.logger.Warn("SuiteQL returned no receivables, listing customers")
		customers, err := s.customers.Customers(ctx, s.customerLimit)
		if err != nil {
			return models.Batch{}, fmt.Errorf("list customers: %w", err)
		}
		if len(customers) > 0 {
			rows = RowsFromCustomers(customers)
			origin = OriginCustomers
		}
	}
	if len(rows) == 0 && s.snapshot != nil {
		s.logger.Warn("NetSuite returned no receivables, using snapshot")
		rows, err = s.snapshot.Load(ctx)
		if err != nil {
			return models.Batch{}, fmt.Errorf("load snapshot: %w", err)
		}
		origin = OriginSnapshot
	}

	records, rejected := RecordsFromRows(rows)
	for _, r := range rejected {
		s.logger.Warn("Rejected receivable row",
			zap.Int("index", r.Index),
			zap.String("customer_id", r.ExternalCustomerID),
			zap.String("reason", r.Reason),
		)
	}

	s.logger.Info("Fetched receivables",
		zap.String("origin", origin),
		zap.Int("records", len(records)),
		zap.Int("rejected", len(rejected)),
	)

	return models.Batch{Origin: origin, Records: records, Rejected: rejected}, nil
}
