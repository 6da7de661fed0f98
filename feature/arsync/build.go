package arsync

import (
	"fmt"

	"ar-sync/core/crm"
	"ar-sync/core/erp"
	"ar-sync/core/storage"
	"ar-sync/feature/arsync/match"
	"ar-sync/feature/arsync/reconcile"
	"ar-sync/feature/arsync/source"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators needed to build a Service.
type Dependencies struct {
	Sync     Config
	NetSuite erp.Config
	HubSpot  crm.Config
	// DB enables run history. Optional.
	DB *gorm.DB
	// Storage enables report upload and the snapshot fallback. Optional.
	Storage       storage.Client
	StorageConfig storage.Config
	// Registerer enables run metrics. Optional.
	Registerer prometheus.Registerer
	Logger     *zap.Logger
}

// Build wires the clients, matcher and reconciler into a Service. Missing
// credentials fail here, before any network call.
func Build(deps Dependencies) (*Service, error) {
	cfg := deps.Sync
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.HubSpot.Validate(); err != nil {
		return nil, err
	}
	namePolicy, _ := match.ParseNamePolicy(cfg.NameMatch)
	unmatched, _ := reconcile.ParseUnmatchedPolicy(cfg.Unmatched)

	erpClient, err := erp.NewClient(deps.NetSuite, deps.Logger.Named("netsuite"))
	if err != nil {
		return nil, err
	}
	crmClient := crm.NewClient(deps.HubSpot, deps.Logger.Named("hubspot"))

	var snapshot source.SnapshotLoader
	var reports *ReportStore
	if deps.Storage != nil {
		if deps.StorageConfig.SnapshotObject != "" {
			snapshot = source.NewStorageSnapshot(deps.Storage, deps.StorageConfig.Bucket, deps.StorageConfig.SnapshotObject)
		}
		reports = NewReportStore(deps.Storage, deps.StorageConfig.Bucket, deps.StorageConfig.ReportPrefix)
	}

	names := cfg.PropertyNames()
	src := source.NewERPSource(erpClient, cfg.Query, snapshot, deps.Logger)
	if cfg.CustomerListLimit > 0 {
		src.SetCustomerList(erpClient, cfg.CustomerListLimit)
	}
	matcher := match.NewMatcher(crmClient, namePolicy, names, cfg.TokenSearchLimit, deps.Logger)
	reconciler := reconcile.New(src, matcher, crmClient, reconcile.Options{
		Unmatched: unmatched,
		Pace:      cfg.Pace(),
		DryRun:    cfg.DryRun,
		Names:     names,
		NameMatch: string(namePolicy),
	}, deps.Logger)

	history := NewHistory(deps.DB)
	if err := history.Migrate(); err != nil {
		return nil, fmt.Errorf("run history: %w", err)
	}

	svc := NewService(reconciler, history, reports, cfg.RunTimeout(), deps.Logger)
	if deps.Registerer != nil {
		svc.SetMetrics(NewMetrics(deps.Registerer))
	}
	return svc, nil
}
