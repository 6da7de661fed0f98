package cmd

import (
	"context"
	"fmt"
	"time"

	"ar-sync/core/config"
	"ar-sync/core/database"
	"ar-sync/core/logger"
	"ar-sync/core/storage"
	"ar-sync/feature/arsync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment holds the shared dependencies every command starts from.
type environment struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	store storage.Client
}

// bootstrap loads configuration and connects the optional database and storage.
// Neither optional dependency is fatal; a failure is logged and the feature
// that needs it is disabled.
func bootstrap() (*environment, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &environment{cfg: cfg, log: l}

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Run history disabled: database connection failed", zap.Error(err))
		} else {
			a.db = conn
			l.Info("Connected to run-history database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			l.Warn("Reports disabled: storage client failed", zap.Error(err))
		} else {
			a.store = client
			a.checkBucket()
		}
	}

	return a, nil
}

func (a *environment) checkBucket() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := a.store.BucketExists(ctx, a.cfg.Storage.Bucket)
	switch {
	case err != nil:
		a.log.Warn("Storage unreachable", zap.String("bucket", a.cfg.Storage.Bucket), zap.Error(err))
	case !exists:
		a.log.Warn("Storage bucket does not exist", zap.String("bucket", a.cfg.Storage.Bucket))
	default:
		a.log.Info("Connected to storage", zap.String("bucket", a.cfg.Storage.Bucket))
	}
}

// syncService validates credentials and builds the sync service. reg may be nil.
func (a *environment) syncService(reg prometheus.Registerer) (*arsync.Service, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return arsync.Build(arsync.Dependencies{
		Sync:          a.cfg.Sync,
		NetSuite:      a.cfg.NetSuite,
		HubSpot:       a.cfg.HubSpot,
		DB:            a.db,
		Storage:       a.store,
		StorageConfig: a.cfg.Storage,
		Registerer:    reg,
		Logger:        a.log,
	})
}
