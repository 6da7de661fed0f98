package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ar-sync/core/loader"
	"ar-sync/core/logger"
	"ar-sync/core/middleware/auth"
	"ar-sync/core/middleware/rayid"
	"ar-sync/feature/arsync"
	"ar-sync/feature/health"
	"ar-sync/feature/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "ar-sync/docs/swagger"
)

// @title AR Sync API
// @version 1.0
// @description Syncs NetSuite receivable balances into HubSpot companies.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var syncOnStart bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server exposing GET /, POST /sync, GET /sync/runs and GET /health.`,
	RunE:  runStart,
}

func init() {
	startCmd.Flags().BoolVar(&syncOnStart, "sync-on-start", false, "Run one sync as soon as the server is up (same as SYNC_ON_START=true)")
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	logg := a.log
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	reg := metrics.NewRegistry()
	svc, err := a.syncService(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(a.cfg.Server.ReadTimeoutSeconds) * time.Second,
	})

	mgr := loader.NewManager()
	mgr.Register(health.NewFeature(a.db, a.store, a.cfg.Storage.Bucket, logg))
	mgr.Register(arsync.NewFeature(svc))
	mgr.Register(metrics.NewFeature(reg, a.cfg.Server.MetricsEnabled))

	// RayID first so every log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{
		ApiKey:    a.cfg.Server.ApiKey,
		SkipPaths: []string{"/", "/health"},
	}))
	if !a.cfg.Server.IsAuthEnabled() {
		logg.Warn("API key not configured, POST /sync is unauthenticated")
	}

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	go func() {
		logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
		if err := app.Listen(a.cfg.Server.Address()); err != nil {
			logg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	if syncOnStart || a.cfg.Server.SyncOnStart {
		go func() {
			report, _, err := svc.RunSync(context.Background(), arsync.TriggerStartup)
			if err != nil {
				logg.Error("Startup sync failed", zap.Error(err))
				return
			}
			printSyncReport(logg, report)
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(10 * time.Second)
}
