package health

import (
	"context"
	"time"

	"ar-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const checkTimeout = 5 * time.Second

// Status is the body of GET /health.
type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Readiness is the body of GET /health/ready.
type Readiness struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Feature implements the loader.Feature interface.
type Feature struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewFeature creates the health feature. db and client may be nil.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Feature {
	return &Feature{db: db, client: client, bucket: bucket, logger: logger, now: time.Now}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "health"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/", f.HandleIndex)
	app.Get("/health", f.HandleHealth)
	app.Get("/health/ready", f.HandleReady)
	return nil
}

const indexPage = `<h1>NetSuite to HubSpot AR Sync</h1>
<p>POST /sync - Run sync manually</p>
<p>GET /sync/runs - Recent runs</p>
<p>GET /health - Health check</p>
<p>GET /health/ready - Dependency checks</p>
<p>GET /swagger/ - API documentation</p>
`

// HandleIndex lists the service endpoints.
// @Summary Index
// @Description Lists the service endpoints.
// @Tags health
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (f *Feature) HandleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexPage)
}

// HandleHealth reports that the process is up.
// @Summary Health
// @Description Liveness probe.
// @Tags health
// @Produce json
// @Success 200 {object} Status
// @Router /health [get]
func (f *Feature) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(Status{
		Status:    "ok",
		Timestamp: f.now().UTC().Format(time.RFC3339),
	})
}

// HandleReady checks the configured dependencies.
// @Summary Readiness
// @Description Checks the run-history database and object storage when configured.
// @Tags health
// @Produce json
// @Success 200 {object} Readiness
// @Failure 503 {object} Readiness
// @Router /health/ready [get]
func (f *Feature) HandleReady(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), checkTimeout)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if f.db != nil {
		if err := f.pingDB(ctx); err != nil {
			f.logger.Warn("Database not ready", zap.Error(err))
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if f.client != nil {
		exists, err := f.client.BucketExists(ctx, f.bucket)
		switch {
		case err != nil:
			f.logger.Warn("Storage not ready", zap.Error(err))
			checks["storage"] = err.Error()
			healthy = false
		case !exists:
			checks["storage"] = "bucket " + f.bucket + " does not exist"
			healthy = false
		default:
			checks["storage"] = "ok"
		}
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(Readiness{Status: "degraded", Checks: checks})
	}
	return c.JSON(Readiness{Status: "ok", Checks: checks})
}

func (f *Feature) pingDB(ctx context.Context) error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
