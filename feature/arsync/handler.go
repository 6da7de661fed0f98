package arsync

import (
	"errors"

	"ar-sync/core/logger"
	"ar-sync/feature/arsync/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SyncResponse is the body returned by POST /sync.
type SyncResponse struct {
	Success  bool   `json:"success"`
	Updated  int    `json:"updated"`
	Created  int    `json:"created"`
	NotFound int    `json:"not_found"`
	Errors   int    `json:"errors"`
	Total    int    `json:"total"`
	Shared   bool   `json:"shared"`
	DryRun   bool   `json:"dry_run"`
	Error    string `json:"error,omitempty"`
}

// Handler handles HTTP requests for the sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSync)
	group.Get("/runs", h.HandleListRuns)
}

// HandleSync runs a sync and returns its outcome.
// @Summary Run Sync
// @Description Sync NetSuite receivables into HubSpot companies. A request made while a run is in progress receives that run's outcome.
// @Tags sync
// @Produce json
// @Success 200 {object} SyncResponse "Outcome"
// @Failure 500 {object} SyncResponse "Run failed"
// @Security ApiKeyAuth
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, shared, err := h.service.RunSync(c.UserContext(), TriggerHTTP)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(SyncResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	l.Info("Sync completed", zap.Bool("shared", shared), zap.Int("total", report.Outcome.Total))
	return c.JSON(responseFromReport(report, shared))
}

// HandleListRuns returns recent runs.
// @Summary List Runs
// @Description List recent sync runs, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum number of runs (1-100)" default(20)
// @Success 200 {array} models.SyncRun "Runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /sync/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	runs, err := h.service.RecentRuns(c.UserContext(), limit)
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		logger.WithRayID(h.service.logger, c).Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(runs)
}

func responseFromReport(report *models.Report, shared bool) SyncResponse {
	return SyncResponse{
		Success:  true,
		Updated:  report.Outcome.Updated,
		Created:  report.Outcome.Created,
		NotFound: report.Outcome.NotFound,
		Errors:   report.Outcome.Errors,
		Total:    report.Outcome.Total,
		Shared:   shared,
		DryRun:   report.DryRun,
	}
}
