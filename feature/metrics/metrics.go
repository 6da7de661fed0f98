package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Feature implements the loader.Feature interface.
type Feature struct {
	gatherer prometheus.Gatherer
	enabled  bool
}

// NewFeature creates the metrics feature.
func NewFeature(gatherer prometheus.Gatherer, enabled bool) *Feature {
	return &Feature{gatherer: gatherer, enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "metrics"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled && f.gatherer != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(f.gatherer, promhttp.HandlerOpts{})))
	return nil
}
