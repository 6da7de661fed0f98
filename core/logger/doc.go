// Package logger provides a structured logging facility based on Zap.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the log entry,
// so all lines for one /sync request can be correlated with the run they triggered.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (interactive CLI runs)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Sync started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Sync failed", zap.Error(err))
package logger
