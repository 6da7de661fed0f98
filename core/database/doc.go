// Package database handles the optional run-history database connection.
//
// It wraps GORM and configures either MySQL (deployments) or SQLite (local runs and
// tests). The sync works without a database; Connect errors are logged and history
// persistence is skipped.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Run history disabled", zap.Error(err))
//	}
package database
