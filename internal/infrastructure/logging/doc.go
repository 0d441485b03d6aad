// Package logging provides structured logging for TripFlow.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across the entire application.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Colored text output for development (human-readable, via tint)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
// Logging is configured via the LoggingConfig in config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("database opened", "path", cfg.Database.Path)
//	logger.Error("migration failed", "error", err)
//
// # Security
//
// Never log passwords, hashes, or salts. Auth code logs email addresses
// only where sign-up or login is already user-initiated.
package logging
