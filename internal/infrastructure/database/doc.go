// Package database provides SQLite connectivity for the TripFlow store.
//
// This package manages:
//   - The single process-wide connection handle (lazily opened via Provider)
//   - Versioned schema migrations recorded in a schema_migrations ledger
//   - Foreign-key enforcement for every connection
//   - Health checks and lifecycle management
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//   - Encryption at rest is deferred to the host OS
//
// Usage:
//
//	provider := database.NewProvider(database.Config{Path: cfg.Database.Path})
//	db, err := provider.Get(ctx) // opens and migrates on first call
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
// Migration Strategy:
//
// Migrations are embedded SQL files applied in version order, each in its
// own transaction, and recorded in the schema_migrations table. A failed
// migration aborts initialisation; "already applied" is decided by the
// ledger, never by interpreting statement errors. Each migration file has
// both .up.sql and .down.sql:
//
//	20240105_120000_initial_schema.up.sql
//	20240105_120000_initial_schema.down.sql
package database
