// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration. The filter uses a database
// only when its source is a db://table/column location.
//
// # Schema Inspection
//
// GetTableColumns and HasColumn verify that the configured table and column
// exist before identifiers are read, so a typo surfaces as a clear load error
// instead of an empty snapshot.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	ok, err := database.HasColumn(db, "blocked_members", "member_id")
package database
