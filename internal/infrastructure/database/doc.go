// Package database provides SQLite connectivity for cartool.
//
// The simulated vehicle keeps its property definitions and current values
// in SQLite so that state written through the API survives a restart. The
// function call audit log lives in the same database.
//
// This package manages:
//   - The connection, with WAL mode and a busy timeout
//   - Schema migrations read from an fs.FS (see package migrations)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
package database
