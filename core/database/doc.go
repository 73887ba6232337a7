// Package database opens the GORM connection used by the SQL backend.
//
// Connect supports MySQL (production) and SQLite (single node setups and tests).
// The MySQL DSN carries connection, read and write timeouts derived from
// TimeoutSeconds; the pool is sized for a long-running server.
//
// # Schema Inspection
//
// GetTableColumns reads a table's column list (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite). RequireColumns builds on it to reject a pre-existing table
// whose layout does not match what the backend writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	err = database.RequireColumns(db, "entries", "folder", "name", "value")
package database
