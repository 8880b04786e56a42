package db

import "fmt"

// Migrate creates or updates the schema for the given models.
func (db *DB) Migrate(models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
