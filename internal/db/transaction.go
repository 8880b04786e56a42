package db

import (
	"context"

	"gorm.io/gorm"
)

// InTransaction runs fn inside a database transaction. fn receives a DB bound
// to the transaction; returning an error rolls it back.
func (db *DB) InTransaction(ctx context.Context, fn func(tx *DB) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{tx})
	})
}
