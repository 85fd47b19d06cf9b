package db

import (
	"github.com/gramflow/gramflow/internal/models"
)

// Migrate creates or updates the schema for all core tables. The unique
// indexes on account handle/email and the composite follow primary key
// carry the store-level uniqueness invariants.
func (d *DB) Migrate() error {
	return d.DB.AutoMigrate(
		&models.Account{},
		&models.Follow{},
		&models.Post{},
		&models.Image{},
	)
}
