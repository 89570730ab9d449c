package db

import (
	"contact_api/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	return db.AutoMigrate(&domain.User{}, &domain.Contact{}, &domain.Address{})
}

// MustMigrate connects with the given DSN and migrates, exiting on failure
func MustMigrate(dsn string) {
	db, err := Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := Migrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}
