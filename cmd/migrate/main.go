package main

import (
	"contact_api/internal/config" // Custom import path (Config)
	"contact_api/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.MustMigrate(cfg.DSN())
}
