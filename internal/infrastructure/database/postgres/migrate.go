package postgres

import (
	"fmt"

	"donation-hub/internal/infrastructure/database/postgres/models"
	"donation-hub/internal/logger"
)

// Migrate brings the schema up to date for all persisted entities.
func (d *DB) Migrate() error {
	if err := d.DB.AutoMigrate(
		&models.UserModel{},
		&models.PasswordResetTokenModel{},
		&models.DonationModel{},
		&models.ContactMessageModel{},
	); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	logger.Info("Database migrations applied")
	return nil
}
