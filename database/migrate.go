package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gymdesk_backend/internal/models"
)

// Connect opens a GORM connection for the given postgres DSN.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates tables for every model. SequenceCounter
// must exist before the first registration mints an ID.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SequenceCounter{},
		&models.Plan{},
		&models.Trainer{},
		&models.Member{},
		&models.TrainerMember{},
		&models.Attendance{},
		&models.Payment{},
	)
}
