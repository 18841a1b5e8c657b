package database

import (
	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

// Migrate creates or updates the schema for every lifecycle entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Skill{},
		&domain.TaskerSkill{},
		&domain.Task{},
		&domain.Bid{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.Review{},
		&domain.Notification{},
		&domain.Message{},
	)
}
