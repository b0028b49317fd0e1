package config

import (
	"fmt"

	"github.com/JerryLinyx/NewsSummarizer/models"
	"gorm.io/gorm"
)

// MigrateDB runs database migrations
func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Article{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
