package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the quote_images table.
func AutoMigrate(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	err := db.WithContext(ctx).AutoMigrate(&QuoteImage{})
	if err != nil {
		return fmt.Errorf("migrate quote_images: %w", err)
	}

	logger.InfoContext(ctx, "database schema up to date")

	return nil
}
