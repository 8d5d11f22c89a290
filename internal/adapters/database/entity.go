package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuoteImage is the persisted row behind a quote entry.
type QuoteImage struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Quote     string    `gorm:"type:text;not null"`
	Author    *string   `gorm:"size:50"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName pins the table name.
func (QuoteImage) TableName() string {
	return "quote_images"
}

// BeforeCreate assigns a random UUID when none is set.
func (q *QuoteImage) BeforeCreate(_ *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	return nil
}
