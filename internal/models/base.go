package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the UUID primary key and creation time shared by persisted rows.
type Base struct {
	ID        string    `json:"id"         gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}
