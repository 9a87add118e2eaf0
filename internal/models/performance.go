package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceRecord is the per-user per-day completion summary.
// Ratio is the integer percentage 0..100 of today's actions marked done.
type PerformanceRecord struct {
	ID        uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_perf_user_day"`
	DateKey   string    `json:"date" gorm:"not null;uniqueIndex:idx_perf_user_day"`
	Completed int       `json:"completed" gorm:"default:0"`
	Total     int       `json:"total" gorm:"default:0"`
	Ratio     int       `json:"ratio" gorm:"default:0"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *PerformanceRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
