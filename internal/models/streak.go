package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakRecord is the per-user streak singleton.
//
// PreviousStreak is the streak carried into the current day before today's
// own completions are counted; Current collapses back to it when today's
// completions are all un-done. LastUpdatedKey is the UTC day the record was
// last recomputed and is what makes repeated same-day updates idempotent.
type StreakRecord struct {
	ID             uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	Current        int       `json:"current" gorm:"default:0"`
	Best           int       `json:"best" gorm:"default:0"`
	PreviousStreak int       `json:"previousStreak" gorm:"default:0"`
	LastUpdatedKey string    `json:"lastUpdatedKey"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s *StreakRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
