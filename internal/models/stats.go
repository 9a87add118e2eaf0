package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStats is the per-user aggregate singleton, maintained incrementally on
// every action mutation and fully rebuildable from the actions table.
//
// Averages are stored directly (no running sums), so some deletion/undo paths
// cannot be exactly reversed; the drift is corrected by RecalculateAll.
type UserStats struct {
	ID               uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	TotalActions     int       `json:"totalActions" gorm:"default:0"`
	CompletedActions int       `json:"completedActions" gorm:"default:0"`

	// Global percentage 0..100 of actions ever completed.
	CompletionAverage float64 `json:"completionAverage" gorm:"default:0"`

	// Procrastination: time between creating an action and completing it.
	ProcAvgMs          float64 `json:"procAvgMs" gorm:"default:0"`
	ProcSameDayPercent float64 `json:"procSameDayPercent" gorm:"default:0"`

	// Age of actions still pending, measured from creation to now.
	PendingAvgAgeMs float64 `json:"pendingAvgAgeMs" gorm:"default:0"`
	PendingMaxAgeMs int64   `json:"pendingMaxAgeMs" gorm:"default:0"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *UserStats) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *UserStats) PendingCount() int {
	return s.TotalActions - s.CompletedActions
}
