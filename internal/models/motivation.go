package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MotivationRecord caches the generated motivational text for one user/day.
type MotivationRecord struct {
	ID          uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_motivation_user_day"`
	DateKey     string    `json:"date" gorm:"not null;uniqueIndex:idx_motivation_user_day"`
	Text        string    `json:"text" gorm:"not null"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func (m *MotivationRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Generation endpoint DTOs
type GenerateMotivationRequest struct {
	UID     string `json:"uid"`
	DateKey string `json:"dateKey"`
	Force   bool   `json:"force"`
}

type MotivationResponse struct {
	Text        string    `json:"text"`
	Date        string    `json:"date"`
	GeneratedAt time.Time `json:"generatedAt"`
}
