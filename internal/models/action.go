package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Action struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Title     string         `json:"title" gorm:"not null"`
	Done      bool           `json:"done" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
	DoneAt    *time.Time     `json:"doneAt" gorm:"index"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (a *Action) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Action DTOs
type CreateActionRequest struct {
	Title string `json:"title" validate:"required"`
}

type ActionPage struct {
	Actions []Action `json:"actions"`
	HasMore bool     `json:"hasMore"`
}
