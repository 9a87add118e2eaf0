package services

import (
	"errors"
	"math"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceService derives the per-day completion summary from the actions
// table and persists it keyed by UTC day. Safe to call any number of times
// per day; the stored record only depends on the current action set.
type PerformanceService struct {
	db    *gorm.DB
	clock datekey.Clock
}

func NewPerformanceService(db *gorm.DB, clock datekey.Clock) *PerformanceService {
	return &PerformanceService{db: db, clock: clock}
}

// RecomputeToday counts today's actions (by CreatedAt, UTC day bounds) and
// upserts the PerformanceRecord for today's key. No-op without an identity.
func (s *PerformanceService) RecomputeToday(userID uuid.UUID) (*models.PerformanceRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	dateKey := datekey.TodayKey(s.clock)
	start, end, err := datekey.DayBounds(dateKey)
	if err != nil {
		return nil, err
	}

	var total, completed int64
	if err := s.db.Model(&models.Action{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Count(&total).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Action{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ? AND done = ?", userID, start, end, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	ratio := 0
	if total > 0 {
		ratio = int(math.Round(float64(completed) / float64(total) * 100))
	}

	var record models.PerformanceRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.PerformanceRecord{UserID: userID, DateKey: dateKey}
		} else if err != nil {
			return err
		}

		record.Completed = int(completed)
		record.Total = int(total)
		record.Ratio = ratio
		record.UpdatedAt = s.clock()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRecord returns the stored record for a day, or nil when none exists.
func (s *PerformanceService) GetRecord(userID uuid.UUID, dateKey string) (*models.PerformanceRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var record models.PerformanceRecord
	err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
