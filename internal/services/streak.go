package services

import (
	"errors"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakService maintains the per-user streak singleton.
//
// The record rolls forward exactly once per UTC day: the first update of a
// day recomputes PreviousStreak from yesterday's completion, every later
// update the same day reuses it. Current therefore dips back to
// PreviousStreak (not zero) when today's last completed action is un-done.
type StreakService struct {
	db          *gorm.DB
	clock       datekey.Clock
	performance *PerformanceService
}

func NewStreakService(db *gorm.DB, clock datekey.Clock, performance *PerformanceService) *StreakService {
	return &StreakService{db: db, clock: clock, performance: performance}
}

// yesterdayCompleted reports whether yesterday's PerformanceRecord has at
// least one completed action. Missing record counts as not completed.
func (s *StreakService) yesterdayCompleted(userID uuid.UUID) (bool, error) {
	record, err := s.performance.GetRecord(userID, datekey.YesterdayKey(s.clock))
	if err != nil {
		return false, err
	}
	return record != nil && record.Completed >= 1, nil
}

// Update applies the streak transition for todayCompleted and persists the
// result. Returns the new record and whether Best increased. Concurrent
// same-day updates are serialized by a row lock on the singleton.
func (s *StreakService) Update(userID uuid.UUID, todayCompleted bool) (*models.StreakRecord, bool, error) {
	if userID == uuid.Nil {
		return nil, false, nil
	}

	todayKey := datekey.TodayKey(s.clock)
	yesterdayCompleted, err := s.yesterdayCompleted(userID)
	if err != nil {
		return nil, false, err
	}

	var record models.StreakRecord
	newBest := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where("user_id = ?", userID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.StreakRecord{UserID: userID}
		} else if err != nil {
			return err
		}

		// Roll the baseline forward once per calendar day.
		if record.LastUpdatedKey != todayKey {
			if yesterdayCompleted {
				record.PreviousStreak = record.Current
			} else {
				record.PreviousStreak = 0
			}
		}

		if todayCompleted {
			record.Current = record.PreviousStreak + 1
		} else {
			record.Current = record.PreviousStreak
		}
		if record.Current > record.Best {
			record.Best = record.Current
			newBest = true
		}

		record.LastUpdatedKey = todayKey
		record.UpdatedAt = s.clock()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &record, newBest, nil
}

// Get returns the stored streak record, or a zero record when none exists.
func (s *StreakService) Get(userID uuid.UUID) (*models.StreakRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var record models.StreakRecord
	err := s.db.Where("user_id = ?", userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.StreakRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
