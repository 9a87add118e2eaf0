package services

import (
	"errors"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MutationKind classifies an action mutation for the incremental stats paths.
type MutationKind string

const (
	ActionAdded   MutationKind = "added"
	ActionDeleted MutationKind = "deleted"
	ActionToggled MutationKind = "toggled"
)

// Mutation describes one action mutation. For deletes, Action is the record
// as it was before deletion; for toggles, the record after the flip.
type Mutation struct {
	Kind   MutationKind
	Action models.Action
}

// errNoStatsRow signals that the incremental path found no aggregate document
// and a full rescan must build it instead.
var errNoStatsRow = errors.New("stats: no aggregate row")

// StatsService maintains the UserStats singleton incrementally, one delta per
// action mutation, inside a locked read-modify-write. Known, accepted drift:
//   - PendingMaxAgeMs is not lowered when the oldest pending action is
//     deleted (finding the next max needs a scan).
//   - Deleting a completed action leaves ProcAvgMs/ProcSameDayPercent
//     untouched unless it was the last one (then both reset to 0).
//   - Un-doing a completed action removes it from the sample count but the
//     duration it contributed is unknown, so the averages keep their value.
//
// RecalculateAll is the reconciliation path for all of the above.
type StatsService struct {
	db    *gorm.DB
	clock datekey.Clock
}

func NewStatsService(db *gorm.DB, clock datekey.Clock) *StatsService {
	return &StatsService{db: db, clock: clock}
}

// Apply folds one mutation into the stored aggregate. When no aggregate row
// exists yet it falls back to a full rescan, which already reflects the
// committed mutation.
func (s *StatsService) Apply(userID uuid.UUID, m Mutation) error {
	if userID == uuid.Nil {
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var stats models.UserStats
		err := lockForUpdate(tx).Where("user_id = ?", userID).First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNoStatsRow
		}
		if err != nil {
			return err
		}

		switch m.Kind {
		case ActionAdded:
			s.applyAdded(&stats)
		case ActionDeleted:
			s.applyDeleted(&stats, m.Action)
		case ActionToggled:
			s.applyToggled(&stats, m.Action)
		}

		stats.UpdatedAt = s.clock()
		return tx.Save(&stats).Error
	})
	if errors.Is(err, errNoStatsRow) {
		_, err = s.RecalculateAll(userID)
	}
	return err
}

func (s *StatsService) applyAdded(stats *models.UserStats) {
	oldPending := stats.PendingCount()
	newPending := oldPending + 1

	// New action enters with age 0 and pulls the average down.
	pendingSum := stats.PendingAvgAgeMs * float64(oldPending)
	stats.PendingAvgAgeMs = pendingSum / float64(newPending)

	stats.TotalActions++
	stats.CompletionAverage = completionAverage(stats.CompletedActions, stats.TotalActions)
}

func (s *StatsService) applyDeleted(stats *models.UserStats, action models.Action) {
	stats.TotalActions = maxInt(0, stats.TotalActions-1)

	if action.Done {
		stats.CompletedActions = maxInt(0, stats.CompletedActions-1)
		stats.CompletionAverage = completionAverage(stats.CompletedActions, stats.TotalActions)

		// Single-deletion drift is accepted; only the terminal case resets.
		if stats.CompletedActions == 0 {
			stats.ProcAvgMs = 0
			stats.ProcSameDayPercent = 0
		}
		return
	}

	oldPending := stats.PendingCount() + 1 // count before TotalActions was decremented
	newPending := maxInt(0, oldPending-1)

	age := float64(s.clock().Sub(action.CreatedAt).Milliseconds())
	pendingSum := stats.PendingAvgAgeMs*float64(oldPending) - age
	if pendingSum < 0 {
		pendingSum = 0
	}
	if newPending > 0 {
		stats.PendingAvgAgeMs = pendingSum / float64(newPending)
	} else {
		stats.PendingAvgAgeMs = 0
	}

	stats.CompletionAverage = completionAverage(stats.CompletedActions, stats.TotalActions)
}

func (s *StatsService) applyToggled(stats *models.UserStats, action models.Action) {
	now := s.clock()
	age := float64(now.Sub(action.CreatedAt).Milliseconds())

	oldPending := stats.PendingCount()
	oldCompleted := stats.CompletedActions

	if action.Done {
		// Pending -> done: the item's age leaves the pending pool and its
		// completion duration enters the procrastination pool.
		stats.CompletedActions++
		newPending := maxInt(0, oldPending-1)

		pendingSum := stats.PendingAvgAgeMs*float64(oldPending) - age
		if pendingSum < 0 {
			pendingSum = 0
		}
		if newPending > 0 {
			stats.PendingAvgAgeMs = pendingSum / float64(newPending)
		} else {
			stats.PendingAvgAgeMs = 0
		}

		duration := float64(0)
		sameDay := false
		if action.DoneAt != nil {
			duration = float64(action.DoneAt.Sub(action.CreatedAt).Milliseconds())
			sameDay = datekey.SameDay(action.CreatedAt, *action.DoneAt)
		}

		procSum := stats.ProcAvgMs*float64(oldCompleted) + duration
		sameDayCount := stats.ProcSameDayPercent / 100 * float64(oldCompleted)
		if sameDay {
			sameDayCount++
		}
		stats.ProcAvgMs = procSum / float64(stats.CompletedActions)
		stats.ProcSameDayPercent = sameDayCount / float64(stats.CompletedActions) * 100
	} else {
		// Done -> pending: the duration this item contributed is not tracked
		// individually, so the proc averages keep their value.
		stats.CompletedActions = maxInt(0, stats.CompletedActions-1)
		newPending := oldPending + 1

		pendingSum := stats.PendingAvgAgeMs*float64(oldPending) + age
		stats.PendingAvgAgeMs = pendingSum / float64(newPending)
	}

	stats.CompletionAverage = completionAverage(stats.CompletedActions, stats.TotalActions)
}

// RecalculateAll rebuilds every field from a single pass over the user's
// actions and overwrites the stored aggregate.
func (s *StatsService) RecalculateAll(userID uuid.UUID) (*models.UserStats, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var actions []models.Action
	if err := s.db.Where("user_id = ?", userID).Find(&actions).Error; err != nil {
		return nil, err
	}

	now := s.clock()
	total := 0
	completed := 0
	procTotalMs := float64(0)
	procSameDay := 0
	pendingTotalAgeMs := float64(0)
	pendingMaxAgeMs := int64(0)

	for _, action := range actions {
		total++
		if action.Done {
			completed++
			if action.DoneAt != nil {
				procTotalMs += float64(action.DoneAt.Sub(action.CreatedAt).Milliseconds())
				if datekey.SameDay(action.CreatedAt, *action.DoneAt) {
					procSameDay++
				}
			}
			continue
		}

		ageMs := now.Sub(action.CreatedAt).Milliseconds()
		pendingTotalAgeMs += float64(ageMs)
		if ageMs > pendingMaxAgeMs {
			pendingMaxAgeMs = ageMs
		}
	}

	pending := total - completed

	var stats models.UserStats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where("user_id = ?", userID).First(&stats).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.UserStats{UserID: userID}
		} else if err != nil {
			return err
		}

		stats.TotalActions = total
		stats.CompletedActions = completed
		stats.CompletionAverage = completionAverage(completed, total)
		stats.ProcAvgMs = average(procTotalMs, completed)
		stats.ProcSameDayPercent = completionAverage(procSameDay, completed)
		stats.PendingAvgAgeMs = average(pendingTotalAgeMs, pending)
		stats.PendingMaxAgeMs = pendingMaxAgeMs
		stats.UpdatedAt = now
		return tx.Save(&stats).Error
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Get returns the stored aggregate, building it via full rescan when absent.
func (s *StatsService) Get(userID uuid.UUID) (*models.UserStats, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var stats models.UserStats
	err := s.db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.RecalculateAll(userID)
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func completionAverage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func average(sum float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return sum / float64(count)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
