package services

import (
	"fmt"
	"log"

	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
)

// Event names pushed to the live dashboard channel.
const (
	EventPerformanceUpdated = "performance_updated"
	EventStreakUpdated      = "streak_updated"
	EventStatsUpdated       = "stats_updated"
)

// Broadcaster pushes a recompute result to a user's open connections.
type Broadcaster interface {
	ToUser(userID uuid.UUID, event string, data interface{})
}

// NotifyFunc records an in-app notification (and push, when configured).
type NotifyFunc func(userID uuid.UUID, notifType, title, body string, metadata map[string]interface{})

// RecomputeService runs the derived-state cascade after each committed action
// mutation: performance recompute, then streak update from today's completion
// flag, with the stats delta applied independently. Each step catches and
// logs its own failure; the raw action data stays authoritative and the next
// mutation retries the recompute naturally.
type RecomputeService struct {
	performance *PerformanceService
	streak      *StreakService
	stats       *StatsService

	// Optional hooks, wired at startup.
	Broadcaster Broadcaster
	Notify      NotifyFunc
}

func NewRecomputeService(performance *PerformanceService, streak *StreakService, stats *StatsService) *RecomputeService {
	return &RecomputeService{performance: performance, streak: streak, stats: stats}
}

// AfterMutation applies the full cascade for one committed mutation.
func (r *RecomputeService) AfterMutation(userID uuid.UUID, m Mutation) {
	if userID == uuid.Nil {
		return
	}

	perf, perfErr := r.performance.RecomputeToday(userID)
	if perfErr != nil {
		log.Printf("recompute: performance update failed for user %s: %v", userID, perfErr)
	}

	// The streak update only runs off a fresh performance record. A failed
	// recompute must not feed the streak a false "nothing completed today";
	// the step is skipped and the next mutation retries both.
	var streak *models.StreakRecord
	var newBest bool
	if perfErr == nil {
		todayCompleted := perf != nil && perf.Completed >= 1
		var err error
		streak, newBest, err = r.streak.Update(userID, todayCompleted)
		if err != nil {
			log.Printf("recompute: streak update failed for user %s: %v", userID, err)
		}
	}

	if err := r.stats.Apply(userID, m); err != nil {
		log.Printf("recompute: stats update failed for user %s: %v", userID, err)
	}

	r.publish(userID, perf, streak)

	if newBest && streak != nil && streak.Best > 1 {
		r.notifyNewBest(userID, streak)
	}
}

// publish pushes the refreshed derived state to the user's dashboard sockets.
func (r *RecomputeService) publish(userID uuid.UUID, perf *models.PerformanceRecord, streak *models.StreakRecord) {
	if r.Broadcaster == nil {
		return
	}
	if perf != nil {
		r.Broadcaster.ToUser(userID, EventPerformanceUpdated, perf)
	}
	if streak != nil {
		r.Broadcaster.ToUser(userID, EventStreakUpdated, streak)
	}
	if stats, err := r.stats.Get(userID); err == nil && stats != nil {
		r.Broadcaster.ToUser(userID, EventStatsUpdated, stats)
	}
}

func (r *RecomputeService) notifyNewBest(userID uuid.UUID, streak *models.StreakRecord) {
	if r.Notify == nil {
		return
	}
	r.Notify(userID, "new_best_streak",
		"New best streak!",
		fmt.Sprintf("%d days in a row, your longest run yet.", streak.Best),
		map[string]interface{}{
			"current": streak.Current,
			"best":    streak.Best,
		})
}
