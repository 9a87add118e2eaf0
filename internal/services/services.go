package services

import (
	"github.com/DhavalCK/actify/internal/datekey"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Global service instances, wired once at startup.
var (
	Performance *PerformanceService
	Streak      *StreakService
	Stats       *StatsService
	Motivation  *MotivationService
	Recompute   *RecomputeService
	Actions     *ActionService
)

// Init builds the service graph on a shared database handle.
func Init(db *gorm.DB, clock datekey.Clock) {
	Performance = NewPerformanceService(db, clock)
	Streak = NewStreakService(db, clock, Performance)
	Stats = NewStatsService(db, clock)
	Motivation = NewMotivationService(db, clock, Performance, Streak)
	Recompute = NewRecomputeService(Performance, Streak, Stats)
	Actions = NewActionService(db, clock, Recompute)
}

// lockForUpdate adds a row lock on the singleton read inside a transaction.
// SQLite rejects FOR UPDATE and serializes writers on its own, so the clause
// is only applied on other dialects.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
