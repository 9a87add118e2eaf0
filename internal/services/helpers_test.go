package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Action{},
		&models.PerformanceRecord{},
		&models.StreakRecord{},
		&models.UserStats{},
		&models.MotivationRecord{},
		&models.Notification{},
	))
	return db
}

// fakeClock is a settable clock for pinning day boundaries.
type fakeClock struct {
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Clock() datekey.Clock {
	return f.Now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fakeClock) Set(now time.Time) {
	f.now = now
}

func seedAction(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, createdAt time.Time, doneAt *time.Time) models.Action {
	t.Helper()

	action := models.Action{
		UserID:    userID,
		Title:     title,
		Done:      doneAt != nil,
		CreatedAt: createdAt,
		DoneAt:    doneAt,
	}
	require.NoError(t, db.Create(&action).Error)
	return action
}

func seedPerformance(t *testing.T, db *gorm.DB, userID uuid.UUID, dateKey string, completed, total int) {
	t.Helper()

	ratio := 0
	if total > 0 {
		ratio = completed * 100 / total
	}
	require.NoError(t, db.Create(&models.PerformanceRecord{
		UserID:    userID,
		DateKey:   dateKey,
		Completed: completed,
		Total:     total,
		Ratio:     ratio,
	}).Error)
}
