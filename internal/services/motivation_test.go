package services

import (
	"testing"
	"time"

	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var motivationNow = time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)

func newMotivationFixture(t *testing.T) (*MotivationService, uuid.UUID) {
	t.Helper()

	db := testDB(t)
	clock := newFakeClock(motivationNow)
	performance := NewPerformanceService(db, clock.Clock())
	streak := NewStreakService(db, clock.Clock(), performance)
	return NewMotivationService(db, clock.Clock(), performance, streak), uuid.New()
}

func TestMotivationGet_CachedReadsAreIdentical(t *testing.T) {
	motivation, userID := newMotivationFixture(t)

	first, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	second, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	motivation.db.Model(&models.MotivationRecord{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMotivationGet_ForceOverwritesInPlace(t *testing.T) {
	motivation, userID := newMotivationFixture(t)

	first, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)

	forced, err := motivation.Get(userID, "2024-05-02", true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, forced.ID)

	var count int64
	motivation.db.Model(&models.MotivationRecord{}).Where("user_id = ?", userID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMotivationGet_PerfectDayBucket(t *testing.T) {
	motivation, userID := newMotivationFixture(t)
	seedPerformance(t, motivation.db, userID, "2024-05-02", 3, 3)

	record, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	assert.Contains(t, perfectDayMessages, record.Text)
}

func TestMotivationGet_HighRatioBucket(t *testing.T) {
	motivation, userID := newMotivationFixture(t)
	seedPerformance(t, motivation.db, userID, "2024-05-02", 3, 4) // 75%

	record, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	assert.Contains(t, highRatioMessages, record.Text)
}

func TestMotivationGet_MediumRatioSplitsByStreak(t *testing.T) {
	motivation, userID := newMotivationFixture(t)
	seedPerformance(t, motivation.db, userID, "2024-05-02", 1, 2) // 50%
	require.NoError(t, motivation.db.Create(&models.StreakRecord{
		UserID: userID, Current: 4, Best: 4,
	}).Error)

	record, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	assert.Contains(t, mediumRatioStreakMessages, record.Text)
}

func TestMotivationGet_LowRatioWithoutStreak(t *testing.T) {
	motivation, userID := newMotivationFixture(t)
	seedPerformance(t, motivation.db, userID, "2024-05-02", 0, 5)

	record, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	assert.Contains(t, lowRatioMessages, record.Text)
}

func TestMotivationGet_NoPerformanceUsesDefaultBucket(t *testing.T) {
	motivation, userID := newMotivationFixture(t)

	record, err := motivation.Get(userID, "2024-05-02", false)
	require.NoError(t, err)
	assert.Contains(t, defaultMessages, record.Text)
}

func TestMotivationGet_NoIdentityIsNoop(t *testing.T) {
	motivation, _ := newMotivationFixture(t)

	record, err := motivation.Get(uuid.Nil, "2024-05-02", false)
	require.NoError(t, err)
	assert.Nil(t, record)
}
