package services

import (
	"errors"
	"hash/fnv"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message buckets, selected by today's completion ratio and current streak.
var (
	perfectDayMessages = []string{
		"A perfect day. Every single action done. That's rare air.",
		"100%. Nothing left on the list. Enjoy the quiet.",
		"Clean sweep today. This is what momentum looks like.",
	}
	highRatioMessages = []string{
		"Strong day. Most of your list is behind you already.",
		"You are closing actions faster than you add them. Keep going.",
		"Nearly there. A push like this compounds quickly.",
	}
	mediumRatioStreakMessages = []string{
		"Halfway through the list and the streak is alive. Protect it.",
		"Your streak is doing the heavy lifting, one more action locks today in.",
	}
	mediumRatioMessages = []string{
		"A decent dent in the list. One more action tips the day your way.",
		"Half done beats none done. Pick the smallest item and finish it.",
	}
	lowRatioStreakMessages = []string{
		"The list looks long, but your streak says you finish things. Start small.",
		"Slow day so far, but your streak survives with a single completed action.",
	}
	lowRatioMessages = []string{
		"Every streak starts with one action. Pick one, finish it, done.",
		"Forget the whole list. Just do the next small thing.",
	}
	defaultMessages = []string{
		"Nice work. Showing up today matters more than perfection.",
		"Small daily actions beat grand occasional plans.",
	}
)

// MotivationService is a read-through cache over generated daily messages,
// keyed by (user, day). Generation runs at most once per day unless forced;
// concurrent first reads may both generate, the overwrite is benign.
type MotivationService struct {
	db          *gorm.DB
	clock       datekey.Clock
	performance *PerformanceService
	streak      *StreakService
}

func NewMotivationService(db *gorm.DB, clock datekey.Clock, performance *PerformanceService, streak *StreakService) *MotivationService {
	return &MotivationService{db: db, clock: clock, performance: performance, streak: streak}
}

// Get returns the cached text for (userID, dateKey), generating and storing
// it on a miss. Force bypasses the cache check.
func (s *MotivationService) Get(userID uuid.UUID, dateKey string, force bool) (*models.MotivationRecord, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var record models.MotivationRecord
	err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&record).Error
	if err == nil && !force {
		return &record, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	missing := errors.Is(err, gorm.ErrRecordNotFound)

	text, err := s.generate(userID, dateKey)
	if err != nil {
		return nil, err
	}

	if missing {
		record = models.MotivationRecord{UserID: userID, DateKey: dateKey}
	}
	record.Text = text
	record.GeneratedAt = s.clock()
	if err := s.db.Save(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// generate picks a message bucket from the day's ratio and current streak.
func (s *MotivationService) generate(userID uuid.UUID, dateKey string) (string, error) {
	perf, err := s.performance.GetRecord(userID, dateKey)
	if err != nil {
		return "", err
	}
	streak, err := s.streak.Get(userID)
	if err != nil {
		return "", err
	}

	current := 0
	if streak != nil {
		current = streak.Current
	}

	var bucket []string
	switch {
	case perf == nil:
		bucket = defaultMessages
	case perf.Ratio == 100:
		bucket = perfectDayMessages
	case perf.Ratio >= 70:
		bucket = highRatioMessages
	case perf.Ratio >= 30 && current >= 3:
		bucket = mediumRatioStreakMessages
	case perf.Ratio >= 30:
		bucket = mediumRatioMessages
	case current >= 3:
		bucket = lowRatioStreakMessages
	default:
		bucket = lowRatioMessages
	}

	return pickMessage(bucket, userID, dateKey), nil
}

// pickMessage selects a stable message per (user, day) so regeneration
// without force returns the same text.
func pickMessage(bucket []string, userID uuid.UUID, dateKey string) string {
	h := fnv.New32a()
	h.Write([]byte(userID.String()))
	h.Write([]byte(dateKey))
	return bucket[h.Sum32()%uint32(len(bucket))]
}
