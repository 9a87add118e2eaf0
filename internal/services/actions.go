package services

import (
	"errors"
	"strings"
	"time"

	"github.com/DhavalCK/actify/internal/datekey"
	"github.com/DhavalCK/actify/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed page size of the list/history read models.
const PageSize = 20

var (
	ErrEmptyTitle     = errors.New("actions: title must not be empty")
	ErrActionNotFound = errors.New("actions: not found")
)

// ActionService owns the raw action records. Every mutation commits first and
// then hands a description of itself to the recompute cascade, so derived
// state always observes the committed write. All mutations are silent no-ops
// without a user identity.
type ActionService struct {
	db        *gorm.DB
	clock     datekey.Clock
	recompute *RecomputeService
}

func NewActionService(db *gorm.DB, clock datekey.Clock, recompute *RecomputeService) *ActionService {
	return &ActionService{db: db, clock: clock, recompute: recompute}
}

// Add creates a pending action. The title must be non-empty after trimming.
func (s *ActionService) Add(userID uuid.UUID, title string) (*models.Action, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	action := models.Action{
		UserID:    userID,
		Title:     title,
		Done:      false,
		CreatedAt: s.clock(),
	}
	if err := s.db.Create(&action).Error; err != nil {
		return nil, err
	}

	s.recompute.AfterMutation(userID, Mutation{Kind: ActionAdded, Action: action})
	return &action, nil
}

// Remove deletes the user's action by id.
func (s *ActionService) Remove(userID, actionID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}

	var action models.Action
	err := s.db.Where("id = ? AND user_id = ?", actionID, userID).First(&action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActionNotFound
	}
	if err != nil {
		return err
	}

	if err := s.db.Delete(&action).Error; err != nil {
		return err
	}

	// The cascade gets the pre-delete snapshot; the stats delta needs the
	// deleted item's done flag and age.
	s.recompute.AfterMutation(userID, Mutation{Kind: ActionDeleted, Action: action})
	return nil
}

// Toggle flips done. DoneAt is set on false->true and cleared on true->false.
func (s *ActionService) Toggle(userID, actionID uuid.UUID) (*models.Action, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	var action models.Action
	err := s.db.Where("id = ? AND user_id = ?", actionID, userID).First(&action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActionNotFound
	}
	if err != nil {
		return nil, err
	}

	action.Done = !action.Done
	if action.Done {
		now := s.clock()
		action.DoneAt = &now
	} else {
		action.DoneAt = nil
	}

	if err := s.db.Save(&action).Error; err != nil {
		return nil, err
	}

	s.recompute.AfterMutation(userID, Mutation{Kind: ActionToggled, Action: action})
	return &action, nil
}

// List returns a page of the user's actions ordered by creation, newest
// first. A nil before cursor means the first page.
func (s *ActionService) List(userID uuid.UUID, before *time.Time) (*models.ActionPage, error) {
	if userID == uuid.Nil {
		return &models.ActionPage{Actions: []models.Action{}}, nil
	}

	query := s.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(PageSize + 1)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var actions []models.Action
	if err := query.Find(&actions).Error; err != nil {
		return nil, err
	}
	return pageOf(actions), nil
}

// History returns a page of completed actions ordered by completion time,
// newest first. This backs the "load more" history view.
func (s *ActionService) History(userID uuid.UUID, before *time.Time) (*models.ActionPage, error) {
	if userID == uuid.Nil {
		return &models.ActionPage{Actions: []models.Action{}}, nil
	}

	query := s.db.Where("user_id = ? AND done = ?", userID, true).
		Order("done_at DESC").Limit(PageSize + 1)
	if before != nil {
		query = query.Where("done_at < ?", *before)
	}

	var actions []models.Action
	if err := query.Find(&actions).Error; err != nil {
		return nil, err
	}
	return pageOf(actions), nil
}

// pageOf trims the probe row used to detect whether another page exists.
func pageOf(actions []models.Action) *models.ActionPage {
	hasMore := len(actions) > PageSize
	if hasMore {
		actions = actions[:PageSize]
	}
	if actions == nil {
		actions = []models.Action{}
	}
	return &models.ActionPage{Actions: actions, HasMore: hasMore}
}
