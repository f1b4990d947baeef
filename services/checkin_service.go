package services

import (
	"context"
	"strings"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
)

type CheckinService interface {
	// Log всегда разрешён авторизованному пользователю, дубликаты допустимы.
	Log(ctx context.Context, session models.Session, input CreateCheckinInput) (*models.PersonalCheckin, error)
	List(ctx context.Context, session models.Session) ([]*models.CheckinView, error)
}

type CreateCheckinInput struct {
	ItemName string  `json:"item_name" validate:"required,max=200"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,max=500"`
}

type checkinService struct {
	tx       repositories.Transactor
	checkins repositories.CheckinRepository
	Notifier
}

func NewCheckinService(tx repositories.Transactor, checkins repositories.CheckinRepository, n Notifier) CheckinService {
	return &checkinService{tx: tx, checkins: checkins, Notifier: n}
}

func (s *checkinService) Log(ctx context.Context, session models.Session, input CreateCheckinInput) (*models.PersonalCheckin, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	input.ItemName = strings.TrimSpace(input.ItemName)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	checkin := &models.PersonalCheckin{
		UserID:   session.UserID,
		ItemName: input.ItemName,
		PhotoURL: emptyToNil(input.PhotoURL),
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.checkins.Create(ctx, exec, checkin)
	})
	if err != nil {
		return nil, storageError("create checkin", err)
	}

	s.notify(ctx, events.CheckinLogged, checkin.ID, session.UserID, checkin)
	return checkin, nil
}

func (s *checkinService) List(ctx context.Context, session models.Session) ([]*models.CheckinView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	var userID *int
	if !permissions.CanPerform(session.Role, permissions.ViewAllCheckins) {
		userID = &session.UserID
	}

	checkins, err := s.checkins.List(ctx, userID)
	if err != nil {
		return nil, storageError("list checkins", err)
	}
	return checkins, nil
}
