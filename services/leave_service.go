package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
)

type LeaveService interface {
	Request(ctx context.Context, session models.Session, input CreateLeaveInput) (*models.LeaveRequest, error)
	// List: капитан и тренер видят все заявки, остальные только свои.
	List(ctx context.Context, session models.Session) ([]*models.LeaveView, error)
}

const MaxLeaveHours = 9999.99

type CreateLeaveInput struct {
	TrainingID    *int    `json:"training_id"`
	MatchID       *int    `json:"match_id"`
	DurationHours float64 `json:"duration_hours"`
	Reason        string  `json:"reason" validate:"required,max=500"`
}

type leaveService struct {
	tx        repositories.Transactor
	leaves    repositories.LeaveRepository
	trainings repositories.TrainingRepository
	matches   repositories.MatchRepository
	Notifier
}

func NewLeaveService(
	tx repositories.Transactor,
	leaves repositories.LeaveRepository,
	trainings repositories.TrainingRepository,
	matches repositories.MatchRepository,
	n Notifier,
) LeaveService {
	return &leaveService{
		tx:        tx,
		leaves:    leaves,
		trainings: trainings,
		matches:   matches,
		Notifier:  n,
	}
}

func (s *leaveService) Request(ctx context.Context, session models.Session, input CreateLeaveInput) (*models.LeaveRequest, error) {
	if err := authorize(session, permissions.CreateLeave); err != nil {
		return nil, err
	}
	input.Reason = strings.TrimSpace(input.Reason)
	// колонка NUMERIC(6,2): два знака после запятой, не больше 9999.99
	input.DurationHours = math.Round(input.DurationHours*100) / 100
	if input.DurationHours <= 0 || input.DurationHours > MaxLeaveHours {
		return nil, ErrInvalidDuration
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.TrainingID != nil && input.MatchID != nil {
		return nil, ErrLeaveTargetAmbiguous
	}

	leave := &models.LeaveRequest{
		RequesterID:   session.UserID,
		TrainingID:    input.TrainingID,
		MatchID:       input.MatchID,
		DurationHours: input.DurationHours,
		Reason:        input.Reason,
		Status:        models.LeaveStatusPending,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// FOR SHARE не даёт удалить тренировку/матч до конца транзакции
		if leave.TrainingID != nil {
			exists, err := s.trainings.Exists(ctx, exec, *leave.TrainingID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrLeaveTargetNotFound
			}
		}
		if leave.MatchID != nil {
			exists, err := s.matches.Exists(ctx, exec, *leave.MatchID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrLeaveTargetNotFound
			}
		}

		err := s.leaves.Create(ctx, exec, leave)
		switch {
		case errors.Is(err, repositories.ErrLeaveTargetInvalid):
			return ErrLeaveTargetNotFound
		case errors.Is(err, repositories.ErrValueOutOfRange):
			return ErrInvalidDuration
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, storageError("create leave request", err)
	}

	s.notify(ctx, events.LeaveRequested, leave.ID, session.UserID, leave)
	return leave, nil
}

func (s *leaveService) List(ctx context.Context, session models.Session) ([]*models.LeaveView, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	var requesterID *int
	if !permissions.CanPerform(session.Role, permissions.ViewAllLeaves) {
		requesterID = &session.UserID
	}

	leaves, err := s.leaves.List(ctx, requesterID)
	if err != nil {
		return nil, storageError("list leave requests", err)
	}
	return leaves, nil
}
