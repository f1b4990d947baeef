package services

import (
	"context"
	"errors"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
)

type TrainingService interface {
	Create(ctx context.Context, session models.Session, input CreateTrainingInput) (*models.TrainingSession, error)
	List(ctx context.Context) ([]*models.TrainingSession, error)
	// Delete удаляет тренировку вместе со всеми заявками на отпуск по ней.
	Delete(ctx context.Context, session models.Session, id int) (*CascadeReport, error)
}

type CreateTrainingInput struct {
	StartTime   string           `json:"start_time" validate:"required"`
	EndTime     string           `json:"end_time" validate:"required"`
	PlanContent models.PlanItems `json:"plan_content"`
}

type trainingService struct {
	tx        repositories.Transactor
	trainings repositories.TrainingRepository
	leaves    repositories.LeaveRepository
	cascade   *CascadeEngine
	Notifier
}

func NewTrainingService(
	tx repositories.Transactor,
	trainings repositories.TrainingRepository,
	leaves repositories.LeaveRepository,
	cascade *CascadeEngine,
	n Notifier,
) TrainingService {
	return &trainingService{
		tx:        tx,
		trainings: trainings,
		leaves:    leaves,
		cascade:   cascade,
		Notifier:  n,
	}
}

func (s *trainingService) Create(ctx context.Context, session models.Session, input CreateTrainingInput) (*models.TrainingSession, error) {
	if err := authorize(session, permissions.CreateTraining); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := parseTimestamp("start_time", input.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp("end_time", input.EndTime)
	if err != nil {
		return nil, err
	}

	plan := make(models.PlanItems, 0, len(input.PlanContent))
	for _, item := range input.PlanContent {
		if item != "" {
			plan = append(plan, item)
		}
	}

	training := &models.TrainingSession{
		StartTime:   start,
		EndTime:     end,
		PlanContent: plan,
		AuthorID:    session.UserID,
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.trainings.Create(ctx, exec, training)
	})
	if err != nil {
		return nil, storageError("create training", err)
	}

	s.notify(ctx, events.TrainingCreated, training.ID, session.UserID, training)
	return training, nil
}

func (s *trainingService) List(ctx context.Context) ([]*models.TrainingSession, error) {
	trainings, err := s.trainings.List(ctx)
	if err != nil {
		return nil, storageError("list trainings", err)
	}
	return trainings, nil
}

func (s *trainingService) Delete(ctx context.Context, session models.Session, id int) (*CascadeReport, error) {
	if err := authorize(session, permissions.DeleteTraining); err != nil {
		return nil, err
	}

	report, err := s.cascade.Delete(ctx, CascadeTarget{
		Kind: "training",
		ID:   id,
		Lock: func(ctx context.Context, exec repositories.SQLExecutor) error {
			err := s.trainings.LockForDelete(ctx, exec, id)
			if errors.Is(err, repositories.ErrTrainingNotFound) {
				return ErrTrainingNotFound
			}
			return err
		},
		Dependents: []Dependent{
			{Name: "leave_requests", Remove: func(ctx context.Context, exec repositories.SQLExecutor) (int64, error) {
				return s.leaves.DeleteByTraining(ctx, exec, id)
			}},
		},
		Delete: func(ctx context.Context, exec repositories.SQLExecutor) error {
			return s.trainings.Delete(ctx, exec, id)
		},
	})
	if err != nil {
		return report, err
	}

	s.notify(ctx, events.TrainingDeleted, id, session.UserID, report)
	return report, nil
}
