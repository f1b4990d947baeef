package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Dosada05/team-manager/repositories"
)

type CascadeState string

const (
	CascadeActive   CascadeState = "active"
	CascadeDeleting CascadeState = "deleting"
	CascadeGone     CascadeState = "gone"
)

// Dependent: набор записей, ссылающихся на удаляемого родителя.
type Dependent struct {
	Name   string
	Remove func(ctx context.Context, exec repositories.SQLExecutor) (int64, error)
}

// CascadeTarget описывает удаление одного родителя (тренировки или матча).
// Lock должен вернуть ошибку вида ErrNotFound, если родителя нет.
type CascadeTarget struct {
	Kind       string
	ID         int
	Lock       func(ctx context.Context, exec repositories.SQLExecutor) error
	Dependents []Dependent
	Delete     func(ctx context.Context, exec repositories.SQLExecutor) error
}

type CascadeReport struct {
	Kind    string           `json:"kind"`
	ID      int              `json:"id"`
	State   CascadeState     `json:"state"`
	Removed map[string]int64 `json:"removed"`
}

type CascadeEngine struct {
	tx     repositories.Transactor
	logger *slog.Logger
}

func NewCascadeEngine(tx repositories.Transactor, logger *slog.Logger) *CascadeEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &CascadeEngine{tx: tx, logger: logger}
}

// Delete удаляет зависимые записи в объявленном порядке, затем родителя, в одной транзакции.
// При любой ошибке транзакция откатывается и отчёт остаётся в состоянии active.
func (e *CascadeEngine) Delete(ctx context.Context, target CascadeTarget) (*CascadeReport, error) {
	report := &CascadeReport{
		Kind:    target.Kind,
		ID:      target.ID,
		State:   CascadeActive,
		Removed: make(map[string]int64, len(target.Dependents)),
	}

	err := e.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := target.Lock(ctx, exec); err != nil {
			return err
		}
		report.State = CascadeDeleting

		for _, dep := range target.Dependents {
			n, err := dep.Remove(ctx, exec)
			if err != nil {
				return err
			}
			report.Removed[dep.Name] = n
		}

		return target.Delete(ctx, exec)
	})
	if err != nil {
		report.State = CascadeActive
		report.Removed = make(map[string]int64)
		if errors.Is(err, ErrNotFound) {
			return report, err
		}
		e.logger.Error("cascade delete rolled back",
			slog.String("kind", target.Kind),
			slog.Int("id", target.ID),
			slog.Any("error", err))
		return report, storageError("delete "+target.Kind, err)
	}

	report.State = CascadeGone
	e.logger.Info("cascade delete completed",
		slog.String("kind", target.Kind),
		slog.Int("id", target.ID),
		slog.Any("removed", report.Removed))
	return report, nil
}
