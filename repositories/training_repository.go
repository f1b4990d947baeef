package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/team-manager/models"
)

var ErrTrainingNotFound = errors.New("training session not found")

type TrainingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, training *models.TrainingSession) error
	GetByID(ctx context.Context, id int) (*models.TrainingSession, error)
	List(ctx context.Context) ([]*models.TrainingSession, error)
	// Exists проверяет наличие и блокирует строку от удаления до конца транзакции.
	Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	LockForDelete(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	Count(ctx context.Context) (int, error)
}

type postgresTrainingRepository struct {
	db *sql.DB
}

func NewPostgresTrainingRepository(db *sql.DB) TrainingRepository {
	return &postgresTrainingRepository{db: db}
}

func (r *postgresTrainingRepository) Create(ctx context.Context, exec SQLExecutor, training *models.TrainingSession) error {
	query := `
		INSERT INTO trainings (start_time, end_time, plan_content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	plan := []string(training.PlanContent)
	if plan == nil {
		plan = []string{}
	}

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		training.StartTime,
		training.EndTime,
		pq.Array(plan),
		training.AuthorID,
	).Scan(&training.ID, &training.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert training: %w", err)
	}
	return nil
}

func (r *postgresTrainingRepository) GetByID(ctx context.Context, id int) (*models.TrainingSession, error) {
	query := `
		SELECT id, start_time, end_time, plan_content, author_id, created_at
		FROM trainings
		WHERE id = $1`

	training, err := scanTraining(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainingNotFound
		}
		return nil, fmt.Errorf("failed to get training %d: %w", id, err)
	}
	return training, nil
}

func (r *postgresTrainingRepository) List(ctx context.Context) ([]*models.TrainingSession, error) {
	query := `
		SELECT id, start_time, end_time, plan_content, author_id, created_at
		FROM trainings
		ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	defer rows.Close()

	trainings := make([]*models.TrainingSession, 0)
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan training: %w", err)
		}
		trainings = append(trainings, training)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (r *postgresTrainingRepository) Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	var found int
	err := executor(r.db, exec).QueryRowContext(ctx, `SELECT 1 FROM trainings WHERE id = $1 FOR SHARE`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check training %d: %w", id, err)
	}
	return true, nil
}

func (r *postgresTrainingRepository) LockForDelete(ctx context.Context, exec SQLExecutor, id int) error {
	var found int
	err := executor(r.db, exec).QueryRowContext(ctx, `SELECT 1 FROM trainings WHERE id = $1 FOR UPDATE`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTrainingNotFound
		}
		return fmt.Errorf("failed to lock training %d: %w", id, err)
	}
	return nil
}

func (r *postgresTrainingRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete training %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTrainingNotFound)
}

func (r *postgresTrainingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trainings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trainings: %w", err)
	}
	return count, nil
}

func scanTraining(row rowScanner) (*models.TrainingSession, error) {
	training := &models.TrainingSession{}
	var plan pq.StringArray
	err := row.Scan(
		&training.ID,
		&training.StartTime,
		&training.EndTime,
		&plan,
		&training.AuthorID,
		&training.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	training.PlanContent = models.PlanItems(plan)
	if training.PlanContent == nil {
		training.PlanContent = models.PlanItems{}
	}
	return training, nil
}
