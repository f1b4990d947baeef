package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

var ErrLeaveTargetInvalid = errors.New("leave request references a missing training or match")

type LeaveRepository interface {
	Create(ctx context.Context, exec SQLExecutor, leave *models.LeaveRequest) error
	// List returns all leave requests when requesterID is nil, otherwise only
	// the requests of that user. Newest first.
	List(ctx context.Context, requesterID *int) ([]*models.LeaveView, error)
	DeleteByTraining(ctx context.Context, exec SQLExecutor, trainingID int) (int64, error)
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int64, error)
	CountTrainingLeaves(ctx context.Context) (int, error)
}

type postgresLeaveRepository struct {
	db *sql.DB
}

func NewPostgresLeaveRepository(db *sql.DB) LeaveRepository {
	return &postgresLeaveRepository{db: db}
}

func (r *postgresLeaveRepository) Create(ctx context.Context, exec SQLExecutor, leave *models.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (requester_id, training_id, match_id, duration_hours, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		leave.RequesterID,
		leave.TrainingID,
		leave.MatchID,
		leave.DurationHours,
		leave.Reason,
		leave.Status,
	).Scan(&leave.ID, &leave.CreatedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return ErrLeaveTargetInvalid
		}
		if isOutOfRange(err) {
			return fmt.Errorf("failed to insert leave request: %w", ErrValueOutOfRange)
		}
		return fmt.Errorf("failed to insert leave request: %w", err)
	}
	return nil
}

func (r *postgresLeaveRepository) List(ctx context.Context, requesterID *int) ([]*models.LeaveView, error) {
	query := `
		SELECT
			l.id, l.requester_id, l.training_id, l.match_id, l.duration_hours, l.reason, l.status, l.created_at,
			u.username, u.real_name,
			t.start_time, m.opponent
		FROM leave_requests l
		JOIN users u ON u.id = l.requester_id
		LEFT JOIN trainings t ON t.id = l.training_id
		LEFT JOIN matches m ON m.id = l.match_id
		WHERE ($1::int IS NULL OR l.requester_id = $1)
		ORDER BY l.created_at DESC, l.id DESC`

	rows, err := r.db.QueryContext(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	leaves := make([]*models.LeaveView, 0)
	for rows.Next() {
		view := &models.LeaveView{}
		var trainingStart sql.NullTime
		var matchOpponent sql.NullString
		err := rows.Scan(
			&view.ID,
			&view.RequesterID,
			&view.TrainingID,
			&view.MatchID,
			&view.DurationHours,
			&view.Reason,
			&view.Status,
			&view.CreatedAt,
			&view.Username,
			&view.RealName,
			&trainingStart,
			&matchOpponent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		if trainingStart.Valid {
			view.TrainingStart = &trainingStart.Time
		}
		if matchOpponent.Valid {
			view.MatchOpponent = &matchOpponent.String
		}
		view.Type = view.LeaveRequest.Type()
		leaves = append(leaves, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leaves, nil
}

func (r *postgresLeaveRepository) DeleteByTraining(ctx context.Context, exec SQLExecutor, trainingID int) (int64, error) {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM leave_requests WHERE training_id = $1`, trainingID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave requests of training %d: %w", trainingID, err)
	}
	return affectedRows(result)
}

func (r *postgresLeaveRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int64, error) {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM leave_requests WHERE match_id = $1`, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave requests of match %d: %w", matchID, err)
	}
	return affectedRows(result)
}

func (r *postgresLeaveRepository) CountTrainingLeaves(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_requests WHERE training_id IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count training leaves: %w", err)
	}
	return count, nil
}
