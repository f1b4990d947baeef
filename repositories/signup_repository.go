package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

var ErrSignupMatchInvalid = errors.New("signup references a missing match or user")

type SignupRepository interface {
	// Create returns false when the user is already on the roster of the match.
	Create(ctx context.Context, exec SQLExecutor, signup *models.MatchSignup) (bool, error)
	ListAllParticipants(ctx context.Context) (map[int][]models.MatchParticipant, error)
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int64, error)
}

type postgresSignupRepository struct {
	db *sql.DB
}

func NewPostgresSignupRepository(db *sql.DB) SignupRepository {
	return &postgresSignupRepository{db: db}
}

func (r *postgresSignupRepository) Create(ctx context.Context, exec SQLExecutor, signup *models.MatchSignup) (bool, error) {
	query := `
		INSERT INTO match_signups (match_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (match_id, user_id) DO NOTHING
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, signup.MatchID, signup.UserID).
		Scan(&signup.ID, &signup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return false, ErrSignupMatchInvalid
		}
		return false, fmt.Errorf("failed to insert match signup: %w", err)
	}
	return true, nil
}

func (r *postgresSignupRepository) ListAllParticipants(ctx context.Context) (map[int][]models.MatchParticipant, error) {
	query := `
		SELECT s.match_id, u.id, u.username, u.real_name, u.student_id
		FROM match_signups s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.match_id, s.created_at ASC, s.id ASC`
	return r.queryParticipants(ctx, query)
}

func (r *postgresSignupRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int64, error) {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM match_signups WHERE match_id = $1`, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete signups of match %d: %w", matchID, err)
	}
	return affectedRows(result)
}

func (r *postgresSignupRepository) queryParticipants(ctx context.Context, query string, args ...interface{}) (map[int][]models.MatchParticipant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list match participants: %w", err)
	}
	defer rows.Close()

	byMatch := make(map[int][]models.MatchParticipant)
	for rows.Next() {
		var matchID int
		var p models.MatchParticipant
		if err := rows.Scan(&matchID, &p.UserID, &p.Username, &p.RealName, &p.StudentID); err != nil {
			return nil, fmt.Errorf("failed to scan match participant: %w", err)
		}
		byMatch[matchID] = append(byMatch[matchID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return byMatch, nil
}
