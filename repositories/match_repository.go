package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListFinished(ctx context.Context, limit int) ([]*models.Match, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error)
	LockForDelete(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, match_time, opponent, location, our_score, opponent_score, is_finished, created_by, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (match_time, opponent, location, our_score, opponent_score, is_finished, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		match.MatchTime,
		match.Opponent,
		match.Location,
		match.OurScore,
		match.OpponentScore,
		match.IsFinished,
		match.CreatedBy,
	).Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	return r.queryMatches(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY match_time ASC`)
}

func (r *postgresMatchRepository) ListFinished(ctx context.Context, limit int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM (
			SELECT ` + matchColumns + ` FROM matches
			WHERE is_finished = TRUE
			ORDER BY match_time DESC
			LIMIT $1
		) recent
		ORDER BY match_time ASC`
	return r.queryMatches(ctx, query, limit)
}

func (r *postgresMatchRepository) UpdateScore(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		UPDATE matches SET
			our_score = $1,
			opponent_score = $2,
			is_finished = $3
		WHERE id = $4`

	result, err := executor(r.db, exec).ExecContext(ctx, query,
		match.OurScore,
		match.OpponentScore,
		match.IsFinished,
		match.ID,
	)
	if err != nil {
		if isOutOfRange(err) {
			return fmt.Errorf("failed to update match %d: %w", match.ID, ErrValueOutOfRange)
		}
		return fmt.Errorf("failed to update match %d: %w", match.ID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Exists(ctx context.Context, exec SQLExecutor, id int) (bool, error) {
	var found int
	err := executor(r.db, exec).QueryRowContext(ctx, `SELECT 1 FROM matches WHERE id = $1 FOR SHARE`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check match %d: %w", id, err)
	}
	return true, nil
}

func (r *postgresMatchRepository) LockForDelete(ctx context.Context, exec SQLExecutor, id int) error {
	var found int
	err := executor(r.db, exec).QueryRowContext(ctx, `SELECT 1 FROM matches WHERE id = $1 FOR UPDATE`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to lock match %d: %w", id, err)
	}
	return nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.MatchTime,
		&match.Opponent,
		&match.Location,
		&match.OurScore,
		&match.OpponentScore,
		&match.IsFinished,
		&match.CreatedBy,
		&match.CreatedAt,
	)
	return match, err
}
