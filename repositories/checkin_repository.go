package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

type CheckinRepository interface {
	Create(ctx context.Context, exec SQLExecutor, checkin *models.PersonalCheckin) error
	// List returns every check-in when userID is nil, otherwise only that
	// user's check-ins. Newest first.
	List(ctx context.Context, userID *int) ([]*models.CheckinView, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type postgresCheckinRepository struct {
	db *sql.DB
}

func NewPostgresCheckinRepository(db *sql.DB) CheckinRepository {
	return &postgresCheckinRepository{db: db}
}

func (r *postgresCheckinRepository) Create(ctx context.Context, exec SQLExecutor, checkin *models.PersonalCheckin) error {
	query := `
		INSERT INTO personal_checkins (user_id, item_name, photo_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, checkin.UserID, checkin.ItemName, checkin.PhotoURL).
		Scan(&checkin.ID, &checkin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert check-in: %w", err)
	}
	return nil
}

func (r *postgresCheckinRepository) List(ctx context.Context, userID *int) ([]*models.CheckinView, error) {
	query := `
		SELECT c.id, c.user_id, c.item_name, c.photo_url, c.created_at, u.username, u.real_name
		FROM personal_checkins c
		JOIN users u ON u.id = c.user_id
		WHERE ($1::int IS NULL OR c.user_id = $1)
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	checkins := make([]*models.CheckinView, 0)
	for rows.Next() {
		v := &models.CheckinView{}
		err := rows.Scan(&v.ID, &v.UserID, &v.ItemName, &v.PhotoURL, &v.CreatedAt, &v.Username, &v.RealName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkins = append(checkins, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return checkins, nil
}

func (r *postgresCheckinRepository) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT u.id, COALESCE(NULLIF(u.real_name, ''), u.username), COUNT(c.id) AS cnt
		FROM personal_checkins c
		JOIN users u ON u.id = c.user_id
		GROUP BY u.id
		ORDER BY cnt DESC, u.id ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build check-in leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Checkins); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
