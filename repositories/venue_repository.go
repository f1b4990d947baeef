package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

type VenueRepository interface {
	Create(ctx context.Context, exec SQLExecutor, venue *models.VenueReservation) error
	List(ctx context.Context) ([]*models.VenueReservation, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, exec SQLExecutor, venue *models.VenueReservation) error {
	query := `
		INSERT INTO venue_reservations (start_time, end_time, proof_photo_url, reserved_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		venue.StartTime,
		venue.EndTime,
		venue.ProofPhotoURL,
		venue.ReservedBy,
	).Scan(&venue.ID, &venue.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert venue reservation: %w", err)
	}
	return nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]*models.VenueReservation, error) {
	query := `
		SELECT id, start_time, end_time, proof_photo_url, reserved_by, created_at
		FROM venue_reservations
		ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue reservations: %w", err)
	}
	defer rows.Close()

	venues := make([]*models.VenueReservation, 0)
	for rows.Next() {
		v := &models.VenueReservation{}
		if err := rows.Scan(&v.ID, &v.StartTime, &v.EndTime, &v.ProofPhotoURL, &v.ReservedBy, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan venue reservation: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}
