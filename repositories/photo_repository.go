package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/team-manager/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

type PhotoRepository interface {
	Create(ctx context.Context, exec SQLExecutor, photo *models.Photo) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Photo, error)
	List(ctx context.Context) ([]*models.Photo, error)
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresPhotoRepository struct {
	db *sql.DB
}

func NewPostgresPhotoRepository(db *sql.DB) PhotoRepository {
	return &postgresPhotoRepository{db: db}
}

func (r *postgresPhotoRepository) Create(ctx context.Context, exec SQLExecutor, photo *models.Photo) error {
	query := `
		INSERT INTO team_photos (url, description, uploaded_by)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, photo.URL, photo.Description, photo.UploadedBy).
		Scan(&photo.ID, &photo.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (r *postgresPhotoRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Photo, error) {
	query := `SELECT id, url, description, uploaded_by, uploaded_at FROM team_photos WHERE id = $1`

	p := &models.Photo{}
	err := executor(r.db, exec).QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.URL, &p.Description, &p.UploadedBy, &p.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresPhotoRepository) List(ctx context.Context) ([]*models.Photo, error) {
	query := `
		SELECT id, url, description, uploaded_by, uploaded_at
		FROM team_photos
		ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]*models.Photo, 0)
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.URL, &p.Description, &p.UploadedBy, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *postgresPhotoRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM team_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPhotoNotFound)
}
