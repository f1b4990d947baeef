package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/repositories"
	"github.com/Dosada05/team-manager/storage"
)

type PhotoService interface {
	Add(ctx context.Context, session models.Session, input CreatePhotoInput) (*models.Photo, error)
	List(ctx context.Context) ([]*models.Photo, error)
	Delete(ctx context.Context, session models.Session, id int) error
}

type CreatePhotoInput struct {
	URL         string  `json:"url" validate:"required,max=500"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type photoService struct {
	tx       repositories.Transactor
	photos   repositories.PhotoRepository
	uploader storage.FileUploader
	Notifier
}

// NewPhotoService: uploader может быть nil, тогда объекты в хранилище не удаляются.
func NewPhotoService(tx repositories.Transactor, photos repositories.PhotoRepository, uploader storage.FileUploader, n Notifier) PhotoService {
	return &photoService{tx: tx, photos: photos, uploader: uploader, Notifier: n}
}

func (s *photoService) Add(ctx context.Context, session models.Session, input CreatePhotoInput) (*models.Photo, error) {
	if err := authorize(session, permissions.CreatePhoto); err != nil {
		return nil, err
	}
	input.URL = strings.TrimSpace(input.URL)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	photo := &models.Photo{
		URL:         input.URL,
		Description: emptyToNil(input.Description),
		UploadedBy:  session.UserID,
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.photos.Create(ctx, exec, photo)
	})
	if err != nil {
		return nil, storageError("create photo", err)
	}

	s.notify(ctx, events.PhotoAdded, photo.ID, session.UserID, photo)
	return photo, nil
}

func (s *photoService) List(ctx context.Context) ([]*models.Photo, error) {
	photos, err := s.photos.List(ctx)
	if err != nil {
		return nil, storageError("list photos", err)
	}
	return photos, nil
}

func (s *photoService) Delete(ctx context.Context, session models.Session, id int) error {
	if err := authorize(session, permissions.DeletePhoto); err != nil {
		return err
	}

	var photo *models.Photo
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		photo, err = s.photos.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		return s.photos.Delete(ctx, exec, id)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPhotoNotFound) {
			return ErrPhotoNotFound
		}
		return storageError("delete photo", err)
	}

	// Объект удаляем только после коммита; неудача не отменяет удаление записи.
	s.removeObject(ctx, photo.URL)

	s.notify(ctx, events.PhotoDeleted, id, session.UserID, nil)
	return nil
}

func (s *photoService) removeObject(ctx context.Context, url string) {
	if s.uploader == nil {
		return
	}
	key, ok := s.uploader.KeyFromURL(url)
	if !ok {
		return
	}
	if err := s.uploader.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete photo object", slog.String("key", key), slog.Any("error", err))
	}
}
