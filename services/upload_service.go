package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/storage"
)

const MaxUploadSize = 10 << 20 // 10 MB

var allowedUploadTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type UploadService interface {
	// Upload сохраняет файл в объектном хранилище и возвращает его публичный URL.
	Upload(ctx context.Context, session models.Session, filename string, size int64, body io.Reader) (string, error)
}

type uploadService struct {
	uploader storage.FileUploader
	now      func() time.Time
}

// NewUploadService: при uploader == nil загрузка возвращает ErrUploadUnavailable.
func NewUploadService(uploader storage.FileUploader) UploadService {
	return &uploadService{uploader: uploader, now: time.Now}
}

func (s *uploadService) Upload(ctx context.Context, session models.Session, filename string, size int64, body io.Reader) (string, error) {
	if err := requireSession(session); err != nil {
		return "", err
	}
	filename = strings.TrimSpace(filename)
	if filename == "" || body == nil {
		return "", ErrUploadMissingFile
	}
	if size > MaxUploadSize {
		return "", ErrUploadTooLarge
	}

	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedUploadTypes[ext]
	if !ok {
		return "", ErrUploadUnsupported
	}
	if s.uploader == nil {
		return "", ErrUploadUnavailable
	}

	key := fmt.Sprintf("uploads/%s/%s%s", s.now().UTC().Format("2006/01"), uuid.NewString(), ext)
	// multipart.File умеет Seek, а S3 SDK без него не посчитает хеш тела
	if _, seekable := body.(io.ReadSeeker); !seekable {
		body = io.LimitReader(body, MaxUploadSize)
	}
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", storageError("upload file", err)
	}
	return result.Location, nil
}
