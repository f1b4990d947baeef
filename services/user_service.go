package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/repositories"
	"github.com/Dosada05/team-manager/utils"
)

type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	GetProfile(ctx context.Context, session models.Session) (*models.User, error)
	// UpdateProfile меняет только профиль вызывающего; nil-поля не трогаются.
	UpdateProfile(ctx context.Context, session models.Session, input UpdateProfileInput) (*models.User, error)
}

type UpdateProfileInput struct {
	RealName  *string `json:"real_name" validate:"omitempty,max=100"`
	StudentID *string `json:"student_id" validate:"omitempty,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=500"`
	Password  *string `json:"password"`
}

type userService struct {
	tx       repositories.Transactor
	userRepo repositories.UserRepository
}

func NewUserService(tx repositories.Transactor, userRepo repositories.UserRepository) UserService {
	return &userService{tx: tx, userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	return users, nil
}

func (s *userService) GetProfile(ctx context.Context, session models.Session) (*models.User, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("get user", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, session models.Session, input UpdateProfileInput) (*models.User, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var newHash string
	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < utils.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
		}
		newHash = hash
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("get user", err)
	}

	if input.RealName != nil {
		user.RealName = *trimPtr(input.RealName)
	}
	if input.StudentID != nil {
		user.StudentID = *trimPtr(input.StudentID)
	}
	if input.Bio != nil {
		user.Bio = emptyToNil(input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = emptyToNil(input.AvatarURL)
	}
	if newHash != "" {
		user.PasswordHash = newHash
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.userRepo.UpdateProfile(ctx, exec, user)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageError("update profile", err)
	}

	user.PasswordHash = ""
	return user, nil
}
