package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому в handlers достаточно errors.Is(err, ErrValidation) и т.п.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("operation not allowed for the current user")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("requested resource not found")
	ErrStorage      = errors.New("storage failure")
)

var (
	// Аутентификация
	ErrInvalidCredentials = newKindError(ErrUnauthorized, "invalid username or password")
	ErrTokenInvalid       = newKindError(ErrUnauthorized, "invalid or expired token")
	ErrTokenRevoked       = newKindError(ErrUnauthorized, "token has been revoked")

	// Валидация и бизнес-правила
	ErrDuplicateUsername    = newKindError(ErrValidation, "username is already taken")
	ErrUnknownRole          = newKindError(ErrValidation, "role must be one of player, captain, coach, manager")
	ErrPasswordTooShort     = newKindError(ErrValidation, "password must be at least 6 characters")
	ErrInvalidTimestamp     = newKindError(ErrValidation, "timestamp must look like 2006-01-02 15:04")
	ErrInvalidDuration      = newKindError(ErrValidation, "duration_hours must be greater than zero and at most 9999.99")
	ErrInvalidScore         = newKindError(ErrValidation, "scores must be between 0 and 2147483647")
	ErrLeaveTargetNotFound  = newKindError(ErrValidation, "referenced training or match does not exist")
	ErrLeaveTargetAmbiguous = newKindError(ErrValidation, "a leave request can reference a training or a match, not both")
	ErrProfileIncomplete    = newKindError(ErrValidation, "please complete your profile (real name and student id) first")
	ErrUploadMissingFile    = newKindError(ErrValidation, "no file uploaded")
	ErrUploadTooLarge       = newKindError(ErrValidation, "file is too large")
	ErrUploadUnsupported    = newKindError(ErrValidation, "unsupported file type")

	// Конфликты
	ErrAlreadySignedUp = newKindError(ErrConflict, "already signed up for this match")

	// Не найдено
	ErrUserNotFound     = newKindError(ErrNotFound, "user not found")
	ErrTrainingNotFound = newKindError(ErrNotFound, "training session not found")
	ErrMatchNotFound    = newKindError(ErrNotFound, "match not found")
	ErrPhotoNotFound    = newKindError(ErrNotFound, "photo not found")

	ErrUploadUnavailable = &StorageError{Op: "upload", Err: errors.New("file storage is not configured")}
)

type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// StorageError: сбой хранилища. Наружу отдаётся как общая ошибка 500,
// подробности только в логах.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// FieldErrors: ошибки валидации по полям: имя поля (как в JSON) -> правило.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field, rule := range fe {
		fields = append(fields, field+": "+rule)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (fe FieldErrors) Unwrap() error { return ErrValidation }

// Kind возвращает машинно-читаемый вид ошибки для ответа клиенту.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "storage"
	}
}
