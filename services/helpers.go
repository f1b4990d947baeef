package services

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Dosada05/team-manager/events"
	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В ошибках используем имена полей из JSON, а не из Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
	}
	return fields
}

var timestampLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// parseTimestamp принимает форматы, которые отправляет фронтенд
// (datetime-local и "YYYY-MM-DD HH:MM"), а также RFC 3339.
// Колонки времени в схеме без зоны, поэтому результат всегда в UTC:
// время без смещения считается UTC, время со смещением переводится в UTC.
func parseTimestamp(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &timestampError{field: field}
}

type timestampError struct {
	field string
}

func (e *timestampError) Error() string {
	return e.field + ": " + ErrInvalidTimestamp.Error()
}

func (e *timestampError) Unwrap() error { return ErrInvalidTimestamp }

func requireSession(session models.Session) error {
	if session.IsZero() {
		return ErrUnauthorized
	}
	return nil
}

// authorize: единая точка проверки прав перед любым обращением к хранилищу.
func authorize(session models.Session, action permissions.Action) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !permissions.CanPerform(session.Role, action) {
		return ErrForbidden
	}
	return nil
}

// Notifier публикует события после коммита. Ошибки доставки не влияют на результат операции.
type Notifier struct {
	publisher events.Publisher
	logger    *slog.Logger
}

func NewNotifier(publisher events.Publisher, logger *slog.Logger) Notifier {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Notifier{publisher: publisher, logger: logger}
}

func (n Notifier) notify(ctx context.Context, eventType events.Type, entityID, actorID int, payload interface{}) {
	event := events.New(eventType, entityID, actorID, payload)
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("failed to publish event",
			slog.String("type", string(eventType)),
			slog.Int("entity_id", entityID),
			slog.Any("error", err))
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
