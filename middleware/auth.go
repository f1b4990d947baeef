package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/team-manager/models"
	"github.com/Dosada05/team-manager/permissions"
	"github.com/Dosada05/team-manager/services"
)

// Authenticator проверяет bearer-токен; реализуется services.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Session, error)
}

// Authenticate кладёт в контекст models.Session. Без валидного токена запрос
// дальше не идёт (401). Для websocket токен можно передать в ?token=,
// потому что браузер не умеет ставить заголовки при апгрейде.
func Authenticate(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" && websocket.IsWebSocketUpgrade(r) {
				token = queryToken(r)
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token", "unauthorized")
				return
			}

			session, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					writeError(w, http.StatusUnauthorized, err.Error(), "unauthorized")
					return
				}
				logger.Error("failed to authenticate request", slog.String("path", r.URL.Path), slog.Any("error", err))
				writeError(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request", "storage")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// Authorize отсекает запрос до хендлера, если роли не разрешено действие.
// Сервисы проверяют то же самое, это лишь ранний ответ 403.
func Authorize(action permissions.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "authentication required", "unauthorized")
				return
			}
			if !permissions.CanPerform(session.Role, action) {
				writeError(w, http.StatusForbidden, services.ErrForbidden.Error(), "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
