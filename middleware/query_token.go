package middleware

import (
	"context"
	"net/http"
)

const queryTokenContextKey contextKey = "query_token"

// StripQueryToken вырезает ?token= из URL до логгера запросов, чтобы JWT
// не попадал в access-лог. Authenticate достаёт значение из контекста.
func StripQueryToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if !query.Has("token") {
			next.ServeHTTP(w, r)
			return
		}
		token := query.Get("token")
		query.Del("token")

		r = r.WithContext(context.WithValue(r.Context(), queryTokenContextKey, token))
		u := *r.URL
		u.RawQuery = query.Encode()
		r.URL = &u
		r.RequestURI = u.RequestURI()
		next.ServeHTTP(w, r)
	})
}

func queryToken(r *http.Request) string {
	if token, ok := r.Context().Value(queryTokenContextKey).(string); ok {
		return token
	}
	return r.URL.Query().Get("token")
}
