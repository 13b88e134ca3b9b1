package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// HeaderUserID names the acting user. There is no authentication.
const HeaderUserID = "X-User-Id"

type userIDKey struct{}

// UserContext stores the acting user id in the request context. A missing or
// unparsable header falls back to defaultID.
func UserContext(defaultID int) func(http.Handler) http.Handler {
	if defaultID <= 0 {
		defaultID = 1
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ParseUserID(r.Header.Get(HeaderUserID), defaultID)
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// ParseUserID parses a header value, returning def when it is not a positive integer.
func ParseUserID(v string, def int) int {
	id, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || id <= 0 {
		return def
	}
	return id
}

// WithUserID returns ctx carrying id.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID returns the acting user from ctx, or 1 when none was set.
func UserID(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey{}).(int); ok {
		return id
	}
	return 1
}
