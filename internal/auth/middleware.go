package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/devfolio/devfolio/internal/common"
	"github.com/devfolio/devfolio/internal/store"
)

type contextKey struct{}

// UserSource loads accounts for the middleware. *store.Store satisfies it.
type UserSource interface {
	UserByID(ctx context.Context, id string) (*store.User, error)
}

// UserFrom returns the authenticated user stashed by Middleware, or nil.
func UserFrom(ctx context.Context) *store.User {
	user, _ := ctx.Value(contextKey{}).(*store.User)
	return user
}

// Middleware verifies the Authorization bearer token, loads the account it
// names, and attaches it to the request context. Missing or expired tokens
// get 401, malformed or mis-signed tokens 403, tokens for deleted accounts
// 404.
func Middleware(secret []byte, users UserSource) func(http.Handler) http.Handler {
	logger := common.Logger()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				denyJSON(w, http.StatusUnauthorized, "authentication token required")
				return
			}
			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if tokenString == "" || tokenString == header {
				denyJSON(w, http.StatusUnauthorized, "authentication token required")
				return
			}
			userID, err := ParseToken(secret, tokenString)
			if errors.Is(err, ErrTokenExpired) {
				denyJSON(w, http.StatusUnauthorized, "token expired")
				return
			}
			if err != nil {
				denyJSON(w, http.StatusForbidden, "token invalid")
				return
			}
			user, err := users.UserByID(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				denyJSON(w, http.StatusNotFound, "account not found")
				return
			}
			if err != nil {
				logger.Error("auth: load user failed", "error", err)
				denyJSON(w, http.StatusInternalServerError, "internal error")
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
