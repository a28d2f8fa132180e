package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"GroceryWise/internal/model"
	"GroceryWise/internal/service"
)

type ctxKey struct{}

var userCtxKey = ctxKey{}

// TokenVerifier проверяет access token и возвращает его subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup ищет пользователя по email (subject токена).
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator превращает bearer-токен в текущего пользователя.
type Authenticator struct {
	tokens TokenVerifier
	users  UserLookup
}

func NewAuthenticator(tokens TokenVerifier, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve проверяет токен и загружает пользователя.
// Любая проблема с токеном или отсутствие пользователя дают service.ErrUnauthorized.
func (a *Authenticator) Resolve(ctx context.Context, raw string) (*model.User, error) {
	subject, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, service.ErrUnauthorized
	}
	user, err := a.users.GetByEmail(ctx, subject)
	if errors.Is(err, service.ErrNotFound) {
		return nil, service.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if !user.IsActive {
		return nil, service.ErrInactiveAccount
	}
	return user, nil
}

// Require пропускает запрос дальше только с валидным Authorization: Bearer.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}
		user, err := a.Resolve(r.Context(), raw)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		case errors.Is(err, service.ErrUnauthorized):
			unauthorized(w)
		case errors.Is(err, service.ErrInactiveAccount):
			writeDetail(w, http.StatusBadRequest, "Inactive user")
		default:
			sugar.Errorw("auth resolve failed", "error", err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
	})
}

// WithUser кладёт пользователя в контекст запроса.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// UserFromContext достаёт текущего пользователя, установленного Require.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*model.User)
	return u, ok && u != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
