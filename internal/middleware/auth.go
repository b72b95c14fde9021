// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type claimsKey struct{}

// AdminRoleID is the role every /admin route requires.
const AdminRoleID = 1

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	UserID    int
	RoleID    int
	TokenID   string
	ExpiresAt time.Time
}

// Authenticator rejects requests without a valid bearer token and stores
// the verified claims on the request context. The request logger gains
// user_id and role_id fields.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.UnauthorizedError("missing authorization token"))
				return
			}

			claims, err := verifier.VerifyAccessToken(r.Context(), token)
			if err != nil {
				core.JSONError(w, authError(err))
				return
			}

			logger := zerolog.Ctx(r.Context()).With().
				Int("user_id", claims.UserID).
				Int("role_id", claims.RoleID).
				Logger()

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx)))
		})
	}
}

// RequireAdmin must run after Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		switch {
		case claims == nil:
			core.JSONError(w, core.UnauthorizedError("authentication required"))
		case claims.RoleID != AdminRoleID:
			core.JSONError(w, core.ForbiddenError("insufficient permissions"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func ExtractToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func authError(err error) error {
	if core.IsAppError(err) {
		return err
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		return core.TokenExpiredError()
	case errors.Is(err, core.ErrTokenRevoked):
		return core.TokenRevokedError()
	default:
		return core.TokenInvalidError()
	}
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	claims, _ := ctx.Value(claimsKey{}).(*AccessTokenClaims)
	return claims
}

func GetUserID(ctx context.Context) int {
	if claims := GetClaims(ctx); claims != nil {
		return claims.UserID
	}
	return 0
}

func GetRoleID(ctx context.Context) int {
	if claims := GetClaims(ctx); claims != nil {
		return claims.RoleID
	}
	return 0
}
