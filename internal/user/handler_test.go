// AngelaMos | 2026
// handler_test.go

package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core/coretest"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/middleware"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user/usertest"
)

type fixedVerifier struct{ claims *middleware.AccessTokenClaims }

func (v fixedVerifier) VerifyAccessToken(
	context.Context,
	string,
) (*middleware.AccessTokenClaims, error) {
	return v.claims, nil
}

func getMe(t *testing.T, repo *usertest.Repository, userID int) (*httptest.ResponseRecorder, core.Envelope) {
	t.Helper()

	store := core.NewStore(core.StoreMain, coretest.NewPool(), core.StoreOptions{})
	h := user.NewHandler(user.NewService(store, repo.Factory()))

	r := chi.NewRouter()
	h.RegisterRoutes(r, middleware.Authenticator(fixedVerifier{
		claims: &middleware.AccessTokenClaims{UserID: userID, RoleID: 1},
	}))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandlerGetMe(t *testing.T) {
	repo := &usertest.Repository{}
	repo.On("GetByID", mock.Anything, 3).Return(&user.User{
		ID:            3,
		Profile:       user.Profile{Name: "Asha", Email: "asha@example.com"},
		AccountStatus: user.StatusActive,
		RoleID:        user.RoleAdmin,
	}, nil)

	rec, env := getMe(t, repo, 3)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]any)
	assert.Equal(t, float64(3), data["userID"])
	assert.Equal(t, "Asha", data["userName"])
	assert.Equal(t, true, data["isAdmin"])
}

func TestHandlerGetMeUnverified(t *testing.T) {
	repo := &usertest.Repository{}
	repo.On("GetByID", mock.Anything, 4).
		Return(&user.User{ID: 4, AccountStatus: user.StatusUnverified}, nil)

	rec, env := getMe(t, repo, 4)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Account Not Verified", env.Error.Message)
}
