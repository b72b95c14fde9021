// AngelaMos | 2026
// service_test.go

package user_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core/coretest"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user/usertest"
)

func TestCheckValid(t *testing.T) {
	tests := []struct {
		name       string
		user       *user.User
		lookupErr  error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing",
			lookupErr:  fmt.Errorf("get user: %w", core.ErrNotFound),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "User Not Found",
		},
		{
			name:       "blocked",
			user:       &user.User{ID: 1, AccountStatus: user.StatusBlocked},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Account Blocked by Admin",
		},
		{
			name:       "unverified",
			user:       &user.User{ID: 1, AccountStatus: user.StatusUnverified},
			wantStatus: http.StatusForbidden,
			wantMsg:    "Account Not Verified",
		},
		{
			name: "active",
			user: &user.User{ID: 1, AccountStatus: user.StatusActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := user.CheckValid(tt.user, tt.lookupErr)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}

			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestCheckValidPassesInfrastructureErrors(t *testing.T) {
	boom := errors.New("conn reset")
	assert.ErrorIs(t, user.CheckValid(nil, boom), boom)
}

func TestGetMe(t *testing.T) {
	pool := coretest.NewPool()
	repo := &usertest.Repository{}
	svc := user.NewService(core.NewStore(core.StoreMain, pool, core.StoreOptions{}), repo.Factory())

	want := &user.User{ID: 7, AccountStatus: user.StatusActive}
	repo.On("GetByID", mock.Anything, 7).Return(want, nil)

	got, err := svc.GetMe(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{`LOCK TABLE "users" IN SHARE MODE`}, pool.LockStatements())
	assert.Equal(t, 1, pool.Released())
	repo.AssertExpectations(t)
}

func TestGetMeBlocked(t *testing.T) {
	pool := coretest.NewPool()
	repo := &usertest.Repository{}
	svc := user.NewService(core.NewStore(core.StoreMain, pool, core.StoreOptions{}), repo.Factory())

	repo.On("GetByID", mock.Anything, 7).
		Return(&user.User{ID: 7, AccountStatus: user.StatusBlocked}, nil)

	_, err := svc.GetMe(context.Background(), 7)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode)
	assert.Equal(t, 1, pool.Released())
	assert.Equal(t, 1, pool.Rollbacks())
}

func TestGetMeWithoutUser(t *testing.T) {
	pool := coretest.NewPool()
	svc := user.NewService(core.NewStore(core.StoreMain, pool, core.StoreOptions{}), user.NewRepository)

	_, err := svc.GetMe(context.Background(), 0)

	require.ErrorIs(t, err, core.ErrUnauthorized)
	assert.Equal(t, 0, pool.Acquired())
}

func TestGetMeFaultIsGeneric(t *testing.T) {
	pool := coretest.NewPool()
	repo := &usertest.Repository{}
	svc := user.NewService(core.NewStore(core.StoreMain, pool, core.StoreOptions{}), repo.Factory())

	repo.On("GetByID", mock.Anything, 7).Return(nil, errors.New("connection refused"))

	_, err := svc.GetMe(context.Background(), 7)

	require.ErrorIs(t, err, core.ErrInfrastructure)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, 1, pool.Released())
}
