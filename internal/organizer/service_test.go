// AngelaMos | 2026
// service_test.go

package organizer_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core/coretest"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/organizer"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/organizer/organizertest"
)

var details = organizer.Details{Name: "Priya Menon", PhoneNumber: "9876543210"}

func newService() (*organizer.Service, *coretest.Pool, *organizertest.Repository) {
	pool := coretest.NewPool()
	repo := &organizertest.Repository{}
	store := core.NewStore(core.StoreMain, pool, core.StoreOptions{})
	return organizer.NewService(store, repo.Factory()), pool, repo
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		rows       int64
		wantStatus int
		wantMsg    string
		wantWrite  bool
	}{
		{name: "updated", exists: true, rows: 1, wantWrite: true},
		{
			name:       "missing",
			wantStatus: http.StatusNotFound,
			wantMsg:    "No organizer with ID 4 exists.",
		},
		{
			name:       "unchanged",
			exists:     true,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Unable to update the organizer. No details were changed.",
			wantWrite:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pool, repo := newService()
			repo.On("Exists", mock.Anything, 4).Return(tt.exists, nil)
			repo.On("Update", mock.Anything, 4, details).Return(tt.rows, nil)

			o, err := svc.Update(context.Background(), 4, details)

			assert.Equal(t, []string{`LOCK TABLE "organizers" IN EXCLUSIVE MODE`}, pool.LockStatements())
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, 4, o.ID)
				assert.Equal(t, "Priya Menon", o.Name)
				assert.Equal(t, 1, pool.Commits())
			} else {
				appErr, ok := core.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStatus, appErr.StatusCode)
				assert.Equal(t, tt.wantMsg, appErr.Message)
				assert.Equal(t, 1, pool.Rollbacks())
			}
			if !tt.wantWrite {
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
			assert.Equal(t, 1, pool.Released())
		})
	}
}

func TestUpdateStoreFailureIsHidden(t *testing.T) {
	svc, pool, repo := newService()
	repo.On("Exists", mock.Anything, 4).Return(false, errors.New("connection reset"))

	_, err := svc.Update(context.Background(), 4, details)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.NotContains(t, appErr.Message, "connection reset")
	assert.Equal(t, 1, pool.Rollbacks())
}
