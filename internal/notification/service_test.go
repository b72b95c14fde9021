// AngelaMos | 2026
// service_test.go

package notification_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core/coretest"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/notification"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/notification/notificationtest"
)

var start = time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

func details() notification.Details {
	return notification.Details{
		Title:       "Opening ceremony",
		Description: "Main auditorium, all participants",
		Author:      "Organising team",
		Venue:       "Auditorium",
		StartDate:   start,
		EndDate:     start.Add(2 * time.Hour),
	}
}

func newService() (*notification.Service, *coretest.Pool, *notificationtest.Repository) {
	pool := coretest.NewPool()
	repo := &notificationtest.Repository{}
	store := core.NewStore(core.StoreMain, pool, core.StoreOptions{})
	return notification.NewService(store, repo.Factory()), pool, repo
}

func TestList(t *testing.T) {
	svc, pool, repo := newService()
	repo.On("List", mock.Anything).
		Return([]notification.Notification{{ID: 1, Details: details()}}, nil)

	ns, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, ns, 1)
	assert.Equal(t, []string{`LOCK TABLE "notifications" IN SHARE MODE`}, pool.LockStatements())
	assert.Equal(t, []bool{true}, pool.ReadOnly())
	assert.Equal(t, 1, pool.Released())
}

func TestAdd(t *testing.T) {
	svc, pool, repo := newService()
	repo.On("Create", mock.Anything, details()).Return(12, nil)

	n, err := svc.Add(context.Background(), details())

	require.NoError(t, err)
	assert.Equal(t, 12, n.ID)
	assert.Equal(t, []string{`LOCK TABLE "notifications" IN EXCLUSIVE MODE`}, pool.LockStatements())
	assert.Equal(t, 1, pool.Commits())
	assert.Equal(t, 1, pool.Released())
}

func TestAddRejectsInvertedDates(t *testing.T) {
	svc, pool, _ := newService()
	d := details()
	d.EndDate = d.StartDate.Add(-time.Minute)

	_, err := svc.Add(context.Background(), d)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, 0, pool.Acquired())
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		rows       int64
		wantStatus int
		wantWrite  bool
	}{
		{name: "updated", exists: true, rows: 1, wantWrite: true},
		{name: "missing", exists: false, wantStatus: http.StatusNotFound},
		{name: "unchanged", exists: true, rows: 0, wantStatus: http.StatusBadRequest, wantWrite: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pool, repo := newService()
			repo.On("Exists", mock.Anything, 4).Return(tt.exists, nil)
			repo.On("Update", mock.Anything, 4, details()).Return(tt.rows, nil)

			n, err := svc.Update(context.Background(), 4, details())

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.Equal(t, 4, n.ID)
				assert.Equal(t, 1, pool.Commits())
			} else {
				appErr, ok := core.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStatus, appErr.StatusCode)
				assert.Equal(t, 1, pool.Rollbacks())
			}
			if !tt.wantWrite {
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
			assert.Equal(t, 1, pool.Released())
		})
	}
}
