// AngelaMos | 2026
// repository.go

// Package notificationtest holds a testify mock of notification.Repository.
package notificationtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/notification"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Factory() func(core.DBTX) notification.Repository {
	return func(core.DBTX) notification.Repository { return m }
}

func (m *Repository) List(ctx context.Context) ([]notification.Notification, error) {
	args := m.Called(ctx)
	ns, _ := args.Get(0).([]notification.Notification)
	return ns, args.Error(1)
}

func (m *Repository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Create(ctx context.Context, d notification.Details) (int, error) {
	args := m.Called(ctx, d)
	return args.Int(0), args.Error(1)
}

func (m *Repository) Update(ctx context.Context, id int, d notification.Details) (int64, error) {
	args := m.Called(ctx, id, d)
	return args.Get(0).(int64), args.Error(1)
}
