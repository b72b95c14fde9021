// AngelaMos | 2026
// repository.go

// Package usertest holds a testify mock of user.Repository.
package usertest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

type Repository struct {
	mock.Mock
}

// Factory returns a constructor that hands out this mock for every
// session.
func (m *Repository) Factory() func(core.DBTX) user.Repository {
	return func(core.DBTX) user.Repository { return m }
}

func (m *Repository) GetByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *Repository) MissingIDs(ctx context.Context, ids []int) ([]int, error) {
	args := m.Called(ctx, ids)
	missing, _ := args.Get(0).([]int)
	return missing, args.Error(1)
}

func (m *Repository) SetAccountStatus(
	ctx context.Context,
	id int,
	status user.AccountStatus,
) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Repository) SetRole(ctx context.Context, id, roleID int) (int64, error) {
	args := m.Called(ctx, id, roleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Repository) ListWithEvents(ctx context.Context) ([]user.UserWithEvents, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.UserWithEvents)
	return users, args.Error(1)
}
