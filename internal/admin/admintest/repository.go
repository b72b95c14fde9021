// AngelaMos | 2026
// repository.go

// Package admintest holds testify mocks of the admin repositories.
package admintest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/admin"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Factory() func(core.DBTX) admin.Repository {
	return func(core.DBTX) admin.Repository { return m }
}

func (m *Repository) RoleIDExists(ctx context.Context, roleID int) (bool, error) {
	args := m.Called(ctx, roleID)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) RoleNameExists(ctx context.Context, roleName string) (bool, error) {
	args := m.Called(ctx, roleName)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) CreateRole(ctx context.Context, roleID int, roleName string) (*admin.Role, error) {
	args := m.Called(ctx, roleID, roleName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*admin.Role), args.Error(1)
}

func (m *Repository) ListRoles(ctx context.Context) ([]admin.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]admin.Role)
	return roles, args.Error(1)
}

func (m *Repository) GetEvent(ctx context.Context, eventID int) (*admin.Event, error) {
	args := m.Called(ctx, eventID)
	event, _ := args.Get(0).(*admin.Event)
	return event, args.Error(1)
}

func (m *Repository) EventRevenue(ctx context.Context) ([]admin.EventRevenue, error) {
	args := m.Called(ctx)
	revenue, _ := args.Get(0).([]admin.EventRevenue)
	return revenue, args.Error(1)
}

func (m *Repository) TeamRoster(ctx context.Context, eventID int) ([]admin.Team, error) {
	args := m.Called(ctx, eventID)
	teams, _ := args.Get(0).([]admin.Team)
	return teams, args.Error(1)
}

func (m *Repository) IndividualRoster(ctx context.Context, eventID int) ([]admin.Student, error) {
	args := m.Called(ctx, eventID)
	students, _ := args.Get(0).([]admin.Student)
	return students, args.Error(1)
}

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Factory() func(core.DBTX) admin.TransactionRepository {
	return func(core.DBTX) admin.TransactionRepository { return m }
}

func (m *TransactionRepository) List(ctx context.Context) ([]admin.Transaction, error) {
	args := m.Called(ctx)
	txns, _ := args.Get(0).([]admin.Transaction)
	return txns, args.Error(1)
}

func (m *TransactionRepository) GetByID(ctx context.Context, txnID string) (*admin.Transaction, error) {
	args := m.Called(ctx, txnID)
	txn, _ := args.Get(0).(*admin.Transaction)
	return txn, args.Error(1)
}
