// AngelaMos | 2026
// repository.go

// Package organizertest holds a testify mock of organizer.Repository.
package organizertest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/organizer"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Factory() func(core.DBTX) organizer.Repository {
	return func(core.DBTX) organizer.Repository { return m }
}

func (m *Repository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Update(ctx context.Context, id int, d organizer.Details) (int64, error) {
	args := m.Called(ctx, id, d)
	return args.Get(0).(int64), args.Error(1)
}
