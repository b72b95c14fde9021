// AngelaMos | 2026
// service.go

package organizer

import (
	"context"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Service struct {
	store *core.Store
	repo  func(core.DBTX) Repository
}

func NewService(store *core.Store, repo func(core.DBTX) Repository) *Service {
	if repo == nil {
		repo = NewRepository
	}
	return &Service{store: store, repo: repo}
}

func (s *Service) Update(ctx context.Context, id int, d Details) (*Organizer, error) {
	const op = "organizer.Update"

	err := s.store.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Write(core.TableOrganizers)},
		func(ctx context.Context, sess *core.Session) error {
			repo := s.repo(sess.DB())

			exists, err := repo.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				return core.NotFoundError(fmt.Sprintf("No organizer with ID %d exists.", id))
			}

			rows, err := repo.Update(ctx, id, d)
			if err != nil {
				return err
			}
			if rows != 1 {
				return core.NoEffectError(
					"Unable to update the organizer. No details were changed.")
			}
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return &Organizer{ID: id, Details: d}, nil
}
