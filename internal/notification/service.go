// AngelaMos | 2026
// service.go

package notification

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

func (s *Service) List(ctx context.Context) ([]Notification, error) {
	const op = "notification.List"

	var ns []Notification
	err := s.store.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableNotifications)},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			ns, err = s.repo(sess.DB()).List(ctx)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return ns, nil
}

func (s *Service) Add(ctx context.Context, d Details) (*Notification, error) {
	const op = "notification.Add"

	if d.EndDate.Before(d.StartDate) {
		return nil, core.BadRequestError("endDate must not be before startDate", core.ErrInvalidInput)
	}

	var id int
	err := s.store.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Write(core.TableNotifications)},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			id, err = s.repo(sess.DB()).Create(ctx, d)
			if err == nil && id == 0 {
				err = fmt.Errorf("create notification: %w", core.ErrInsertFailed)
			}
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return &Notification{ID: id, Details: d}, nil
}

func (s *Service) Update(ctx context.Context, id int, d Details) (*Notification, error) {
	const op = "notification.Update"

	if d.EndDate.Before(d.StartDate) {
		return nil, core.BadRequestError("endDate must not be before startDate", core.ErrInvalidInput)
	}

	err := s.store.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Write(core.TableNotifications)},
		func(ctx context.Context, sess *core.Session) error {
			repo := s.repo(sess.DB())

			exists, err := repo.Exists(ctx, id)
			if err != nil {
				return err
			}
			if !exists {
				return core.NotFoundError(fmt.Sprintf("No notification with ID %d exists.", id))
			}

			rows, err := repo.Update(ctx, id, d)
			if err != nil {
				return err
			}
			if rows != 1 {
				return core.NoEffectError(
					"Unable to update the notification. No details were changed.")
			}
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return &Notification{ID: id, Details: d}, nil
}
