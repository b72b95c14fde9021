// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Service struct {
	store *core.Store
	repo  func(core.DBTX) Repository
}

func NewService(store *core.Store, repo func(core.DBTX) Repository) *Service {
	return &Service{store: store, repo: repo}
}

// CheckValid maps a user lookup to the account gate outcome: missing and
// blocked accounts are unauthorized, unverified ones are forbidden.
func CheckValid(u *User, lookupErr error) error {
	if errors.Is(lookupErr, core.ErrNotFound) {
		return core.NewAppError(
			core.ErrNotFound,
			"User Not Found",
			http.StatusUnauthorized,
			"USER_NOT_FOUND",
		)
	}
	if lookupErr != nil {
		return lookupErr
	}

	switch u.AccountStatus {
	case StatusBlocked:
		return core.UnauthorizedError("Account Blocked by Admin")
	case StatusUnverified:
		return core.ForbiddenError("Account Not Verified")
	case StatusActive:
		return nil
	default:
		return fmt.Errorf("user %d: unknown account status %d", u.ID, u.AccountStatus)
	}
}

func (s *Service) GetMe(ctx context.Context, userID int) (*User, error) {
	const op = "user.GetMe"

	if userID == 0 {
		return nil, core.UnauthorizedError("authentication required")
	}

	var me *User
	err := s.store.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableUsers)},
		func(ctx context.Context, sess *core.Session) error {
			u, err := s.repo(sess.DB()).GetByID(ctx, userID)
			if err := CheckValid(u, err); err != nil {
				return err
			}
			me = u
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return me, nil
}
