// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

type ServiceConfig struct {
	MainStore         *core.Store
	TransactionsStore *core.Store

	Repository            func(core.DBTX) Repository
	UserRepository        func(core.DBTX) user.Repository
	TransactionRepository func(core.DBTX) TransactionRepository
}

// Service runs every admin operation in its own lock session. Operations
// never share a session and never hold two connections at once.
type Service struct {
	main   *core.Store
	txns   *core.Store
	repo   func(core.DBTX) Repository
	users  func(core.DBTX) user.Repository
	ledger func(core.DBTX) TransactionRepository
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Repository == nil {
		cfg.Repository = NewRepository
	}
	if cfg.UserRepository == nil {
		cfg.UserRepository = user.NewRepository
	}
	if cfg.TransactionRepository == nil {
		cfg.TransactionRepository = NewTransactionRepository
	}

	return &Service{
		main:   cfg.MainStore,
		txns:   cfg.TransactionsStore,
		repo:   cfg.Repository,
		users:  cfg.UserRepository,
		ledger: cfg.TransactionRepository,
	}
}

func (s *Service) ListTransactions(ctx context.Context) ([]Transaction, error) {
	const op = "admin.ListTransactions"

	var txns []Transaction
	err := s.txns.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableTransactions)},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			txns, err = s.ledger(sess.DB()).List(ctx)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return txns, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	const op = "admin.ListRoles"

	var roles []Role
	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableRoles)},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			roles, err = s.repo(sess.DB()).ListRoles(ctx)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return roles, nil
}

func (s *Service) EventRevenue(ctx context.Context) ([]EventRevenue, error) {
	const op = "admin.EventRevenue"

	var revenue []EventRevenue
	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableRegistrations)},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			revenue, err = s.repo(sess.DB()).EventRevenue(ctx)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return revenue, nil
}

// ListAllUsers returns every user with the events they are registered
// to. An empty table is a successful, empty result.
func (s *Service) ListAllUsers(ctx context.Context) ([]user.UserWithEvents, error) {
	const op = "admin.ListAllUsers"

	var users []user.UserWithEvents
	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{
			core.Read(core.TableEvents),
			core.Read(core.TableUsers),
			core.Read(core.TableGroupDetails),
		},
		func(ctx context.Context, sess *core.Session) error {
			var err error
			users, err = s.users(sess.DB()).ListWithEvents(ctx)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return users, nil
}

func (s *Service) ChangeAccountStatus(
	ctx context.Context,
	userID int,
	status user.AccountStatus,
) (*StatusChange, error) {
	const op = "admin.ChangeAccountStatus"

	if !status.Valid() {
		return nil, core.BadRequestError("Invalid account status.", core.ErrInvalidInput)
	}

	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Write(core.TableUsers)},
		func(ctx context.Context, sess *core.Session) error {
			users := s.users(sess.DB())

			if err := userExists(ctx, users, userID); err != nil {
				return err
			}

			rows, err := users.SetAccountStatus(ctx, userID, status)
			if err != nil {
				return err
			}
			if rows != 1 {
				return core.NoEffectError(fmt.Sprintf(
					"Unable to change the status of the user. The account is already %s.",
					status,
				))
			}
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return &StatusChange{UserID: userID, AccountStatus: status}, nil
}

func (s *Service) ChangeUserRole(
	ctx context.Context,
	userID, roleID int,
) (*RoleChange, error) {
	const op = "admin.ChangeUserRole"

	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{
			core.Read(core.TableRoles),
			core.Write(core.TableUsers),
		},
		func(ctx context.Context, sess *core.Session) error {
			users := s.users(sess.DB())

			if err := userExists(ctx, users, userID); err != nil {
				return err
			}

			exists, err := roleIDExists(ctx, s.repo(sess.DB()), roleID)
			if err != nil {
				return err
			}
			if !exists {
				return core.NotFoundError(fmt.Sprintf("No role with ID %d exists.", roleID))
			}

			rows, err := users.SetRole(ctx, userID, roleID)
			if err != nil {
				return err
			}
			if rows != 1 {
				return core.NoEffectError(
					"Unable to change the role of the user. The user already has this role.",
				)
			}
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return &RoleChange{UserID: userID, RoleID: roleID}, nil
}

// CreateRole checks roleID before roleName and inserts only when both are
// free.
func (s *Service) CreateRole(
	ctx context.Context,
	roleID int,
	roleName string,
) (*Role, error) {
	const op = "admin.CreateRole"

	var role *Role
	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Write(core.TableRoles)},
		func(ctx context.Context, sess *core.Session) error {
			repo := s.repo(sess.DB())

			exists, err := roleIDExists(ctx, repo, roleID)
			if err != nil {
				return err
			}
			if exists {
				return core.ConflictError("A role with this roleID already exists.")
			}

			exists, err = roleNameExists(ctx, repo, roleName)
			if err != nil {
				return err
			}
			if exists {
				return core.ConflictError("A role with this roleName already exists.")
			}

			role, err = repo.CreateRole(ctx, roleID, roleName)
			if err != nil {
				return err
			}
			if role == nil {
				return fmt.Errorf("create role %d: %w", roleID, core.ErrInsertFailed)
			}
			return nil
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return role, nil
}

// EventRoster lists the active participants of an event. The events table
// is locked alone first; the participant tables are only locked once the
// event is known to exist.
func (s *Service) EventRoster(ctx context.Context, eventID int) (*Roster, error) {
	const op = "admin.EventRoster"

	roster := &Roster{EventID: eventID}
	err := s.main.WithLockedSession(
		ctx, op,
		[]core.TableLock{core.Read(core.TableEvents)},
		func(ctx context.Context, sess *core.Session) error {
			repo := s.repo(sess.DB())

			event, err := repo.GetEvent(ctx, eventID)
			if errors.Is(err, core.ErrNotFound) {
				return core.BadRequestError("No event with id found.", core.ErrNotFound)
			}
			if err != nil {
				return err
			}
			roster.IsGroup = event.IsGroup

			if event.IsGroup {
				err = sess.Lock(ctx,
					core.Read(core.TableUsers),
					core.Read(core.TableGroupDetails),
					core.Read(core.TableRegistrations),
				)
				if err != nil {
					return err
				}
				roster.Teams, err = repo.TeamRoster(ctx, eventID)
				return err
			}

			err = sess.Lock(ctx,
				core.Read(core.TableUsers),
				core.Read(core.TableGroupDetails),
			)
			if err != nil {
				return err
			}
			roster.Students, err = repo.IndividualRoster(ctx, eventID)
			return err
		},
	)
	if err != nil {
		return nil, core.Surface(ctx, op, "db", err)
	}

	return roster, nil
}
