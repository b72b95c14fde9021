// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

// Repository covers the main store tables the admin panel reads and
// writes besides users. Like user.Repository it is bound to one lock
// session's connection.
type Repository interface {
	RoleIDExists(ctx context.Context, roleID int) (bool, error)
	RoleNameExists(ctx context.Context, roleName string) (bool, error)
	CreateRole(ctx context.Context, roleID int, roleName string) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	GetEvent(ctx context.Context, eventID int) (*Event, error)
	EventRevenue(ctx context.Context) ([]EventRevenue, error)
	TeamRoster(ctx context.Context, eventID int) ([]Team, error)
	IndividualRoster(ctx context.Context, eventID int) ([]Student, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) RoleIDExists(ctx context.Context, roleID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM roles WHERE role_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, roleID); err != nil {
		return false, fmt.Errorf("check role id: %w", err)
	}

	return exists, nil
}

func (r *repository) RoleNameExists(
	ctx context.Context,
	roleName string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM roles WHERE role_name = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, roleName); err != nil {
		return false, fmt.Errorf("check role name: %w", err)
	}

	return exists, nil
}

func (r *repository) CreateRole(
	ctx context.Context,
	roleID int,
	roleName string,
) (*Role, error) {
	query := `
		INSERT INTO roles (role_id, role_name)
		VALUES ($1, $2)
		RETURNING role_id, role_name, created_at`

	var role Role
	if err := r.db.GetContext(ctx, &role, query, roleID, roleName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("create role: %w", core.ErrInsertFailed)
		}
		if core.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create role: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("create role: %w", err)
	}

	return &role, nil
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	query := `
		SELECT role_id, role_name, created_at
		FROM roles
		ORDER BY role_id`

	var roles []Role
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	return roles, nil
}

func (r *repository) GetEvent(ctx context.Context, eventID int) (*Event, error) {
	query := `
		SELECT event_id, event_name, event_fee, is_group
		FROM events
		WHERE event_id = $1`

	var event Event
	err := r.db.GetContext(ctx, &event, query, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	return &event, nil
}

// EventRevenue sums paid registrations per event. Events with no paid
// registration do not appear.
func (r *repository) EventRevenue(ctx context.Context) ([]EventRevenue, error) {
	query := `
		SELECT event_id, SUM(amount_paid) AS total_amount_paid
		FROM registrations
		WHERE registration_status = $1
		GROUP BY event_id
		ORDER BY event_id`

	var revenue []EventRevenue
	if err := r.db.SelectContext(ctx, &revenue, query, RegistrationPaid); err != nil {
		return nil, fmt.Errorf("event revenue: %w", err)
	}

	return revenue, nil
}

// TeamRoster needs READ locks on users, group_details and registrations.
func (r *repository) TeamRoster(ctx context.Context, eventID int) ([]Team, error) {
	query := `
		SELECT gd.registration_id, rd.team_name,
		       json_agg(json_build_object(
		           'userID', gd.user_id,
		           'eventID', gd.event_id,
		           'role', gd.role_description,
		           'userEmail', u.user_email,
		           'userName', u.user_name,
		           'rollNumber', u.roll_number,
		           'phoneNumber', u.phone_number,
		           'collegeName', u.college_name,
		           'collegeCity', u.college_city,
		           'userDepartment', u.user_department,
		           'academicYear', u.academic_year,
		           'degree', u.degree,
		           'needAccommodationDay1', u.need_accommodation_day1,
		           'needAccommodationDay2', u.need_accommodation_day2,
		           'isAmrita', u.is_amrita
		       ) ORDER BY gd.user_id) AS team_members
		FROM group_details gd
		JOIN users u ON gd.user_id = u.user_id
		JOIN registrations rd ON gd.registration_id = rd.registration_id
		WHERE gd.event_id = $1 AND u.account_status = $2
		GROUP BY gd.registration_id, rd.team_name
		ORDER BY gd.registration_id`

	var teams []Team
	if err := r.db.SelectContext(ctx, &teams, query, eventID, user.StatusActive); err != nil {
		return nil, fmt.Errorf("team roster: %w", err)
	}

	return teams, nil
}

// IndividualRoster needs READ locks on users and group_details.
func (r *repository) IndividualRoster(
	ctx context.Context,
	eventID int,
) ([]Student, error) {
	query := `
		SELECT gd.registration_id, gd.user_id, gd.event_id, ` + user.ProfileColumns + `
		FROM users u
		JOIN group_details gd ON u.user_id = gd.user_id
		WHERE gd.event_id = $1 AND u.account_status = $2
		ORDER BY gd.registration_id, gd.user_id`

	var students []Student
	if err := r.db.SelectContext(ctx, &students, query, eventID, user.StatusActive); err != nil {
		return nil, fmt.Errorf("individual roster: %w", err)
	}

	return students, nil
}

// TransactionRepository reads the payment ledger in the transactions
// store.
type TransactionRepository interface {
	List(ctx context.Context) ([]Transaction, error)
	GetByID(ctx context.Context, txnID string) (*Transaction, error)
}

type transactionRepository struct {
	db core.DBTX
}

func NewTransactionRepository(db core.DBTX) TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `
	txn_id, user_id, event_id, amount, product_info, user_name,
	user_email, phone_number, txn_status, created_at`

func (r *transactionRepository) List(ctx context.Context) ([]Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at, txn_id`

	var txns []Transaction
	if err := r.db.SelectContext(ctx, &txns, query); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txns, nil
}

func (r *transactionRepository) GetByID(
	ctx context.Context,
	txnID string,
) (*Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE txn_id = $1`

	var txn Transaction
	err := r.db.GetContext(ctx, &txn, query, txnID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &txn, nil
}
