// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

// Repository queries the users table. It is built per lock session over
// the session's connection, so callers must already hold the locks the
// query needs.
type Repository interface {
	GetByID(ctx context.Context, id int) (*User, error)
	MissingIDs(ctx context.Context, ids []int) ([]int, error)
	SetAccountStatus(ctx context.Context, id int, status AccountStatus) (int64, error)
	SetRole(ctx context.Context, id, roleID int) (int64, error)
	ListWithEvents(ctx context.Context) ([]UserWithEvents, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// ProfileColumns lists the profile fields of a users row aliased as u, in
// the order Profile scans them.
const ProfileColumns = `
	u.user_email, u.user_name, u.roll_number, u.phone_number,
	u.college_name, u.college_city, u.user_department, u.academic_year,
	u.degree, u.need_accommodation_day1, u.need_accommodation_day2,
	u.is_amrita`

func (r *repository) GetByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT u.user_id, ` + ProfileColumns + `,
		       u.account_status, u.role_id, u.created_at
		FROM users u
		WHERE u.user_id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// MissingIDs returns the subset of ids with no users row, in ascending
// order.
func (r *repository) MissingIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make([]int64, 0, len(ids))
	for _, id := range ids {
		wanted = append(wanted, int64(id))
	}

	query := `
		SELECT DISTINCT id
		FROM unnest($1::bigint[]) AS id
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE user_id = id)
		ORDER BY id`

	var missing []int
	if err := r.db.SelectContext(ctx, &missing, query, wanted); err != nil {
		return nil, fmt.Errorf("check user ids: %w", err)
	}

	return missing, nil
}

// SetAccountStatus reports the number of rows changed. A row that already
// has the requested status is not counted.
func (r *repository) SetAccountStatus(
	ctx context.Context,
	id int,
	status AccountStatus,
) (int64, error) {
	query := `
		UPDATE users
		SET account_status = $1
		WHERE user_id = $2 AND account_status <> $1`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("update account status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update account status: %w", err)
	}

	return rows, nil
}

func (r *repository) SetRole(ctx context.Context, id, roleID int) (int64, error) {
	query := `
		UPDATE users
		SET role_id = $1
		WHERE user_id = $2 AND role_id <> $1`

	result, err := r.db.ExecContext(ctx, query, roleID, id)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return 0, fmt.Errorf("update role: %w", core.ErrNotFound)
		}
		return 0, fmt.Errorf("update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update role: %w", err)
	}

	return rows, nil
}

// ListWithEvents needs READ locks on events, users and group_details.
func (r *repository) ListWithEvents(ctx context.Context) ([]UserWithEvents, error) {
	query := `
		SELECT u.user_id, ` + ProfileColumns + `,
		       u.role_id,
		       COALESCE((
		           SELECT json_agg(json_build_object(
		                      'eventID', e.event_id,
		                      'eventName', e.event_name,
		                      'eventFee', e.event_fee
		                  ) ORDER BY e.event_id)
		           FROM events e
		           JOIN group_details g ON e.event_id = g.event_id
		           WHERE g.user_id = u.user_id
		       ), '[]'::json) AS registered_events
		FROM users u
		ORDER BY u.user_id`

	var users []UserWithEvents
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users with events: %w", err)
	}

	return users, nil
}
