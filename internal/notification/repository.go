// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Notification, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, d Details) (int, error)
	Update(ctx context.Context, id int, d Details) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Notification, error) {
	query := `
		SELECT notification_id, title, description, author, venue,
		       start_date, end_date, created_at
		FROM notifications
		ORDER BY start_date DESC, notification_id DESC`

	var ns []Notification
	if err := r.db.SelectContext(ctx, &ns, query); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return ns, nil
}

func (r *repository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM notifications WHERE notification_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check notification: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, d Details) (int, error) {
	query := `
		INSERT INTO notifications (title, description, author, venue, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING notification_id`

	var id int
	err := r.db.GetContext(ctx, &id, query,
		d.Title, d.Description, d.Author, d.Venue, d.StartDate, d.EndDate)
	if err != nil {
		return 0, fmt.Errorf("create notification: %w", err)
	}

	return id, nil
}

// Update reports zero rows when the stored row already matches d.
func (r *repository) Update(ctx context.Context, id int, d Details) (int64, error) {
	query := `
		UPDATE notifications
		SET title = $1, description = $2, author = $3, venue = $4,
		    start_date = $5, end_date = $6
		WHERE notification_id = $7
		  AND (title, description, author, venue, start_date, end_date)
		      IS DISTINCT FROM ($1, $2, $3, $4, $5::timestamptz, $6::timestamptz)`

	result, err := r.db.ExecContext(ctx, query,
		d.Title, d.Description, d.Author, d.Venue, d.StartDate, d.EndDate, id)
	if err != nil {
		return 0, fmt.Errorf("update notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update notification: %w", err)
	}

	return rows, nil
}
