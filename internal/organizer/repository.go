// AngelaMos | 2026
// repository.go

package organizer

import (
	"context"
	"fmt"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

type Repository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Update(ctx context.Context, id int, d Details) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Exists(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM organizers WHERE organizer_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check organizer: %w", err)
	}

	return exists, nil
}

// Update reports zero rows when nothing differs from the stored row.
func (r *repository) Update(ctx context.Context, id int, d Details) (int64, error) {
	query := `
		UPDATE organizers
		SET organizer_name = $1, phone_number = $2
		WHERE organizer_id = $3
		  AND (organizer_name, phone_number) IS DISTINCT FROM ($1::varchar, $2::varchar)`

	result, err := r.db.ExecContext(ctx, query, d.Name, d.PhoneNumber, id)
	if err != nil {
		return 0, fmt.Errorf("update organizer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update organizer: %w", err)
	}

	return rows, nil
}
