// AngelaMos | 2026
// checks.go

package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

// The checks below run inside the lock session of the mutation they
// guard, after its locks are taken, so nothing can change between the
// check and the write.

// userExists returns nil when every id has a users row and a NotFound
// error naming the missing ids otherwise.
func userExists(ctx context.Context, users user.Repository, ids ...int) error {
	missing, err := users.MissingIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for _, id := range missing {
		names = append(names, strconv.Itoa(id))
	}

	if len(missing) == 1 {
		return core.NotFoundError(fmt.Sprintf("No user with ID %s exists.", names[0]))
	}
	return core.NotFoundError(fmt.Sprintf(
		"No users with IDs %s exist.", strings.Join(names, ", ")))
}

func roleIDExists(ctx context.Context, repo Repository, roleID int) (bool, error) {
	return repo.RoleIDExists(ctx, roleID)
}

func roleNameExists(ctx context.Context, repo Repository, roleName string) (bool, error) {
	return repo.RoleNameExists(ctx, roleName)
}
