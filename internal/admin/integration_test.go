// AngelaMos | 2026
// integration_test.go

//go:build integration

package admin_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/admin"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

type pgEnv struct {
	main *core.Database
	txns *core.Database
	svc  *admin.Service
}

func setupPostgres(t *testing.T) *pgEnv {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pragati"),
		tcpostgres.WithUsername("pragati"),
		tcpostgres.WithPassword("pragati"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background()) //nolint:errcheck // best-effort cleanup
	})

	mainURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	bootstrap, err := sqlx.ConnectContext(ctx, "pgx", mainURL)
	require.NoError(t, err)
	_, err = bootstrap.ExecContext(ctx, `CREATE DATABASE pragati_txns`)
	require.NoError(t, err)
	require.NoError(t, bootstrap.Close())
	txnURL := strings.Replace(mainURL, "/pragati?", "/pragati_txns?", 1)

	root := projectRoot(t)
	require.NoError(t, core.MigrateUp(mainURL, filepath.Join(root, "migrations", "main")))
	require.NoError(t, core.MigrateUp(txnURL, filepath.Join(root, "migrations", "transactions")))

	dbCfg := func(url string) config.DatabaseConfig {
		return config.DatabaseConfig{
			URL:            url,
			MaxOpenConns:   10,
			MaxIdleConns:   2,
			AcquireTimeout: 5 * time.Second,
			LockTimeout:    5 * time.Second,
		}
	}

	mainDB, err := core.NewDatabase(ctx, core.StoreMain, dbCfg(mainURL))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mainDB.Close() }) //nolint:errcheck // best-effort cleanup

	txnDB, err := core.NewDatabase(ctx, core.StoreTransactions, dbCfg(txnURL))
	require.NoError(t, err)
	t.Cleanup(func() { _ = txnDB.Close() }) //nolint:errcheck // best-effort cleanup

	seed(t, mainDB.DB, txnDB.DB)

	return &pgEnv{
		main: mainDB,
		txns: txnDB,
		svc: admin.NewService(admin.ServiceConfig{
			MainStore:         mainDB.Store(),
			TransactionsStore: txnDB.Store(),
		}),
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

func seed(t *testing.T, mainDB, txnDB *sqlx.DB) {
	t.Helper()

	statements := []string{
		`INSERT INTO events (event_id, event_name, event_fee, is_group) VALUES
			(1, 'Hackathon', 500, TRUE),
			(2, 'Quiz', 100, FALSE),
			(3, 'Paper Presentation', 200, FALSE)`,
		`INSERT INTO users (user_id, user_email, user_name, account_status, role_id) VALUES
			(1, 'admin@pragati.test', 'Admin', 2, 1),
			(2, 'asha@pragati.test', 'Asha', 2, 2),
			(3, 'ravi@pragati.test', 'Ravi', 2, 2),
			(4, 'meera@pragati.test', 'Meera', 0, 2)`,
		`INSERT INTO registrations (registration_id, event_id, user_id, team_name, amount_paid, registration_status) VALUES
			(10, 1, 2, 'Null Pointers', 500, 2),
			(11, 2, 3, NULL, 100, 2),
			(12, 2, 4, NULL, 100, 1),
			(13, 3, 2, NULL, 200, 0)`,
		`INSERT INTO group_details (registration_id, event_id, user_id, role_description) VALUES
			(10, 1, 2, 'lead'),
			(10, 1, 3, 'member'),
			(10, 1, 4, 'member'),
			(11, 2, 3, ''),
			(12, 2, 4, '')`,
	}
	for _, stmt := range statements {
		_, err := mainDB.Exec(stmt)
		require.NoError(t, err)
	}

	_, err := txnDB.Exec(`INSERT INTO transactions
		(txn_id, user_id, event_id, amount, product_info, user_name, user_email, txn_status)
		VALUES ('TXN-2-1', 2, 1, 500, 'Hackathon', 'Asha', 'asha@pragati.test', 2)`)
	require.NoError(t, err)
}

func TestIntegrationRosterAndRevenue(t *testing.T) {
	env := setupPostgres(t)
	ctx := context.Background()

	group, err := env.svc.EventRoster(ctx, 1)
	require.NoError(t, err)
	require.True(t, group.IsGroup)
	require.Len(t, group.Teams, 1)
	assert.Equal(t, "Null Pointers", *group.Teams[0].TeamName)
	assert.Len(t, group.Teams[0].Members, 2, "blocked members are left out")

	individual, err := env.svc.EventRoster(ctx, 2)
	require.NoError(t, err)
	require.Len(t, individual.Students, 1)
	assert.Equal(t, "Ravi", individual.Students[0].Name)

	_, err = env.svc.EventRoster(ctx, 404)
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "No event with id found.", appErr.Message)

	revenue, err := env.svc.EventRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []admin.EventRevenue{
		{EventID: 1, TotalAmountPaid: 500},
		{EventID: 2, TotalAmountPaid: 100},
	}, revenue)

	users, err := env.svc.ListAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestIntegrationMutations(t *testing.T) {
	env := setupPostgres(t)
	ctx := context.Background()

	_, err := env.svc.ChangeAccountStatus(ctx, 3, user.StatusBlocked)
	require.NoError(t, err)

	_, err = env.svc.ChangeAccountStatus(ctx, 3, user.StatusBlocked)
	assert.ErrorIs(t, err, core.ErrNoEffect)

	_, err = env.svc.ChangeAccountStatus(ctx, 999, user.StatusBlocked)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = env.svc.ChangeUserRole(ctx, 2, 7)
	assert.ErrorIs(t, err, core.ErrNotFound)

	role, err := env.svc.CreateRole(ctx, 3, "VOLUNTEER")
	require.NoError(t, err)
	assert.False(t, role.CreatedAt.IsZero())
	_, err = env.svc.CreateRole(ctx, 4, "VOLUNTEER")
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = env.svc.ChangeUserRole(ctx, 2, 3)
	require.NoError(t, err)

	roles, err := env.svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	txn, err := env.svc.GetTransaction(ctx, "TXN-2-1")
	require.NoError(t, err)
	assert.Equal(t, admin.RegistrationPaid, txn.TxnStatus)

	_, err = env.svc.GetTransaction(ctx, "TXN-4-1")
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Transaction ID of Invalid User", appErr.Message)
}

func TestIntegrationConcurrentSessionsReturnConnections(t *testing.T) {
	env := setupPostgres(t)
	ctx := context.Background()

	const workers = 24
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			switch i % 3 {
			case 0:
				status := user.StatusActive
				if i%2 == 0 {
					status = user.StatusUnverified
				}
				_, err = env.svc.ChangeAccountStatus(ctx, 2, status)
			case 1:
				_, err = env.svc.ListAllUsers(ctx)
			default:
				_, err = env.svc.EventRoster(ctx, 1)
			}
			if err != nil && !core.IsAppError(err) {
				errs <- err
				return
			}
			if appErr, ok := core.AsAppError(err); ok && appErr.StatusCode >= 500 {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected fault: %v", err)
	}
	assert.Equal(t, 0, env.main.DB.Stats().InUse)
}

func TestIntegrationLockTimeoutIsAFault(t *testing.T) {
	env := setupPostgres(t)
	ctx := context.Background()

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- env.main.Store().WithLockedSession(
			ctx, "test.hold",
			[]core.TableLock{core.Write(core.TableUsers)},
			func(context.Context, *core.Session) error {
				close(held)
				<-release
				return nil
			},
		)
	}()
	<-held

	impatient := admin.NewService(admin.ServiceConfig{
		MainStore: core.NewStore(core.StoreMain, core.SQLXPool(env.main.DB), core.StoreOptions{
			LockTimeout: 200 * time.Millisecond,
		}),
		TransactionsStore: env.txns.Store(),
	})

	_, err := impatient.ChangeAccountStatus(ctx, 2, user.StatusBlocked)
	close(release)

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInfrastructure)
	assert.True(t, core.IsLockTimeout(err))
	require.NoError(t, <-done)
}
