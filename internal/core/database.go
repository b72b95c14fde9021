// AngelaMos | 2026
// database.go

package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/config"
)

const (
	StoreMain         = "main"
	StoreTransactions = "transactions"
)

// Database is one logical store: a named connection pool plus the lock
// session settings that go with it.
type Database struct {
	DB   *sqlx.DB
	Name string

	acquireTimeout time.Duration
	lockTimeout    time.Duration
}

const pingTimeout = 5 * time.Second

// NewDatabase opens the pool for one store and checks it answers.
func NewDatabase(
	ctx context.Context,
	name string,
	cfg config.DatabaseConfig,
) (*Database, error) {
	db, err := sqlx.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", name, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(jitteredDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	d := &Database{
		DB:             db,
		Name:           name,
		acquireTimeout: cfg.AcquireTimeout,
		lockTimeout:    cfg.LockTimeout,
	}
	if err := d.Ping(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return d, nil
}

func (d *Database) Ping(ctx context.Context) error {
	return pingWithin(ctx, d.Name+" database", d.DB.PingContext)
}

func (d *Database) Close() error {
	if d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Store returns the lock session entry point backed by this pool.
func (d *Database) Store() *Store {
	return NewStore(d.Name, SQLXPool(d.DB), StoreOptions{
		AcquireTimeout: d.acquireTimeout,
		LockTimeout:    d.lockTimeout,
	})
}

type DBTX interface {
	sqlx.ExtContext
	sqlx.ExecerContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(
		ctx context.Context,
		dest any,
		query string,
		args ...any,
	) error
}

// SQLSTATE codes the repositories branch on.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgLockNotAvailable    = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsDuplicateKeyError(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

func IsForeignKeyError(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// IsLockTimeout reports whether the server gave up waiting for a table lock.
func IsLockTimeout(err error) bool {
	return pgCode(err) == pgLockNotAvailable
}

func jitteredDuration(base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}
	//nolint:gosec // G404: non-security-sensitive jitter for connection pool
	jitter := time.Duration(rand.Int64N(int64(base/7) + 1))
	return base + jitter
}
