// AngelaMos | 2026
// session.go

package core

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/metrics"
)

type LockMode int

const (
	LockRead LockMode = iota
	LockWrite
)

func (m LockMode) String() string {
	if m == LockWrite {
		return "WRITE"
	}
	return "READ"
}

// READ maps to SHARE (readers coexist, writers wait) and WRITE to
// EXCLUSIVE (everything but plain unlocked SELECTs waits).
func (m LockMode) pgMode() string {
	if m == LockWrite {
		return "EXCLUSIVE"
	}
	return "SHARE"
}

type Table string

const (
	TableRoles         Table = "roles"
	TableEvents        Table = "events"
	TableUsers         Table = "users"
	TableGroupDetails  Table = "group_details"
	TableRegistrations Table = "registrations"
	TableNotifications Table = "notifications"
	TableOrganizers    Table = "organizers"
	TableTransactions  Table = "transactions"
)

// tableRank is the canonical lock order. Every session takes its locks in
// ascending rank, which rules out lock-order cycles between operations.
var tableRank = map[Table]int{
	TableRoles:         10,
	TableEvents:        20,
	TableUsers:         30,
	TableGroupDetails:  40,
	TableRegistrations: 50,
	TableNotifications: 60,
	TableOrganizers:    65,
	TableTransactions:  70,
}

type TableLock struct {
	Table Table
	Mode  LockMode
}

func Read(t Table) TableLock {
	return TableLock{Table: t, Mode: LockRead}
}

func Write(t Table) TableLock {
	return TableLock{Table: t, Mode: LockWrite}
}

type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

type Conn interface {
	BeginTx(ctx context.Context, readOnly bool) (Tx, error)
	Release() error
}

type Tx interface {
	DBTX
	Commit() error
	Rollback() error
}

func SQLXPool(db *sqlx.DB) Pool {
	return sqlxPool{db: db}
}

type sqlxPool struct {
	db *sqlx.DB
}

func (p sqlxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	return sqlxConn{conn: conn}, nil
}

type sqlxConn struct {
	conn *sqlx.Conn
}

func (c sqlxConn) BeginTx(ctx context.Context, readOnly bool) (Tx, error) {
	tx, err := c.conn.BeginTxx(ctx, &sql.TxOptions{ReadOnly: readOnly})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (c sqlxConn) Release() error {
	return c.conn.Close()
}

type StoreOptions struct {
	AcquireTimeout time.Duration
	LockTimeout    time.Duration
}

// Store hands out lock sessions against one logical database.
type Store struct {
	name   string
	pool   Pool
	opts   StoreOptions
	tracer trace.Tracer
}

func NewStore(name string, pool Pool, opts StoreOptions) *Store {
	return &Store{
		name:   name,
		pool:   pool,
		opts:   opts,
		tracer: otel.Tracer("pragati/core/session"),
	}
}

func (s *Store) Name() string {
	return s.name
}

// Session is the live side of a lock session. Queries go through DB(); the
// lock set can only grow in canonical order.
type Session struct {
	tx       Tx
	readOnly bool
	held     map[Table]LockMode
	maxRank  int
}

func (s *Session) DB() DBTX {
	return s.tx
}

func (s *Session) Holds(t Table, mode LockMode) bool {
	held, ok := s.held[t]
	return ok && held >= mode
}

// Lock extends the session's lock set. Tables are sorted into canonical
// order and every new table must rank after the ones already held.
func (s *Session) Lock(ctx context.Context, locks ...TableLock) error {
	pending, err := s.plan(locks)
	if err != nil {
		return err
	}

	for _, group := range groupByMode(pending) {
		names := make([]string, 0, len(group))
		for _, l := range group {
			names = append(names, pgx.Identifier{string(l.Table)}.Sanitize())
		}

		stmt := fmt.Sprintf(
			"LOCK TABLE %s IN %s MODE",
			strings.Join(names, ", "),
			group[0].Mode.pgMode(),
		)
		if _, err := s.tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("lock %s: %w", describeLocks(group), err)
		}

		for _, l := range group {
			s.held[l.Table] = l.Mode
			s.maxRank = max(s.maxRank, tableRank[l.Table])
		}
	}

	return nil
}

func (s *Session) plan(locks []TableLock) ([]TableLock, error) {
	merged := make(map[Table]LockMode, len(locks))
	for _, l := range locks {
		if _, ok := tableRank[l.Table]; !ok {
			return nil, fmt.Errorf("lock %q: unknown table: %w", l.Table, ErrLockOrder)
		}
		if cur, ok := merged[l.Table]; !ok || l.Mode > cur {
			merged[l.Table] = l.Mode
		}
	}

	pending := make([]TableLock, 0, len(merged))
	for t, mode := range merged {
		if s.Holds(t, mode) {
			continue
		}
		if _, ok := s.held[t]; ok {
			return nil, fmt.Errorf(
				"lock %s: upgrade of held lock: %w", t, ErrLockOrder)
		}
		if tableRank[t] <= s.maxRank {
			return nil, fmt.Errorf(
				"lock %s: ranks before a held table: %w", t, ErrLockOrder)
		}
		if mode == LockWrite && s.readOnly {
			return nil, fmt.Errorf(
				"lock %s: write lock in read session: %w", t, ErrLockOrder)
		}
		pending = append(pending, TableLock{Table: t, Mode: mode})
	}

	slices.SortFunc(pending, func(a, b TableLock) int {
		return tableRank[a.Table] - tableRank[b.Table]
	})

	return pending, nil
}

func groupByMode(locks []TableLock) [][]TableLock {
	var groups [][]TableLock
	for _, l := range locks {
		n := len(groups)
		if n > 0 && groups[n-1][0].Mode == l.Mode {
			groups[n-1] = append(groups[n-1], l)
			continue
		}
		groups = append(groups, []TableLock{l})
	}
	return groups
}

func describeLocks(locks []TableLock) string {
	parts := make([]string, 0, len(locks))
	for _, l := range locks {
		parts = append(parts, string(l.Table)+" "+l.Mode.String())
	}
	return strings.Join(parts, ", ")
}

// WithLockedSession checks out one connection, opens a transaction on it,
// takes the requested table locks and runs fn. Whatever fn does (return,
// fail, panic) the transaction is ended, which drops the locks, and the
// connection goes back to the pool exactly once.
//
// A nil error from fn commits; any error rolls back. Read-only lock sets
// run in a READ ONLY transaction.
func (s *Store) WithLockedSession(
	ctx context.Context,
	op string,
	locks []TableLock,
	fn func(ctx context.Context, sess *Session) error,
) (err error) {
	if len(locks) == 0 {
		return fmt.Errorf("%s: lock session without tables: %w", op, ErrLockOrder)
	}

	ctx, span := s.tracer.Start(ctx, "lock_session "+op, trace.WithAttributes(
		attribute.String("db.store", s.name),
		attribute.String("db.locks", describeLocks(locks)),
	))
	start := time.Now()
	inFlight := metrics.LockSessionsInFlight.WithLabelValues(s.name)
	inFlight.Inc()

	defer func() {
		inFlight.Dec()
		outcome := sessionOutcome(err)
		metrics.RecordLockSession(s.name, op, outcome, start)
		if outcome == "fault" {
			span.RecordError(err)
			span.SetStatus(codes.Error, "lock session failed")
		}
		span.End()
	}()

	acquireCtx := ctx
	if s.opts.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, s.opts.AcquireTimeout)
		defer cancel()
	}

	conn, err := s.pool.Acquire(acquireCtx)
	if err != nil {
		metrics.ConnAcquireFailures.WithLabelValues(s.name).Inc()
		return fmt.Errorf("acquire %s connection: %w", s.name, err)
	}
	defer func() {
		if relErr := conn.Release(); relErr != nil {
			zerolog.Ctx(ctx).Warn().
				Err(relErr).
				Str("store", s.name).
				Str("op", op).
				Msg("release connection")
		}
	}()

	readOnly := true
	for _, l := range locks {
		if l.Mode == LockWrite {
			readOnly = false
		}
	}

	tx, err := conn.BeginTx(ctx, readOnly)
	if err != nil {
		return fmt.Errorf("begin %s session: %w", s.name, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback() //nolint:errcheck // best-effort rollback on panic
			err = fmt.Errorf("%s: panic in lock session: %v", op, p)
			panic(p)
		}
	}()

	sess := &Session{
		tx:       tx,
		readOnly: readOnly,
		held:     make(map[Table]LockMode, len(locks)),
	}

	if err := s.setup(ctx, sess, locks); err != nil {
		return rollback(tx, err)
	}

	if err := fn(ctx, sess); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s session: %w", s.name, err)
	}

	return nil
}

func (s *Store) setup(ctx context.Context, sess *Session, locks []TableLock) error {
	if s.opts.LockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", lockTimeoutMillis(s.opts.LockTimeout))
		if _, err := sess.tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("set lock timeout: %w", err)
		}
	}

	return sess.Lock(ctx, locks...)
}

// lockTimeoutMillis rounds up so a sub-millisecond timeout never becomes
// 0, which PostgreSQL reads as no timeout.
func lockTimeoutMillis(d time.Duration) int64 {
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}

func rollback(tx Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("rollback failed: %w (original: %w)", rbErr, err)
	}
	return err
}

func sessionOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if appErr, ok := AsAppError(err); ok && appErr.StatusCode < 500 {
		return "rejected"
	}
	return "fault"
}
