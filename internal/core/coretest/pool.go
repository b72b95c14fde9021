// AngelaMos | 2026
// pool.go

// Package coretest provides an in-memory core.Pool that counts checkouts
// and releases and records every statement a lock session issues.
package coretest

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
)

var ErrNotSupported = errors.New("coretest: query not supported by fake tx")

type Pool struct {
	mu sync.Mutex

	AcquireErr error
	BeginErr   error
	CommitErr  error
	// ExecHook, when set, decides the result of every ExecContext call.
	ExecHook func(stmt string) error

	acquired   int
	released   int
	commits    int
	rollbacks  int
	readOnly   []bool
	statements []string
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Acquire(ctx context.Context) (core.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.AcquireErr != nil {
		return nil, p.AcquireErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.acquired++
	return &conn{pool: p}, nil
}

func (p *Pool) Acquired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired
}

func (p *Pool) Released() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

func (p *Pool) Commits() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commits
}

func (p *Pool) Rollbacks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rollbacks
}

func (p *Pool) ReadOnly() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.readOnly...)
}

func (p *Pool) Statements() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.statements...)
}

// LockStatements filters Statements down to LOCK TABLE commands.
func (p *Pool) LockStatements() []string {
	var out []string
	for _, s := range p.Statements() {
		if len(s) > 10 && s[:10] == "LOCK TABLE" {
			out = append(out, s)
		}
	}
	return out
}

type conn struct {
	pool     *Pool
	released bool
}

func (c *conn) BeginTx(_ context.Context, readOnly bool) (core.Tx, error) {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()

	if c.pool.BeginErr != nil {
		return nil, c.pool.BeginErr
	}
	c.pool.readOnly = append(c.pool.readOnly, readOnly)
	return &Tx{pool: c.pool}, nil
}

func (c *conn) Release() error {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()

	if c.released {
		return errors.New("coretest: connection released twice")
	}
	c.released = true
	c.pool.released++
	return nil
}

type Tx struct {
	pool *Pool
	done bool
}

func (t *Tx) Commit() error {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()

	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	if t.pool.CommitErr != nil {
		t.pool.rollbacks++
		return t.pool.CommitErr
	}
	t.pool.commits++
	return nil
}

func (t *Tx) Rollback() error {
	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()

	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.pool.rollbacks++
	return nil
}

func (t *Tx) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	t.pool.mu.Lock()
	t.pool.statements = append(t.pool.statements, query)
	hook := t.pool.ExecHook
	t.pool.mu.Unlock()

	if hook != nil {
		if err := hook(query); err != nil {
			return nil, err
		}
	}
	return result(0), nil
}

func (t *Tx) DriverName() string {
	return "pgx"
}

func (t *Tx) Rebind(query string) string {
	return query
}

func (t *Tx) BindNamed(query string, _ any) (string, []any, error) {
	return query, nil, nil
}

func (t *Tx) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, ErrNotSupported
}

func (t *Tx) QueryxContext(context.Context, string, ...any) (*sqlx.Rows, error) {
	return nil, ErrNotSupported
}

func (t *Tx) QueryRowxContext(context.Context, string, ...any) *sqlx.Row {
	return nil
}

func (t *Tx) GetContext(context.Context, any, string, ...any) error {
	return ErrNotSupported
}

func (t *Tx) SelectContext(context.Context, any, string, ...any) error {
	return ErrNotSupported
}

type result int64

func (r result) LastInsertId() (int64, error) {
	return 0, ErrNotSupported
}

func (r result) RowsAffected() (int64, error) {
	return int64(r), nil
}
