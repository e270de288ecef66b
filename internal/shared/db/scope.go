package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Scope is a transaction opened for isolation only: whatever happens inside it is
// rolled back by Close. Repositories pick the transaction up from Context().
type Scope struct {
	tx    pgx.Tx
	ctx   context.Context
	close sync.Once
	err   error
}

// BeginScope opens a rollback-only transaction
func BeginScope(ctx context.Context, b Beginner) (*Scope, error) {
	tx, err := b.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin scope: %w", err)
	}
	return &Scope{tx: tx, ctx: withTx(ctx, tx)}, nil
}

// Context carries the scope transaction
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Close rolls the transaction back, it is safe to call more than once
func (s *Scope) Close() error {
	s.close.Do(func() {
		err := s.tx.Rollback(context.WithoutCancel(s.ctx))
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error("Failed to roll back scope", zap.Error(err))
			s.err = fmt.Errorf("rollback scope: %w", err)
		}
	})
	return s.err
}

// WithRollback runs fn inside a Scope and rolls it back on every exit path,
// panics included. fn's error wins over a rollback error.
func WithRollback(ctx context.Context, b Beginner, fn func(ctx context.Context) error) (err error) {
	scope, err := BeginScope(ctx, b)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := scope.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(scope.Context())
}
