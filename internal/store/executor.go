package store

import (
	"context"
	"errors"
	"time"

	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier runs parameterized statements. Only values may be bound; table
// and column names must already be validated identifiers.
type Querier interface {
	FetchMany(ctx context.Context, sql string, args ...any) ([]Row, error)
	FetchOne(ctx context.Context, sql string, args ...any) (Row, error)
	Execute(ctx context.Context, sql string, args ...any) (int64, error)
	ExecuteReturning(ctx context.Context, sql string, args ...any) (Row, error)
}

const (
	opFetchMany = "fetch_many"
	opFetchOne  = "fetch_one"
	opExecute   = "execute"

	opExecuteReturning = "execute_returning"
)

// Options bound how long the executor waits and how often it retries
type Options struct {
	AcquireTimeout   time.Duration
	StatementTimeout time.Duration
	MaxAttempts      int
	InitialInterval  time.Duration
	MaxInterval      time.Duration
}

func (o *Options) setDefaults() {
	if o.AcquireTimeout <= 0 {
		o.AcquireTimeout = 5 * time.Second
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 3
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 100 * time.Millisecond
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = 2 * time.Second
	}
}

// Executor runs statements on connections from a shared pgx pool
type Executor struct {
	pool    *pgxpool.Pool
	opts    Options
	metrics *metrics.Metrics
}

// NewExecutor creates an executor over pool. The pool is owned by the caller.
func NewExecutor(pool *pgxpool.Pool, opts Options, m *metrics.Metrics) *Executor {
	opts.setDefaults()
	return &Executor{pool: pool, opts: opts, metrics: m}
}

// FetchMany returns every row produced by sql
func (e *Executor) FetchMany(ctx context.Context, sql string, args ...any) ([]Row, error) {
	var out []Row
	err := e.run(ctx, opFetchMany, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		maps, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return err
		}
		out = make([]Row, len(maps))
		for i, m := range maps {
			out[i] = Row(m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchOne returns the first row produced by sql, or nil when there is none
func (e *Executor) FetchOne(ctx context.Context, sql string, args ...any) (Row, error) {
	var out Row
	err := e.run(ctx, opFetchOne, func(ctx context.Context, conn *pgxpool.Conn) error {
		var err error
		out, err = queryFirst(ctx, conn, sql, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Execute runs sql and returns the number of affected rows
func (e *Executor) Execute(ctx context.Context, sql string, args ...any) (int64, error) {
	var affected int64
	err := e.run(ctx, opExecute, func(ctx context.Context, conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// ExecuteReturning runs a write with a RETURNING clause and returns the first
// row. It is retried under the same rules as Execute.
func (e *Executor) ExecuteReturning(ctx context.Context, sql string, args ...any) (Row, error) {
	var out Row
	err := e.run(ctx, opExecuteReturning, func(ctx context.Context, conn *pgxpool.Conn) error {
		var err error
		out, err = queryFirst(ctx, conn, sql, args)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func queryFirst(ctx context.Context, conn *pgxpool.Conn, sql string, args []any) (Row, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if len(maps) == 0 {
		return nil, nil
	}
	return Row(maps[0]), nil
}

// run acquires a connection, executes fn and retries transient failures
// with exponential backoff.
func (e *Executor) run(ctx context.Context, op string, fn func(context.Context, *pgxpool.Conn) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.opts.InitialInterval
	b.MaxInterval = e.opts.MaxInterval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(e.opts.MaxAttempts-1)), ctx)

	attempt := func() error {
		err := e.once(ctx, op, fn)
		if err == nil || retryable(op, err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		e.metrics.ObserveRetry("transient")
		logger.WithContext(ctx).WithError(err).Warnf("store %s failed transiently, retrying in %s", op, wait)
	}

	err := backoff.RetryNotify(attempt, policy, notify)
	e.metrics.ObserveOperation(op, resultLabel(err))
	return err
}

// once performs a single attempt and returns a classified error
func (e *Executor) once(ctx context.Context, op string, fn func(context.Context, *pgxpool.Conn) error) error {
	conn, err := e.acquire(ctx, op)
	if err != nil {
		return err
	}
	defer conn.Release()

	stmtCtx, cancel := e.statementContext(ctx)
	defer cancel()

	if err := fn(stmtCtx, conn); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return classified(op, err)
	}
	return nil
}

func (e *Executor) acquire(ctx context.Context, op string) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, e.opts.AcquireTimeout)
	defer cancel()

	conn, err := e.pool.Acquire(acquireCtx)
	if err == nil {
		return conn, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if errors.Is(acquireCtx.Err(), context.DeadlineExceeded) && e.saturated() {
		return nil, apperrors.NewStoreError(apperrors.StorePoolExhausted, op, err)
	}
	return nil, classified(op, err)
}

// saturated reports whether every connection the pool may open is in use
func (e *Executor) saturated() bool {
	stat := e.pool.Stat()
	return stat.AcquiredConns()+stat.ConstructingConns() >= stat.MaxConns()
}

func (e *Executor) statementContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opts.StatementTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.opts.StatementTimeout)
}

// Ping checks that a connection can be acquired and used
func (e *Executor) Ping(ctx context.Context) error {
	return e.pool.Ping(ctx)
}

func classified(op string, err error) error {
	switch Classify(err) {
	case ClassTransient:
		return apperrors.NewStoreError(apperrors.StoreTransient, op, err)
	default:
		// Missing tables stay unknown here; the tenant layer inspects the
		// wrapped driver error to decide whether to provision.
		return apperrors.NewStoreError(apperrors.StoreUnknown, op, err)
	}
}

// retryable decides whether a classified error may be attempted again.
// Writes whose outcome is unknown are surfaced instead of resent.
func retryable(op string, err error) bool {
	if !apperrors.IsTransient(err) {
		return false
	}
	if op == opExecute || op == opExecuteReturning {
		return safeToResend(err)
	}
	return true
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsTransient(err):
		return "transient"
	case apperrors.IsPoolExhausted(err):
		return "pool_exhausted"
	case IsMissingTable(err):
		return "missing_table"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
