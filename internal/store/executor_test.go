package store

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool returns a lazily connecting pool aimed at addr
func newTestPool(t *testing.T, addr string, maxConns int32) *pgxpool.Pool {
	t.Helper()

	cfg, err := pgxpool.ParseConfig(fmt.Sprintf("postgres://tester:secret@%s/tenants?sslmode=disable", addr))
	require.NoError(t, err)
	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	return pool
}

// closedAddr returns a loopback address nothing listens on
func closedAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// silentServer accepts connections and never answers the startup message
type silentServer struct {
	ln    net.Listener
	mu    sync.Mutex
	conns []net.Conn
}

func newSilentServer(t *testing.T) *silentServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &silentServer{ln: ln}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.conns = append(s.conns, conn)
			s.mu.Unlock()
		}
	}()
	return s
}

func (s *silentServer) Close() {
	_ = s.ln.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.conns {
		_ = conn.Close()
	}
}

func TestExecutorRetriesTransientFailuresThenGivesUp(t *testing.T) {
	pool := newTestPool(t, closedAddr(t), 2)
	defer pool.Close()

	m := metrics.New()
	exec := NewExecutor(pool, Options{
		AcquireTimeout:  2 * time.Second,
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}, m)

	_, err := exec.FetchMany(context.Background(), "SELECT 1")

	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
	assert.False(t, apperrors.IsPoolExhausted(err))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StoreRetries.WithLabelValues("transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues(opFetchMany, "transient")))
}

func TestExecutorSingleAttemptDoesNotRetry(t *testing.T) {
	pool := newTestPool(t, closedAddr(t), 2)
	defer pool.Close()

	m := metrics.New()
	exec := NewExecutor(pool, Options{MaxAttempts: 1, InitialInterval: time.Millisecond}, m)

	_, err := exec.FetchOne(context.Background(), "SELECT 1")

	assert.True(t, apperrors.IsTransient(err))
	assert.Zero(t, testutil.ToFloat64(m.StoreRetries.WithLabelValues("transient")))
}

func TestExecutorReportsPoolExhausted(t *testing.T) {
	server := newSilentServer(t)
	pool := newTestPool(t, server.ln.Addr().String(), 1)
	defer pool.Close()
	defer server.Close()

	// Occupy the only connection slot with a connect that never completes.
	holdCtx, release := context.WithCancel(context.Background())
	defer release()
	go func() {
		conn, err := pool.Acquire(holdCtx)
		if err == nil {
			conn.Release()
		}
	}()
	require.Eventually(t, func() bool {
		return pool.Stat().ConstructingConns() == 1
	}, 2*time.Second, 5*time.Millisecond)

	m := metrics.New()
	exec := NewExecutor(pool, Options{
		AcquireTimeout:  100 * time.Millisecond,
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
	}, m)

	_, err := exec.FetchOne(context.Background(), "SELECT 1")

	require.Error(t, err)
	assert.True(t, apperrors.IsPoolExhausted(err))
	assert.False(t, apperrors.IsTransient(err))
	assert.Zero(t, testutil.ToFloat64(m.StoreRetries.WithLabelValues("transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperations.WithLabelValues(opFetchOne, "pool_exhausted")))
}

func TestExecutorHonoursCallerCancellation(t *testing.T) {
	pool := newTestPool(t, closedAddr(t), 2)
	defer pool.Close()

	exec := NewExecutor(pool, Options{MaxAttempts: 5, InitialInterval: time.Second}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := exec.Execute(ctx, "SELECT 1")

	require.Error(t, err)
	assert.False(t, apperrors.IsPoolExhausted(err))
}
