// Package store executes parameterized statements against the shared
// connection pool and classifies the failures it sees.
package store

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Class is the failure category of a store error
type Class int

const (
	ClassUnknown Class = iota
	ClassTransient
	ClassMissingTable
)

func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassMissingTable:
		return "missing_table"
	default:
		return "unknown"
	}
}

const sqlStateUndefinedTable = "42P01"

// transientSQLStates are server-reported conditions after which the
// statement did not take effect and may be sent again.
var transientSQLStates = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"53300": true, // too_many_connections
	"57P01": true, // admin_shutdown
	"57P02": true, // crash_shutdown
	"57P03": true, // cannot_connect_now
}

// Classify sorts a driver error into a Class. It does not look at the
// caller's context; callers must check cancellation first.
func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlStateUndefinedTable:
			return ClassMissingTable
		case strings.HasPrefix(pgErr.Code, "08"):
			return ClassTransient
		case transientSQLStates[pgErr.Code]:
			return ClassTransient
		}
		return ClassUnknown
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return ClassTransient
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return ClassTransient
	}
	if pgconn.SafeToRetry(err) {
		return ClassTransient
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return ClassTransient
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassTransient
	}

	return ClassUnknown
}

// IsMissingTable reports whether err says the addressed table does not exist
func IsMissingTable(err error) bool {
	return err != nil && Classify(err) == ClassMissingTable
}

// safeToResend reports whether a failed write can be sent again without
// risking a double apply: either the driver knows nothing reached the
// server, or the server rejected the statement.
func safeToResend(err error) bool {
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}
