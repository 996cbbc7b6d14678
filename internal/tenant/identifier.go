// Package tenant maps tenant identifiers to their private tables and
// provisions those tables on demand.
package tenant

import (
	"regexp"

	apperrors "tenant-admin-backend/internal/errors"

	"github.com/jackc/pgx/v5"
)

// maxIdentifierLength is PostgreSQL's NAMEDATALEN-1. Longer names are
// truncated by the server, which could alias two tenants onto one table.
const maxIdentifierLength = 63

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Identifier is a table or column name that passed the allow-list and is
// safe to embed in statement text.
type Identifier struct {
	name string
}

// QuoteIdentifier validates name and returns it as an Identifier. Names are
// rejected, never escaped.
func QuoteIdentifier(name string) (Identifier, error) {
	if name == "" {
		return Identifier{}, apperrors.NewInvalidIdentifierError(name, "identifier is empty")
	}
	if len(name) > maxIdentifierLength {
		return Identifier{}, apperrors.NewInvalidIdentifierError(name, "identifier exceeds 63 bytes")
	}
	if !identifierPattern.MatchString(name) {
		return Identifier{}, apperrors.NewInvalidIdentifierError(name, "identifier may only contain letters, digits and underscores")
	}
	return Identifier{name: name}, nil
}

// Name returns the raw, unquoted name
func (i Identifier) Name() string {
	return i.name
}

// String returns the double-quoted form for use in SQL text
func (i Identifier) String() string {
	return pgx.Identifier{i.name}.Sanitize()
}

// IsZero reports whether the identifier was never set
func (i Identifier) IsZero() bool {
	return i.name == ""
}
