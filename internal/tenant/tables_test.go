package tenant

import (
	"regexp"
	"strings"
	"testing"

	apperrors "tenant-admin-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "tenant_abc_repair_tickets"},
		{name: "mixed case and digits", input: "Tenant_01"},
		{name: "empty", input: "", wantErr: true},
		{name: "backtick", input: "users`", wantErr: true},
		{name: "double quote", input: `users"`, wantErr: true},
		{name: "semicolon", input: "a;b", wantErr: true},
		{name: "whitespace", input: "a b", wantErr: true},
		{name: "dash", input: "a-b", wantErr: true},
		{name: "unicode", input: "tenänt", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 64), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := QuoteIdentifier(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsInvalidIdentifier(err))
				assert.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, id.Name())
			assert.Equal(t, `"`+tt.input+`"`, id.String())
		})
	}
}

func TestTablesForEndToEndNaming(t *testing.T) {
	tables, err := TablesFor("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)

	assert.Equal(t, "tenant_11111111_1111_1111_1111_111111111111_repair_tickets", tables.Tickets.Name())
	assert.Equal(t, "tenant_11111111_1111_1111_1111_111111111111_team_members", tables.Team.Name())
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", tables.TenantID)
}

func TestTablesForIsDeterministic(t *testing.T) {
	id := uuid.NewString()

	first, err := TablesFor(id)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := TablesFor(id)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTablesForPatternConformance(t *testing.T) {
	ticketsPattern := regexp.MustCompile(`^tenant_[0-9a-f_]+_repair_tickets$`)
	teamPattern := regexp.MustCompile(`^tenant_[0-9a-f_]+_team_members$`)

	for i := 0; i < 100; i++ {
		tables, err := TablesFor(uuid.NewString())
		require.NoError(t, err)
		assert.Regexp(t, ticketsPattern, tables.Tickets.Name())
		assert.Regexp(t, teamPattern, tables.Team.Name())
	}
}

func TestTablesForRejectsMalformedIDs(t *testing.T) {
	inputs := []string{
		"",
		"a'; DROP TABLE users;--",
		"11111111-1111-1111-1111-11111111111",
		"11111111111111111111111111111111",
		"{11111111-1111-1111-1111-111111111111}",
		"urn:uuid:11111111-1111-1111-1111-111111111111",
		"zzzzzzzz-1111-1111-1111-111111111111",
		"11111111-1111-1111-1111-111111111111;",
		" 11111111-1111-1111-1111-111111111111",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := TablesFor(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTenantID)
		})
	}
}

func TestTenantIDFromTable(t *testing.T) {
	id := uuid.NewString()
	tables, err := TablesFor(id)
	require.NoError(t, err)

	got, ok := TenantIDFromTable(tables.Tickets.Name())
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = TenantIDFromTable(tables.Team.Name())
	assert.False(t, ok)

	_, ok = TenantIDFromTable("tenant_not_a_uuid_repair_tickets")
	assert.False(t, ok)

	_, ok = TenantIDFromTable("users")
	assert.False(t, ok)
}

func TestCreateStatementsUseQuotedNames(t *testing.T) {
	tables, err := TablesFor("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)

	stmts := tables.CreateStatements()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], `CREATE TABLE IF NOT EXISTS "tenant_11111111_1111_1111_1111_111111111111_repair_tickets"`)
	assert.Contains(t, stmts[0], "is_deleted BOOLEAN")
	assert.Contains(t, stmts[1], `CREATE TABLE IF NOT EXISTS "tenant_11111111_1111_1111_1111_111111111111_team_members"`)
}
