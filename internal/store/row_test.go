package store

import (
	"testing"
	"time"

	"tenant-admin-backend/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowInt64(t *testing.T) {
	row := Row{"a": int64(7), "b": int32(3), "c": nil, "d": "x"}

	v, err := row.Int64("a")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = row.Int64("b")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	_, err = row.Int64("c")
	assert.Error(t, err)
	_, err = row.Int64("d")
	assert.Error(t, err)
	_, err = row.Int64("missing")
	assert.Error(t, err)
}

func TestDecodeRowsIntoTeamMembers(t *testing.T) {
	now := time.Now().UTC()
	rows := []Row{
		{"id": int64(1), "name": "Ana", "email": "ana@example.com", "phone": "555", "role": "technician", "created_at": now, "updated_at": now},
		{"id": int64(2), "name": "Bo", "email": "bo@example.com", "phone": "556", "role": "manager", "created_at": now, "updated_at": now},
	}

	members, err := DecodeRows[models.TeamMember](rows)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Ana", members[0].Name)
	assert.Equal(t, models.TeamRoleManager, members[1].Role)
	assert.Equal(t, now, members[1].CreatedAt)
}

func TestDecodeRowNullableColumns(t *testing.T) {
	deletedAt := time.Now().UTC()
	row := Row{"id": int64(9), "customer_name": "Cy", "estimated_cost": 120.5, "status": "pending", "is_deleted": true, "deleted_at": deletedAt}

	var ticket models.RepairTicket
	require.NoError(t, DecodeRow(row, &ticket))
	assert.Equal(t, int64(9), ticket.ID)
	assert.Equal(t, 120.5, ticket.EstimatedCost)
	assert.True(t, ticket.IsDeleted)
	require.NotNil(t, ticket.DeletedAt)
	assert.Equal(t, deletedAt, *ticket.DeletedAt)
}

func TestDecodeRowsEmpty(t *testing.T) {
	out, err := DecodeRows[models.TeamMember](nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
