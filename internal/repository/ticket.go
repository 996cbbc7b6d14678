package repository

import (
	"context"
	"fmt"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/store"
)

// ticketColumns is the select list for repair tickets. NUMERIC is cast so
// the driver yields a float64.
const ticketColumns = `id, customer_name, customer_phone, customer_email, device_type, device_brand,
	device_model, issue_description, estimated_cost::float8 AS estimated_cost, status,
	is_deleted, deleted_at, created_at, updated_at`

// TicketRepository handles a tenant's repair tickets table
type TicketRepository struct {
	store *store.TenantStore
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(s *store.TenantStore) *TicketRepository {
	return &TicketRepository{store: s}
}

// Count returns the number of tickets not in the trash
func (r *TicketRepository) Count(ctx context.Context, tenantID string) (int64, error) {
	return r.count(ctx, tenantID, false)
}

// List retrieves tickets not in the trash, newest first
func (r *TicketRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]models.RepairTicket, int64, error) {
	return r.list(ctx, tenantID, false, limit, offset)
}

// ListTrash retrieves soft-deleted tickets, most recently deleted first
func (r *TicketRepository) ListTrash(ctx context.Context, tenantID string, limit, offset int) ([]models.RepairTicket, int64, error) {
	return r.list(ctx, tenantID, true, limit, offset)
}

// Create inserts ticket and fills in its generated columns
func (r *TicketRepository) Create(ctx context.Context, tenantID string, ticket *models.RepairTicket) error {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(customer_name, customer_phone, customer_email, device_type, device_brand,
		 device_model, issue_description, estimated_cost, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, tq.Tables.Tickets, ticketColumns)

	row, err := tq.ExecuteReturning(ctx, query,
		ticket.CustomerName, ticket.CustomerPhone, ticket.CustomerEmail, ticket.DeviceType,
		ticket.DeviceBrand, ticket.DeviceModel, ticket.IssueDescription, ticket.EstimatedCost,
		string(ticket.Status))
	if err != nil {
		return err
	}
	return store.DecodeRow(row, ticket)
}

// SoftDelete moves a ticket to the trash
func (r *TicketRepository) SoftDelete(ctx context.Context, tenantID string, id int64) error {
	return r.setDeleted(ctx, tenantID, id, true)
}

// Restore takes a ticket out of the trash
func (r *TicketRepository) Restore(ctx context.Context, tenantID string, id int64) error {
	return r.setDeleted(ctx, tenantID, id, false)
}

func (r *TicketRepository) setDeleted(ctx context.Context, tenantID string, id int64, deleted bool) error {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s
		SET is_deleted = $1,
		    deleted_at = CASE WHEN $1 THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $2 AND is_deleted = $3`, tq.Tables.Tickets)

	affected, err := tq.Execute(ctx, query, deleted, id, !deleted)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTicketNotFound
	}
	return nil
}

func (r *TicketRepository) count(ctx context.Context, tenantID string, deleted bool) (int64, error) {
	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT COUNT(*) AS count FROM %s WHERE is_deleted = $1`, tq.Tables.Tickets)
	row, err := tq.FetchOne(ctx, query, deleted)
	if err != nil {
		return 0, err
	}
	return row.Int64("count")
}

func (r *TicketRepository) list(ctx context.Context, tenantID string, deleted bool, limit, offset int) ([]models.RepairTicket, int64, error) {
	total, err := r.count(ctx, tenantID, deleted)
	if err != nil {
		return nil, 0, err
	}

	tq, err := r.store.ForTenant(tenantID)
	if err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if deleted {
		order = "deleted_at DESC, id DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE is_deleted = $1 ORDER BY %s LIMIT $2 OFFSET $3`,
		ticketColumns, tq.Tables.Tickets, order)

	rows, err := tq.FetchMany(ctx, query, deleted, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	tickets, err := store.DecodeRows[models.RepairTicket](rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}
