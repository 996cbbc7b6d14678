package service

import (
	"context"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CreateTicketRequest represents the data needed to open a repair ticket
type CreateTicketRequest struct {
	CustomerName     string  `json:"customer_name" validate:"required,max=200"`
	CustomerPhone    string  `json:"customer_phone" validate:"max=40"`
	CustomerEmail    string  `json:"customer_email" validate:"omitempty,email,max=255"`
	DeviceType       string  `json:"device_type" validate:"max=100"`
	DeviceBrand      string  `json:"device_brand" validate:"max=100"`
	DeviceModel      string  `json:"device_model" validate:"max=100"`
	IssueDescription string  `json:"issue_description"`
	EstimatedCost    float64 `json:"estimated_cost" validate:"gte=0,lt=100000000"`
	Status           string  `json:"status" validate:"omitempty,oneof=pending in_progress completed delivered cancelled" example:"pending"`
}

// TicketListResponse is a page of repair tickets
type TicketListResponse struct {
	Tickets []models.RepairTicket `json:"tickets"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

// TicketService handles business logic for repair tickets
type TicketService struct {
	repo      repository.TicketRepositoryInterface
	validator *validator.Validate
}

// NewTicketService creates a new ticket service
func NewTicketService(repo repository.TicketRepositoryInterface, validator *validator.Validate) *TicketService {
	return &TicketService{repo: repo, validator: validator}
}

// List returns a page of tickets not in the trash
func (s *TicketService) List(ctx context.Context, tenantID string, limit, offset int) (*TicketListResponse, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	tickets, total, err := s.repo.List(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &TicketListResponse{Tickets: tickets, Total: total, Limit: limit, Offset: offset}, nil
}

// ListTrash returns a page of soft-deleted tickets
func (s *TicketService) ListTrash(ctx context.Context, tenantID string, limit, offset int) (*TicketListResponse, error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return nil, err
	}
	tickets, total, err := s.repo.ListTrash(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &TicketListResponse{Tickets: tickets, Total: total, Limit: limit, Offset: offset}, nil
}

// Create opens a ticket. Status defaults to pending.
func (s *TicketService) Create(ctx context.Context, tenantID string, req *CreateTicketRequest) (*models.RepairTicket, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("ticket", err)
	}

	status := models.TicketStatusPending
	if req.Status != "" {
		status = models.TicketStatus(req.Status)
	}

	ticket := &models.RepairTicket{
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		DeviceType:       req.DeviceType,
		DeviceBrand:      req.DeviceBrand,
		DeviceModel:      req.DeviceModel,
		IssueDescription: req.IssueDescription,
		EstimatedCost:    req.EstimatedCost,
		Status:           status,
	}
	if err := s.repo.Create(ctx, tenantID, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete moves a ticket to the trash
func (s *TicketService) Delete(ctx context.Context, tenantID string, id int64) error {
	if id <= 0 {
		return apperrors.ErrTicketNotFound
	}
	return s.repo.SoftDelete(ctx, tenantID, id)
}

// Restore takes a ticket out of the trash
func (s *TicketService) Restore(ctx context.Context, tenantID string, id int64) error {
	if id <= 0 {
		return apperrors.ErrTicketNotFound
	}
	return s.repo.Restore(ctx, tenantID, id)
}

func normalizePage(limit, offset int) (int, int, error) {
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 || limit > maxPageLimit || offset < 0 {
		return 0, 0, apperrors.ErrInvalidPaginationParams
	}
	return limit, offset, nil
}
