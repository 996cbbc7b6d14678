package service

import (
	"context"

	"tenant-admin-backend/internal/database/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AccessServiceInterface defines the interface for tenant access decisions
type AccessServiceInterface interface {
	Resolve(ctx context.Context, userID string) (*Identity, error)
	Authorize(ctx context.Context, actingUserID, targetTenantID string) (bool, error)
	VerifyTenantAccess(ctx context.Context, userID, tenantID string) bool
	IsSuperAdmin(ctx context.Context, userID string) bool
	CanAccessTenantData(ctx context.Context, userID, targetTenantID string) bool
}

// TenantServiceInterface defines the interface for tenant listing and stats
type TenantServiceInterface interface {
	ListTenants(ctx context.Context) ([]TenantSummary, error)
	Stats(ctx context.Context, tenantID string) (*models.TenantStats, error)
}

// TicketServiceInterface defines the interface for repair ticket operations
type TicketServiceInterface interface {
	List(ctx context.Context, tenantID string, limit, offset int) (*TicketListResponse, error)
	ListTrash(ctx context.Context, tenantID string, limit, offset int) (*TicketListResponse, error)
	Create(ctx context.Context, tenantID string, req *CreateTicketRequest) (*models.RepairTicket, error)
	Delete(ctx context.Context, tenantID string, id int64) error
	Restore(ctx context.Context, tenantID string, id int64) error
}

// TeamServiceInterface defines the interface for team member operations
type TeamServiceInterface interface {
	List(ctx context.Context, tenantID string) ([]models.TeamMember, error)
	Create(ctx context.Context, tenantID string, req *CreateTeamMemberRequest) (*models.TeamMember, error)
}
