package repository

import (
	"context"

	"tenant-admin-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for identity store operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetOwnerByTenantID(ctx context.Context, tenantID string) (*models.User, error)
	ListTenantOwners(ctx context.Context) ([]models.User, error)
}

// TicketRepositoryInterface defines the interface for a tenant's repair tickets
type TicketRepositoryInterface interface {
	Count(ctx context.Context, tenantID string) (int64, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]models.RepairTicket, int64, error)
	ListTrash(ctx context.Context, tenantID string, limit, offset int) ([]models.RepairTicket, int64, error)
	Create(ctx context.Context, tenantID string, ticket *models.RepairTicket) error
	SoftDelete(ctx context.Context, tenantID string, id int64) error
	Restore(ctx context.Context, tenantID string, id int64) error
}

// TeamRepositoryInterface defines the interface for a tenant's team members
type TeamRepositoryInterface interface {
	Count(ctx context.Context, tenantID string) (int64, error)
	List(ctx context.Context, tenantID string) ([]models.TeamMember, error)
	Create(ctx context.Context, tenantID string, member *models.TeamMember) error
}

// TenantCatalogInterface lists tenants that already own tables
type TenantCatalogInterface interface {
	DiscoverTenantIDs(ctx context.Context) ([]string, error)
}
