package service

import (
	"context"
	"sort"

	"tenant-admin-backend/internal/database/models"
	"tenant-admin-backend/internal/logger"
	"tenant-admin-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultListConcurrency = 8
	tenantStatsFailed      = "tenant statistics are unavailable"
)

// OwnerResponse describes the user owning a tenant
type OwnerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ShopName      string `json:"shop_name"`
	ContactNumber string `json:"contact_number"`
}

// TenantSummary is one entry of the aggregate tenant listing. When the
// tenant's stats could not be read, Stats is zero and Error is set.
type TenantSummary struct {
	TenantID   string             `json:"tenant_id"`
	OwningUser *OwnerResponse     `json:"owning_user"`
	Stats      models.TenantStats `json:"stats"`
	Error      bool               `json:"error,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// TenantListResponse is the swagger schema for GET /admin/tenants
type TenantListResponse struct {
	Tenants []TenantSummary `json:"tenants"`
	Total   int             `json:"total"`
}

// TenantService builds per-tenant statistics and the super-admin listing
type TenantService struct {
	users       repository.UserRepositoryInterface
	tickets     repository.TicketRepositoryInterface
	team        repository.TeamRepositoryInterface
	catalog     repository.TenantCatalogInterface
	concurrency int
}

// NewTenantService creates a new tenant service. concurrency bounds how many
// tenants are counted at once.
func NewTenantService(
	users repository.UserRepositoryInterface,
	tickets repository.TicketRepositoryInterface,
	team repository.TeamRepositoryInterface,
	catalog repository.TenantCatalogInterface,
	concurrency int,
) *TenantService {
	if concurrency <= 0 {
		concurrency = defaultListConcurrency
	}
	return &TenantService{
		users:       users,
		tickets:     tickets,
		team:        team,
		catalog:     catalog,
		concurrency: concurrency,
	}
}

// Stats counts the rows in a tenant's tables, provisioning them if needed
func (s *TenantService) Stats(ctx context.Context, tenantID string) (*models.TenantStats, error) {
	tickets, err := s.tickets.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	members, err := s.team.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &models.TenantStats{RepairTickets: tickets, TeamMembers: members}, nil
}

// ListTenants returns every known tenant with its owner and stats. Tenants
// come from the users table and from existing tenant tables. A failure on
// one tenant is recorded on its entry and does not fail the listing.
func (s *TenantService) ListTenants(ctx context.Context) ([]TenantSummary, error) {
	log := logger.WithContext(ctx)

	owners, err := s.users.ListTenantOwners(ctx)
	if err != nil {
		return nil, err
	}

	byTenant := make(map[string]*OwnerResponse, len(owners))
	for i := range owners {
		byTenant[*owners[i].TenantID] = toOwnerResponse(&owners[i])
	}

	discovered, err := s.catalog.DiscoverTenantIDs(ctx)
	if err != nil {
		log.WithError(err).Warn("tenant table discovery failed, listing owners only")
	}
	for _, id := range discovered {
		if _, ok := byTenant[id]; !ok {
			byTenant[id] = nil
		}
	}

	ids := make([]string, 0, len(byTenant))
	for id := range byTenant {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]TenantSummary, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		i, id := i, id
		results[i] = TenantSummary{TenantID: id, OwningUser: byTenant[id]}
		g.Go(func() error {
			stats, err := s.Stats(gctx, id)
			if err != nil {
				log.WithField("tenant", id).WithError(err).Error("failed to read tenant stats")
				results[i].Error = true
				results[i].Message = tenantStatsFailed
				return nil
			}
			results[i].Stats = *stats
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func toOwnerResponse(u *models.User) *OwnerResponse {
	return &OwnerResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		ShopName:      u.ShopName,
		ContactNumber: u.ContactNumber,
	}
}
