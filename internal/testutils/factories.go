package testutils

import (
	"fmt"
	"time"

	"tenant-admin-backend/internal/database/models"

	"github.com/google/uuid"
)

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a member owning a fresh tenant
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	tenantID := uuid.NewString()
	return &models.User{
		ID:            id,
		TenantID:      &tenantID,
		Role:          models.RoleMember,
		Email:         fmt.Sprintf("owner-%s@test.com", id.String()[:8]),
		Name:          "Shop Owner",
		ShopName:      "Fix It Fast",
		ContactNumber: "+1-555-0100",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// WithTenant creates a user assigned to tenantID
func (f *UserFactory) WithTenant(tenantID string) *models.User {
	u := f.Create()
	u.TenantID = &tenantID
	return u
}

// WithRole creates a user with role
func (f *UserFactory) WithRole(role models.Role) *models.User {
	u := f.Create()
	u.Role = role
	return u
}

// SuperAdmin creates a super-admin without tenant data
func (f *UserFactory) SuperAdmin() *models.User {
	u := f.Create()
	u.Role = models.RoleSuperAdmin
	u.TenantID = nil
	return u
}

// TicketFactory provides methods to create test RepairTicket data
type TicketFactory struct{}

// NewTicketFactory creates a new TicketFactory
func NewTicketFactory() *TicketFactory {
	return &TicketFactory{}
}

// Create creates a pending ticket
func (f *TicketFactory) Create() *models.RepairTicket {
	return &models.RepairTicket{
		CustomerName:     "Jane Customer",
		CustomerPhone:    "+1-555-0199",
		CustomerEmail:    "jane@customer.test",
		DeviceType:       "phone",
		DeviceBrand:      "Acme",
		DeviceModel:      "A1",
		IssueDescription: "Cracked screen",
		EstimatedCost:    89.5,
		Status:           models.TicketStatusPending,
	}
}

// WithStatus creates a ticket with status
func (f *TicketFactory) WithStatus(status models.TicketStatus) *models.RepairTicket {
	t := f.Create()
	t.Status = status
	return t
}

// TeamMemberFactory provides methods to create test TeamMember data
type TeamMemberFactory struct{}

// NewTeamMemberFactory creates a new TeamMemberFactory
func NewTeamMemberFactory() *TeamMemberFactory {
	return &TeamMemberFactory{}
}

// Create creates a technician
func (f *TeamMemberFactory) Create() *models.TeamMember {
	return &models.TeamMember{
		Name:  "Tom Tech",
		Email: "tom@shop.test",
		Phone: "+1-555-0142",
		Role:  models.TeamRoleTechnician,
	}
}

// FactorySet groups all factories for convenience
type FactorySet struct {
	User       *UserFactory
	Ticket     *TicketFactory
	TeamMember *TeamMemberFactory
}

// NewFactorySet creates a new set of all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:       NewUserFactory(),
		Ticket:     NewTicketFactory(),
		TeamMember: NewTeamMemberFactory(),
	}
}
