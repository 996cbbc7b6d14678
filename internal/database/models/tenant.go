package models

import "time"

// TicketStatus is the lifecycle state of a repair ticket
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusCompleted  TicketStatus = "completed"
	TicketStatusDelivered  TicketStatus = "delivered"
	TicketStatusCancelled  TicketStatus = "cancelled"
)

// IsValid checks if the TicketStatus is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusCompleted, TicketStatusDelivered, TicketStatusCancelled:
		return true
	}
	return false
}

// TeamRole is the job of a team member inside a tenant's shop
type TeamRole string

const (
	TeamRoleTechnician   TeamRole = "technician"
	TeamRoleManager      TeamRole = "manager"
	TeamRoleReceptionist TeamRole = "receptionist"
)

// IsValid checks if the TeamRole is valid
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleTechnician, TeamRoleManager, TeamRoleReceptionist:
		return true
	}
	return false
}

// RepairTicket is a row of a tenant's private repair tickets table.
// Tags name the columns used when decoding store rows.
type RepairTicket struct {
	ID               int64        `json:"id" db:"id"`
	CustomerName     string       `json:"customer_name" db:"customer_name"`
	CustomerPhone    string       `json:"customer_phone" db:"customer_phone"`
	CustomerEmail    string       `json:"customer_email" db:"customer_email"`
	DeviceType       string       `json:"device_type" db:"device_type"`
	DeviceBrand      string       `json:"device_brand" db:"device_brand"`
	DeviceModel      string       `json:"device_model" db:"device_model"`
	IssueDescription string       `json:"issue_description" db:"issue_description"`
	EstimatedCost    float64      `json:"estimated_cost" db:"estimated_cost"`
	Status           TicketStatus `json:"status" db:"status"`
	IsDeleted        bool         `json:"is_deleted" db:"is_deleted"`
	DeletedAt        *time.Time   `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

// TeamMember is a row of a tenant's private team members table
type TeamMember struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Role      TeamRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TenantStats counts the rows in a tenant's private tables
type TenantStats struct {
	RepairTickets int64 `json:"repair_tickets"`
	TeamMembers   int64 `json:"team_members"`
}
