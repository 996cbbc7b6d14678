package service

import (
	"context"

	"tenant-admin-backend/internal/database/models"
	"tenant-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// CreateTeamMemberRequest represents the data needed to add a team member
type CreateTeamMemberRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"max=40"`
	Role  string `json:"role" validate:"omitempty,oneof=technician manager receptionist" example:"technician"`
}

// TeamService handles business logic for a tenant's team
type TeamService struct {
	repo      repository.TeamRepositoryInterface
	validator *validator.Validate
}

// NewTeamService creates a new team service
func NewTeamService(repo repository.TeamRepositoryInterface, validator *validator.Validate) *TeamService {
	return &TeamService{repo: repo, validator: validator}
}

// List returns all team members
func (s *TeamService) List(ctx context.Context, tenantID string) ([]models.TeamMember, error) {
	members, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.TeamMember{}
	}
	return members, nil
}

// Create adds a team member. Role defaults to technician.
func (s *TeamService) Create(ctx context.Context, tenantID string, req *CreateTeamMemberRequest) (*models.TeamMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError("team_member", err)
	}

	role := models.TeamRoleTechnician
	if req.Role != "" {
		role = models.TeamRole(req.Role)
	}

	member := &models.TeamMember{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Role:  role,
	}
	if err := s.repo.Create(ctx, tenantID, member); err != nil {
		return nil, err
	}
	return member, nil
}
