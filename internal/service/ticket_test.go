package service_test

import (
	"context"
	"testing"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/mocks"
	"tenant-admin-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// TicketServiceTestSuite defines the test suite for TicketService and TeamService
type TicketServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockTickets   *mocks.MockTicketRepositoryInterface
	mockTeam      *mocks.MockTeamRepositoryInterface
	ticketService *service.TicketService
	teamService   *service.TeamService
	ctx           context.Context
}

func (suite *TicketServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTickets = mocks.NewMockTicketRepositoryInterface(suite.ctrl)
	suite.mockTeam = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	v := validator.New()
	suite.ticketService = service.NewTicketService(suite.mockTickets, v)
	suite.teamService = service.NewTeamService(suite.mockTeam, v)
	suite.ctx = context.Background()
}

func (suite *TicketServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TicketServiceTestSuite) TestCreateDefaultsToPending() {
	req := &service.CreateTicketRequest{CustomerName: "Jane", DeviceType: "laptop", EstimatedCost: 120}

	suite.mockTickets.EXPECT().
		Create(gomock.Any(), tenantA, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ticket *models.RepairTicket) error {
			ticket.ID = 7
			return nil
		})

	ticket, err := suite.ticketService.Create(suite.ctx, tenantA, req)
	suite.Require().NoError(err)
	suite.Equal(int64(7), ticket.ID)
	suite.Equal(models.TicketStatusPending, ticket.Status)
	suite.Equal(120.0, ticket.EstimatedCost)
}

func (suite *TicketServiceTestSuite) TestCreateValidation() {
	tests := []struct {
		name  string
		req   *service.CreateTicketRequest
		field string
	}{
		{name: "missing customer", req: &service.CreateTicketRequest{}, field: "customer_name"},
		{name: "bad status", req: &service.CreateTicketRequest{CustomerName: "Jane", Status: "lost"}, field: "status"},
		{name: "negative cost", req: &service.CreateTicketRequest{CustomerName: "Jane", EstimatedCost: -1}, field: "estimated_cost"},
		{name: "bad email", req: &service.CreateTicketRequest{CustomerName: "Jane", CustomerEmail: "nope"}, field: "customer_email"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.ticketService.Create(suite.ctx, tenantA, tt.req)
			suite.Require().Error(err)
			suite.True(apperrors.IsValidation(err))
			var verr *apperrors.ValidationError
			suite.Require().ErrorAs(err, &verr)
			suite.Equal(tt.field, verr.Field)
		})
	}
}

func (suite *TicketServiceTestSuite) TestListPagination() {
	suite.mockTickets.EXPECT().List(gomock.Any(), tenantA, 20, 0).Return([]models.RepairTicket{{ID: 1}}, int64(1), nil)

	resp, err := suite.ticketService.List(suite.ctx, tenantA, 0, 0)
	suite.Require().NoError(err)
	suite.Equal(20, resp.Limit)
	suite.Equal(int64(1), resp.Total)
	suite.Len(resp.Tickets, 1)

	_, err = suite.ticketService.List(suite.ctx, tenantA, 500, 0)
	suite.ErrorIs(err, apperrors.ErrInvalidPaginationParams)
	_, err = suite.ticketService.ListTrash(suite.ctx, tenantA, 10, -1)
	suite.ErrorIs(err, apperrors.ErrInvalidPaginationParams)
}

func (suite *TicketServiceTestSuite) TestDeleteAndRestore() {
	suite.mockTickets.EXPECT().SoftDelete(gomock.Any(), tenantA, int64(3)).Return(nil)
	suite.mockTickets.EXPECT().Restore(gomock.Any(), tenantA, int64(3)).Return(apperrors.ErrTicketNotFound)

	suite.NoError(suite.ticketService.Delete(suite.ctx, tenantA, 3))
	suite.ErrorIs(suite.ticketService.Restore(suite.ctx, tenantA, 3), apperrors.ErrTicketNotFound)
	suite.ErrorIs(suite.ticketService.Delete(suite.ctx, tenantA, 0), apperrors.ErrTicketNotFound)
}

func (suite *TicketServiceTestSuite) TestTeamCreateDefaultsToTechnician() {
	suite.mockTeam.EXPECT().Create(gomock.Any(), tenantA, gomock.Any()).Return(nil)

	member, err := suite.teamService.Create(suite.ctx, tenantA, &service.CreateTeamMemberRequest{Name: "Tom"})
	suite.Require().NoError(err)
	suite.Equal(models.TeamRoleTechnician, member.Role)

	_, err = suite.teamService.Create(suite.ctx, tenantA, &service.CreateTeamMemberRequest{Name: "Tom", Role: "boss"})
	suite.True(apperrors.IsValidation(err))
}

func (suite *TicketServiceTestSuite) TestTeamListNeverNil() {
	suite.mockTeam.EXPECT().List(gomock.Any(), tenantA).Return(nil, nil)

	members, err := suite.teamService.List(suite.ctx, tenantA)
	suite.Require().NoError(err)
	suite.NotNil(members)
	suite.Empty(members)
}

func TestTicketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}
