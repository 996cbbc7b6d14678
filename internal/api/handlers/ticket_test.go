package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"tenant-admin-backend/internal/api/handlers"
	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/mocks"
	"tenant-admin-backend/internal/service"
	"tenant-admin-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testTenantID = "11111111-1111-1111-1111-111111111111"

// TicketHandlerTestSuite defines the test suite for TicketHandler
type TicketHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTicketServiceInterface
	handler     *handlers.TicketHandler
	httpSuite   *testutils.HTTPTestSuite
}

func (suite *TicketHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTicketServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTicketHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	tenants := suite.httpSuite.Router.Group("/api/v1/tenants/:tenantId")
	{
		tenants.GET("/tickets", suite.handler.ListTickets)
		tenants.POST("/tickets", suite.handler.CreateTicket)
		tenants.GET("/tickets/trash", suite.handler.ListTrash)
		tenants.DELETE("/tickets/:id", suite.handler.DeleteTicket)
		tenants.POST("/tickets/:id/restore", suite.handler.RestoreTicket)
	}
}

func (suite *TicketHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TicketHandlerTestSuite) url(path string) string {
	return "/api/v1/tenants/" + testTenantID + path
}

func (suite *TicketHandlerTestSuite) TestListTickets() {
	suite.T().Run("Defaults are left to the service", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 0, 0).
			Return(&service.TicketListResponse{
				Tickets: []models.RepairTicket{{ID: 1, CustomerName: "Ada"}},
				Total:   1,
				Limit:   20,
			}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets"), nil)

		var response service.TicketListResponse
		testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
		assert.Equal(t, int64(1), response.Total)
		assert.Equal(t, 20, response.Limit)
		assert.Len(t, response.Tickets, 1)
	})

	suite.T().Run("Explicit page", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 5, 10).
			Return(&service.TicketListResponse{Tickets: []models.RepairTicket{}, Limit: 5, Offset: 10}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets?limit=5&offset=10"), nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	suite.T().Run("Non-numeric limit", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets?limit=ten"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "pagination")
	})

	suite.T().Run("Service rejects page", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, -1, 0).
			Return(nil, apperrors.ErrInvalidPaginationParams)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets?limit=-1"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "pagination")
	})
}

func (suite *TicketHandlerTestSuite) TestListTrash() {
	suite.mockService.EXPECT().
		ListTrash(gomock.Any(), testTenantID, 0, 0).
		Return(&service.TicketListResponse{Tickets: []models.RepairTicket{}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets/trash"), nil)
	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

func (suite *TicketHandlerTestSuite) TestCreateTicket() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().
			Create(gomock.Any(), testTenantID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req *service.CreateTicketRequest) (*models.RepairTicket, error) {
				assert.Equal(t, "Ada", req.CustomerName)
				assert.Equal(t, 89.5, req.EstimatedCost)
				return &models.RepairTicket{
					ID:            7,
					CustomerName:  req.CustomerName,
					EstimatedCost: req.EstimatedCost,
					Status:        models.TicketStatusPending,
				}, nil
			})

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, suite.url("/tickets"), map[string]interface{}{
			"customer_name":  "Ada",
			"estimated_cost": 89.5,
		})

		var ticket models.RepairTicket
		testutils.AssertJSONResponse(t, recorder, http.StatusCreated, &ticket)
		assert.Equal(t, int64(7), ticket.ID)
		assert.Equal(t, models.TicketStatusPending, ticket.Status)
	})

	suite.T().Run("Malformed body", func(t *testing.T) {
		recorder := suite.httpSuite.MakeRequest(http.MethodPost, suite.url("/tickets"), "not an object")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	suite.T().Run("Validation error names the field", func(t *testing.T) {
		suite.mockService.EXPECT().
			Create(gomock.Any(), testTenantID, gomock.Any()).
			Return(nil, apperrors.NewValidationError("customer_name", `failed "required" rule`))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, suite.url("/tickets"), map[string]interface{}{})
		testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "customer_name")
	})
}

func (suite *TicketHandlerTestSuite) TestDeleteTicket() {
	suite.T().Run("Success", func(t *testing.T) {
		suite.mockService.EXPECT().Delete(gomock.Any(), testTenantID, int64(42)).Return(nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, suite.url("/tickets/42"), nil)
		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	suite.T().Run("Not found", func(t *testing.T) {
		suite.mockService.EXPECT().Delete(gomock.Any(), testTenantID, int64(43)).Return(apperrors.ErrTicketNotFound)

		recorder := suite.httpSuite.MakeRequest(http.MethodDelete, suite.url("/tickets/43"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusNotFound, "repair ticket not found")
	})

	for _, id := range []string{"abc", "0", "-3", "9223372036854775808"} {
		suite.T().Run("Invalid id "+id, func(t *testing.T) {
			recorder := suite.httpSuite.MakeRequest(http.MethodDelete, suite.url("/tickets/"+id), nil)
			testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "id")
		})
	}
}

func (suite *TicketHandlerTestSuite) TestRestoreTicket() {
	suite.mockService.EXPECT().Restore(gomock.Any(), testTenantID, int64(42)).Return(nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, suite.url("/tickets/42/restore"), nil)
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

func (suite *TicketHandlerTestSuite) TestStoreErrorsAreNotLeaked() {
	detail := errors.New(`relation "tenant_x_repair_tickets" password=hunter2`)

	suite.T().Run("Pool exhausted", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 0, 0).
			Return(nil, apperrors.NewStoreError(apperrors.StorePoolExhausted, "fetch_many", detail))

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusServiceUnavailable, "service busy")
		assert.Empty(t, recorder.Header().Get("Retry-After"))
		assert.NotContains(t, recorder.Body.String(), "hunter2")
	})

	suite.T().Run("Transient", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 0, 0).
			Return(nil, apperrors.NewStoreError(apperrors.StoreTransient, "fetch_many", detail))

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets"), nil)
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, "2", recorder.Header().Get("Retry-After"))
		assert.NotContains(t, recorder.Body.String(), "tenant_x")
	})

	suite.T().Run("Provisioning failed", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 0, 0).
			Return(nil, apperrors.NewStoreError(apperrors.StoreProvisioningFailed, "provision", detail))

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusInternalServerError, "internal server error")
		assert.NotContains(t, recorder.Body.String(), "hunter2")
	})

	suite.T().Run("Unknown", func(t *testing.T) {
		suite.mockService.EXPECT().
			List(gomock.Any(), testTenantID, 0, 0).
			Return(nil, detail)

		recorder := suite.httpSuite.MakeRequest(http.MethodGet, suite.url("/tickets"), nil)
		testutils.AssertErrorResponse(t, recorder, http.StatusInternalServerError, "internal server error")
		assert.NotContains(t, recorder.Body.String(), "hunter2")
	})
}

func TestTicketHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TicketHandlerTestSuite))
}
