package service_test

import (
	"context"
	"errors"
	"testing"

	"tenant-admin-backend/internal/database/models"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/mocks"
	"tenant-admin-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const (
	tenantA          = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	tenantB          = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	bootstrapAddress = "root@repairs.example"
)

func strPtr(s string) *string { return &s }

// AccessServiceTestSuite defines the test suite for AccessService
type AccessServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserRepo  *mocks.MockUserRepositoryInterface
	accessService *service.AccessService
	ctx           context.Context
}

func (suite *AccessServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.accessService = service.NewAccessService(suite.mockUserRepo, bootstrapAddress, nil)
	suite.ctx = context.Background()
}

func (suite *AccessServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *AccessServiceTestSuite) expectUser(user *models.User) {
	suite.mockUserRepo.EXPECT().
		GetByID(gomock.Any(), user.ID).
		Return(user, nil).
		AnyTimes()
}

func (suite *AccessServiceTestSuite) TestAuthorize() {
	member := &models.User{ID: uuid.New(), TenantID: strPtr(tenantA), Role: models.RoleMember, Email: "a@shop.test"}
	admin := &models.User{ID: uuid.New(), TenantID: strPtr(tenantA), Role: models.RoleAdmin, Email: "admin@shop.test"}
	super := &models.User{ID: uuid.New(), Role: models.RoleSuperAdmin, Email: "ops@repairs.example"}
	legacy := &models.User{ID: uuid.New(), TenantID: strPtr(tenantB), Role: models.RoleMember, Email: "ROOT@repairs.example"}
	upper := &models.User{ID: uuid.New(), TenantID: strPtr(tenantA), Role: models.Role("ADMIN"), Email: "u@shop.test"}
	for _, u := range []*models.User{member, admin, super, legacy, upper} {
		suite.expectUser(u)
	}

	tests := []struct {
		name   string
		user   *models.User
		target string
		want   bool
	}{
		{name: "member own tenant", user: member, target: tenantA, want: true},
		{name: "member other tenant", user: member, target: tenantB, want: false},
		{name: "admin own tenant", user: admin, target: tenantA, want: true},
		{name: "admin other tenant", user: admin, target: tenantB, want: false},
		{name: "super-admin any tenant", user: super, target: tenantB, want: true},
		{name: "bootstrap e-mail any tenant", user: legacy, target: tenantA, want: true},
		{name: "legacy upper-case role", user: upper, target: tenantA, want: true},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			allowed, err := suite.accessService.Authorize(suite.ctx, tt.user.ID.String(), tt.target)
			suite.NoError(err)
			suite.Equal(tt.want, allowed)
		})
	}
}

func (suite *AccessServiceTestSuite) TestAuthorizeRejectsMalformedTenantBeforeLookup() {
	allowed, err := suite.accessService.Authorize(suite.ctx, uuid.NewString(), "a'; DROP TABLE users;--")
	suite.False(allowed)
	suite.ErrorIs(err, apperrors.ErrInvalidTenantID)
}

func (suite *AccessServiceTestSuite) TestAuthorizeUnknownUser() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, apperrors.ErrUserNotFound)

	allowed, err := suite.accessService.Authorize(suite.ctx, id.String(), tenantA)
	suite.False(allowed)
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *AccessServiceTestSuite) TestAuthorizeMalformedUserID() {
	allowed, err := suite.accessService.Authorize(suite.ctx, "not-a-uuid", tenantA)
	suite.False(allowed)
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *AccessServiceTestSuite) TestAuthorizeUnknownRoleIsError() {
	user := &models.User{ID: uuid.New(), TenantID: strPtr(tenantA), Role: models.Role("owner")}
	suite.expectUser(user)

	allowed, err := suite.accessService.Authorize(suite.ctx, user.ID.String(), tenantA)
	suite.False(allowed)
	suite.ErrorIs(err, apperrors.ErrInvalidRole)
}

func (suite *AccessServiceTestSuite) TestMemberWithoutTenantIsDenied() {
	user := &models.User{ID: uuid.New(), Role: models.RoleMember}
	suite.expectUser(user)

	allowed, err := suite.accessService.Authorize(suite.ctx, user.ID.String(), tenantA)
	suite.NoError(err)
	suite.False(allowed)
}

func (suite *AccessServiceTestSuite) TestResolveReadsStoreEveryCall() {
	id := uuid.New()
	first := &models.User{ID: id, TenantID: strPtr(tenantA), Role: models.RoleMember}
	promoted := &models.User{ID: id, TenantID: strPtr(tenantA), Role: models.RoleSuperAdmin}
	gomock.InOrder(
		suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), id).Return(first, nil),
		suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), id).Return(promoted, nil),
	)

	allowed, err := suite.accessService.Authorize(suite.ctx, id.String(), tenantB)
	suite.NoError(err)
	suite.False(allowed)

	allowed, err = suite.accessService.Authorize(suite.ctx, id.String(), tenantB)
	suite.NoError(err)
	suite.True(allowed)
}

func (suite *AccessServiceTestSuite) TestHelpers() {
	member := &models.User{ID: uuid.New(), TenantID: strPtr(tenantA), Role: models.RoleMember}
	super := &models.User{ID: uuid.New(), Role: models.RoleSuperAdmin}
	suite.expectUser(member)
	suite.expectUser(super)

	suite.True(suite.accessService.VerifyTenantAccess(suite.ctx, member.ID.String(), tenantA))
	suite.False(suite.accessService.VerifyTenantAccess(suite.ctx, member.ID.String(), tenantB))
	suite.False(suite.accessService.VerifyTenantAccess(suite.ctx, super.ID.String(), tenantA))

	suite.False(suite.accessService.IsSuperAdmin(suite.ctx, member.ID.String()))
	suite.True(suite.accessService.IsSuperAdmin(suite.ctx, super.ID.String()))

	suite.True(suite.accessService.CanAccessTenantData(suite.ctx, member.ID.String(), tenantA))
	suite.False(suite.accessService.CanAccessTenantData(suite.ctx, member.ID.String(), tenantB))
	suite.True(suite.accessService.CanAccessTenantData(suite.ctx, super.ID.String(), tenantB))
}

func (suite *AccessServiceTestSuite) TestHelpersDenyOnStoreError() {
	id := uuid.New()
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, errors.New("connection refused")).AnyTimes()

	suite.False(suite.accessService.IsSuperAdmin(suite.ctx, id.String()))
	suite.False(suite.accessService.CanAccessTenantData(suite.ctx, id.String(), tenantA))
	suite.False(suite.accessService.VerifyTenantAccess(suite.ctx, id.String(), tenantA))
}

func (suite *AccessServiceTestSuite) TestBootstrapEmailDisabledWhenEmpty() {
	svc := service.NewAccessService(suite.mockUserRepo, "", nil)
	user := &models.User{ID: uuid.New(), TenantID: strPtr(tenantB), Role: models.RoleMember, Email: bootstrapAddress}
	suite.expectUser(user)

	allowed, err := svc.Authorize(suite.ctx, user.ID.String(), tenantA)
	suite.NoError(err)
	suite.False(allowed)
}

func TestAccessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceTestSuite))
}
