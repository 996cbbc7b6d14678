package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tenant-admin-backend/internal/api/handlers"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	driverErr := errors.New("FATAL: password authentication failed for user postgres")

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid tenant id", apperrors.ErrInvalidTenantID, http.StatusBadRequest, "tenant_id"},
		{"invalid identifier", apperrors.NewInvalidIdentifierError("a-b", "illegal character"), http.StatusBadRequest, "invalid identifier"},
		{"pagination", apperrors.ErrInvalidPaginationParams, http.StatusBadRequest, "pagination"},
		{"missing user context", apperrors.ErrMissingUserContext, http.StatusUnauthorized, "not recognised"},
		{"unknown acting user", apperrors.ErrUserNotFound, http.StatusUnauthorized, "not recognised"},
		{"cross-tenant", apperrors.ErrTenantAccessDenied, http.StatusForbidden, "not permitted"},
		{"invalid stored role", fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidRole, "owner"), http.StatusForbidden, "not permitted"},
		{"ticket not found", apperrors.ErrTicketNotFound, http.StatusNotFound, "repair ticket not found"},
		{"pool exhausted", apperrors.NewStoreError(apperrors.StorePoolExhausted, "fetch_one", driverErr), http.StatusServiceUnavailable, "service busy"},
		{"transient", apperrors.NewStoreError(apperrors.StoreTransient, "execute", driverErr), http.StatusServiceUnavailable, "temporarily unavailable"},
		{"provisioning", apperrors.NewStoreError(apperrors.StoreProvisioningFailed, "provision", driverErr), http.StatusInternalServerError, "internal server error"},
		{"unknown store", apperrors.NewStoreError(apperrors.StoreUnknown, "fetch_many", driverErr), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, recorder := testutils.CreateTestGinContext()

			handlers.RespondError(c, tc.err)

			testutils.AssertErrorResponse(t, recorder, tc.status, tc.message)
			assert.True(t, c.IsAborted())
			assert.NotContains(t, recorder.Body.String(), "password")
		})
	}
}
