package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{validator.ValidationErrors{{Field: "full_name", Message: "is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{fmt.Errorf("morning: %w", payroll.ErrInvalidClockTime), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{attendance.ErrAttendanceAlreadyExists, http.StatusConflict, "CONFLICT"},
		{employee.ErrPhoneNumberExists, http.StatusConflict, "CONFLICT"},
		{payroll.ErrNoPayrollEntry, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: chat not found", notification.ErrDeliveryFailed), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{notification.ErrMissingCredential, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)

			assert.Equal(t, c.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "phone_number", Message: "invalid"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"phone_number": "invalid"}, body.Error.Details)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 1, Limit: 20, TotalItems: 1, TotalPages: 1, Showing: "1-1 of 1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"page":1,"limit":20,"total_items":1,"total_pages":1,"showing":"1-1 of 1"}}`, rec.Body.String())
}
