package employee

import (
	"context"
	"testing"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
	"github.com/furnishop/shop-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FullName:      "Abebe Kebede",
		PhoneNumber:   "0911223344",
		PaymentMethod: "Weekly",
		DailyRate:     ptr(decimal.NewFromInt(400)),
	}
}

func TestCreateEmployee(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	resp, err := svc.CreateEmployee(context.Background(), validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Abebe Kebede", resp.FullName)
	require.NotNil(t, resp.DailyRate)
	assert.Equal(t, "400", resp.DailyRate.String())
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestCreateEmployee_Validation(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	req := validCreate()
	req.FullName = ""
	req.PhoneNumber = "12345"
	req.PaymentMethod = "Daily"
	req.HourlyRate = ptr(decimal.NewFromInt(-1))

	_, err := svc.CreateEmployee(context.Background(), req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "phone_number")
	assert.Contains(t, fields, "payment_method")
	assert.Contains(t, fields, "hourly_rate")
}

func TestCreateEmployee_DuplicatePhone(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	_, err := svc.CreateEmployee(context.Background(), validCreate())
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), validCreate())
	assert.ErrorIs(t, err, employee.ErrPhoneNumberExists)
}

func TestUpdateEmployee_ClearsRate(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:            created.ID,
		PaymentMethod: ptr("Monthly"),
		DailyRate:     ptr(decimal.Zero),
		MonthlyRate:   ptr(decimal.NewFromInt(10400)),
	})
	require.NoError(t, err)

	assert.Nil(t, updated.DailyRate)
	assert.Equal(t, "10400", updated.MonthlyRate.String())
	assert.EqualValues(t, "Monthly", updated.PaymentMethod)
	assert.Equal(t, "Abebe Kebede", updated.FullName)
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{ID: "missing", FullName: ptr("X")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListEmployees_Showing(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	ctx := context.Background()

	for _, phone := range []string{"0911000001", "0911000002", "0911000003"} {
		req := validCreate()
		req.PhoneNumber = phone
		_, err := svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "3-3 of 3", resp.Showing)
	assert.Len(t, resp.Employees, 1)

	empty, err := NewEmployeeService(memory.NewEmployeeRepository()).ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", empty.Showing)
}

func TestDeleteEmployee(t *testing.T) {
	svc := NewEmployeeService(memory.NewEmployeeRepository())
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
	_, err = svc.GetEmployee(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
