package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/sse"
	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
	"github.com/furnishop/shop-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eat = time.FixedZone("EAT", 3*60*60)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	svc      attendance.AttendanceService
	hub      *sse.Hub
	employee employee.Employee
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	employees := memory.NewEmployeeRepository()
	emp, err := employees.Create(context.Background(), employee.Employee{
		ID:            "emp-1",
		FullName:      "Abebe Kebede",
		PhoneNumber:   "0911223344",
		PaymentMethod: payroll.PaymentMethodWeekly,
	})
	require.NoError(t, err)

	hub := sse.NewHub()
	svc := NewAttendanceService(memory.NewAttendanceRepository(), employees, hub, eat, payroll.DefaultShifts())
	return fixture{svc: svc, hub: hub, employee: emp}
}

func createReq(date string) attendance.CreateAttendanceRequest {
	return attendance.CreateAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       attendance.DateValue(date),
		Morning:    ptr("08:00"),
		Afternoon:  ptr("13:00"),
		Status:     "Present",
	}
}

func TestCreateAttendance(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CreateAttendance(context.Background(), createReq("2024-05-07T22:30:00Z"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2024-05-08", resp.Date)
	assert.Equal(t, 8.5, resp.WorkHours)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Abebe Kebede", *resp.EmployeeName)
}

func TestCreateAttendance_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)

	missing := createReq("2024-05-08")
	missing.EmployeeID = "nobody"
	_, err = f.svc.CreateAttendance(ctx, missing)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	bad := createReq("2024-05-08")
	bad.Morning = ptr("8 o'clock")
	_, err = f.svc.CreateAttendance(ctx, bad)
	assert.ErrorAs(t, err, &errs)

	_, err = f.svc.CreateAttendance(ctx, createReq("2024-05-08"))
	require.NoError(t, err)
	_, err = f.svc.CreateAttendance(ctx, createReq("2024-05-08"))
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyExists)
}

func TestUpdateAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateAttendance(ctx, createReq("2024-05-08"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:      created.ID,
		Morning: ptr("9:00"),
		Status:  ptr("Late"),
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00", *updated.Morning)
	assert.Equal(t, attendance.StatusLate, updated.Status)
	assert.Equal(t, 7.5, updated.WorkHours)

	got, err := f.svc.GetAttendance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", *got.Morning)
}

func TestUpdateAttendance_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{ID: "missing", Status: ptr("Absent")})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestListAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-05-06", "2024-05-07", "2024-05-08"} {
		_, err := f.svc.CreateAttendance(ctx, createReq(d))
		require.NoError(t, err)
	}

	resp, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{
		StartDate: ptr("2024-05-07"),
		Limit:     1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "1-1 of 2", resp.Showing)
	require.Len(t, resp.Attendances, 1)
	assert.Equal(t, "2024-05-08", resp.Attendances[0].Date)
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	events, cancel := f.svc.Subscribe(ctx)
	defer cancel()
	require.Eventually(t, func() bool { return f.hub.SubscriberCount(Topic) == 1 }, time.Second, 10*time.Millisecond)

	created, err := f.svc.CreateAttendance(ctx, createReq("2024-05-08"))
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteAttendance(ctx, created.ID))

	for _, action := range []string{"created", "deleted"} {
		select {
		case ev := <-events:
			assert.Equal(t, action, ev.Action)
			assert.Equal(t, created.ID, ev.Attendance.ID)
		case <-time.After(time.Second):
			t.Fatalf("no %s event", action)
		}
	}

	cancel()
	assert.Equal(t, 0, f.hub.SubscriberCount(Topic))
}
