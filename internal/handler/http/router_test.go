package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/furnishop/shop-backend-go/internal/config"
	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
	"github.com/furnishop/shop-backend-go/internal/pkg/jwt"
	"github.com/furnishop/shop-backend-go/internal/pkg/metrics"
	"github.com/furnishop/shop-backend-go/internal/pkg/sse"
	"github.com/furnishop/shop-backend-go/internal/repository/memory"
	attendanceService "github.com/furnishop/shop-backend-go/internal/service/attendance"
	employeeService "github.com/furnishop/shop-backend-go/internal/service/employee"
	notificationService "github.com/furnishop/shop-backend-go/internal/service/notification"
	payrollService "github.com/furnishop/shop-backend-go/internal/service/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eat = time.FixedZone("EAT", 3*60*60)

type stubSender struct {
	mu   sync.Mutex
	err  error
	sent []string
}

func (s *stubSender) SendMessage(ctx context.Context, recipientID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, recipientID)
	return s.err
}

type testServer struct {
	handler http.Handler
	sender  *stubSender
	owner   string
	staff   string
	jwt     jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		App:  config.AppConfig{Name: "furnishop-test", Env: "test", LogLevel: "error"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	jwtService, err := jwt.NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	m := metrics.New(nil)

	employees := memory.NewEmployeeRepository()
	attendances := memory.NewAttendanceRepository()
	payments := memory.NewPaymentRepository()

	sender := &stubSender{}
	notifier := notificationService.NewNotificationService(sender, m, notificationService.Config{WorkerCount: 1})
	t.Cleanup(notifier.Stop)

	rules := payroll.DefaultRules()
	handlers := Handlers{
		Employee:     NewEmployeeHandler(employeeService.NewEmployeeService(employees)),
		Attendance:   NewAttendanceHandler(attendanceService.NewAttendanceService(attendances, employees, sse.NewHub(), eat, rules.Shifts), jwtService),
		Notification: NewNotificationHandler(notifier),
	}
	payrollSvc := payrollService.NewPayrollService(employees, attendances, payments, notifier, m, payrollService.Settings{
		Rules:     rules,
		Location:  eat,
		WeekStart: time.Monday,
		Currency:  "ETB",
	})
	handlers.Payroll = NewPayrollHandler(payrollSvc)
	handlers.Dashboard = NewDashboardHandler(payrollSvc)

	owner, _, err := jwtService.GenerateAccessToken("owner-1", auth.RoleOwner)
	require.NoError(t, err)
	staff, _, err := jwtService.GenerateAccessToken("staff-1", auth.RoleStaff)
	require.NoError(t, err)

	return &testServer{
		handler: NewRouter(cfg, jwtService, m, handlers),
		sender:  sender,
		owner:   owner,
		staff:   staff,
		jwt:     jwtService,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) (response.Response, map[string]any) {
	t.Helper()
	var env response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	data, _ := env.Data.(map[string]any)
	return env, data
}

// seed creates a weekly employee with two worked days in the week of 6 May
// 2024 and returns the employee id.
func (s *testServer) seed(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/employees", s.owner, map[string]any{
		"full_name":      "Abebe Kebede",
		"phone_number":   "0911223344",
		"payment_method": "Weekly",
		"daily_rate":     "400",
		"chat_id":        "1001",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, data := decode(t, rec)
	id := data["id"].(string)

	for _, day := range []map[string]any{
		{"employee_id": id, "date": "2024-05-06", "morning": "08:00", "afternoon": "13:00", "status": "Present"},
		{"employee_id": id, "date": map[string]any{"seconds": 1715029200, "nanoseconds": 0}, "morning": "09:00", "afternoon": "13:00", "status": "Late"},
	} {
		rec := s.do(t, http.MethodPost, "/api/v1/attendances", s.staff, day)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	return id
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	s.do(t, http.MethodGet, "/api/v1/employees", s.staff, nil)
	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "furnishop_http_requests_total")
	assert.Contains(t, rec.Body.String(), `status="200"`)
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	streamToken, _, err := s.jwt.GenerateStreamToken("staff-1")
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/employees", streamToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/employees", s.staff, map[string]any{"full_name": "X"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_EmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := s.seed(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees?search=abebe", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env, _ := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, "1-1 of 1", env.Meta.Showing)

	rec = s.do(t, http.MethodPatch, "/api/v1/employees/"+id, s.owner, map[string]any{"job_title": "Carpenter"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode(t, rec)
	assert.Equal(t, "Carpenter", data["job_title"])

	rec = s.do(t, http.MethodPost, "/api/v1/employees", s.owner, map[string]any{
		"full_name": "Other", "phone_number": "0911223344", "payment_method": "Weekly",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/employees", s.owner, map[string]any{"phone_number": "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/"+id, s.owner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/v1/employees/"+id, s.owner, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AttendanceErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.seed(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendances", s.staff, map[string]any{
		"employee_id": id, "date": "2024-05-06", "status": "Present",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendances", s.staff, map[string]any{
		"employee_id": id, "date": "2024-05-09", "morning": "nine", "status": "Present",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendances", s.staff, "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Payroll(t *testing.T) {
	s := newTestServer(t)
	id := s.seed(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll?method=weekly&reference=2024-05-15", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, data := decode(t, rec)
	assert.Equal(t, "800", data["total_amount"])
	assert.Equal(t, "2024-05-06", data["period_start"])

	rec = s.do(t, http.MethodGet, "/api/v1/payroll?method=daily", s.staff, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/employees/"+id+"/summary?reference=2024-05-15", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, data = decode(t, rec)
	assert.Contains(t, data["text"], "Total payout: 800.00 ETB")

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/employees/"+id+"/paid?reference=2024-05-15", s.staff, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/employees/"+id+"/paid?reference=2024-05-15", s.owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, data = decode(t, rec)
	assert.Equal(t, "Paid", data["status"])

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/employees/"+id+"?reference=2024-06-30", s.staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Payslip(t *testing.T) {
	s := newTestServer(t)
	id := s.seed(t)

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/employees/"+id+"/payslip?reference=2024-05-15", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-abebe-kebede-2024-05-06.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestRouter_SendSummary(t *testing.T) {
	s := newTestServer(t)
	id := s.seed(t)
	path := "/api/v1/payroll/employees/" + id + "/send?reference=2024-05-15"

	rec := s.do(t, http.MethodPost, path, s.owner, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, data := decode(t, rec)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, "1001", data["recipient_id"])

	s.sender.err = fmt.Errorf("%w: chat not found", notification.ErrDeliveryFailed)
	rec = s.do(t, http.MethodPost, path, s.owner, map[string]any{"recipient_id": "2002"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	_, data = decode(t, rec)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, "2002", data["recipient_id"])
	assert.NotEmpty(t, data["error"])
}

func TestRouter_NotificationSend(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/notifications/send", s.owner, map[string]any{"recipient_id": "42", "text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode(t, rec)
	assert.Equal(t, true, data["success"])

	rec = s.do(t, http.MethodPost, "/api/v1/notifications/send", s.owner, map[string]any{"recipient_id": "42"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_Dashboard(t *testing.T) {
	s := newTestServer(t)
	s.seed(t)

	rec := s.do(t, http.MethodGet, "/api/v1/dashboard/payroll?reference=2024-05-08", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode(t, rec)
	weekly := data["weekly"].(map[string]any)
	assert.Equal(t, "800", weekly["total_amount"])

	rec = s.do(t, http.MethodGet, "/api/v1/dashboard/expenses?months=3&reference=2024-05-08", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data []payroll.ExpensePoint `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 3)
	assert.Equal(t, "2024-05", env.Data[2].Month)

	rec = s.do(t, http.MethodGet, "/api/v1/dashboard/expenses?months=30", s.staff, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_AttendanceStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	rec := s.do(t, http.MethodGet, "/api/v1/attendances/stream?token="+s.staff, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendances/stream-token", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode(t, rec)
	token := data["token"].(string)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/attendances/stream?token="+token, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if line := lines.Text(); strings.HasPrefix(line, "event: ") {
				return strings.TrimPrefix(line, "event: ")
			}
		}
		return ""
	}
	require.Equal(t, "connected", next())

	s.seed(t)
	assert.Equal(t, "attendance.changed", next())
	require.True(t, lines.Scan())
	assert.Contains(t, lines.Text(), `"action":"created"`)
}
