package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/furnishop/shop-backend-go/internal/config"
	"github.com/furnishop/shop-backend-go/internal/handler/http/middleware"
	"github.com/furnishop/shop-backend-go/internal/pkg/jwt"
	"github.com/furnishop/shop-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Employee     EmployeeHandler
	Attendance   AttendanceHandler
	Payroll      PayrollHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, m *metrics.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.LogLevel(),
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(m.Middleware)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// EventSource cannot send headers; Stream checks its own query token
		r.Get("/attendances/stream", h.Attendance.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				// Owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Post("/", h.Employee.CreateEmployee)
					r.Patch("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", h.Attendance.ListAttendance)
				r.Post("/", h.Attendance.CreateAttendance)
				r.Get("/stream-token", h.Attendance.GetStreamToken)
				r.Get("/{id}", h.Attendance.GetAttendance)
				r.Patch("/{id}", h.Attendance.UpdateAttendance)
				r.With(middleware.RequireOwner).Delete("/{id}", h.Attendance.DeleteAttendance)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.Calculate)
				r.With(middleware.RequireOwner).Post("/digest", h.Payroll.SendDigest)

				r.Route("/employees/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetEntry)
					r.Get("/summary", h.Payroll.GetSummary)
					r.Get("/payslip", h.Payroll.DownloadPayslip)

					// Owner only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireOwner)
						r.Post("/send", h.Payroll.SendSummary)
						r.Post("/paid", h.Payroll.MarkPaid)
						r.Post("/unpaid", h.Payroll.MarkUnpaid)
					})
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/payroll", h.Dashboard.GetPayroll)
				r.Get("/expenses", h.Dashboard.GetExpenses)
			})

			r.With(middleware.RequireOwner).Post("/notifications/send", h.Notification.Send)
		})
	})
	return r
}
