package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/furnishop/shop-backend-go/internal/config"
	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	appHTTP "github.com/furnishop/shop-backend-go/internal/handler/http"
	"github.com/furnishop/shop-backend-go/internal/pkg/cron"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/furnishop/shop-backend-go/internal/pkg/jwt"
	"github.com/furnishop/shop-backend-go/internal/pkg/metrics"
	"github.com/furnishop/shop-backend-go/internal/pkg/sse"
	"github.com/furnishop/shop-backend-go/internal/pkg/telegram"
	"github.com/furnishop/shop-backend-go/internal/repository/memory"
	"github.com/furnishop/shop-backend-go/internal/repository/mongodb"
	"github.com/furnishop/shop-backend-go/internal/repository/postgresql"
	attendanceService "github.com/furnishop/shop-backend-go/internal/service/attendance"
	employeeService "github.com/furnishop/shop-backend-go/internal/service/employee"
	notificationService "github.com/furnishop/shop-backend-go/internal/service/notification"
	payrollService "github.com/furnishop/shop-backend-go/internal/service/payroll"
)

const shutdownTimeout = 15 * time.Second

// stores holds the repositories of the selected driver and how to release it.
type stores struct {
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	payments    payroll.PaymentRepository
	close       func(ctx context.Context)
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	))

	loc, err := cfg.Payroll.Location()
	if err != nil {
		return err
	}
	weekStart, err := cfg.Payroll.Weekday()
	if err != nil {
		return err
	}
	rules, err := cfg.Payroll.Rules()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, loc)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		st.close(closeCtx)
	}()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	m := metrics.New(nil)
	hub := sse.NewHub()

	notifier := notificationService.NewNotificationService(
		notificationService.NewTelegramSender(telegram.NewClient(cfg.Telegram)),
		m,
		notificationService.Config{
			WorkerCount: cfg.Telegram.WorkerCount,
			QueueSize:   cfg.Telegram.QueueSize,
			SendTimeout: cfg.Telegram.Timeout,
		},
	)
	defer notifier.Stop()

	employeeSvc := employeeService.NewEmployeeService(st.employees)
	attendanceSvc := attendanceService.NewAttendanceService(st.attendances, st.employees, hub, loc, rules.Shifts)
	payrollSvc := payrollService.NewPayrollService(st.employees, st.attendances, st.payments, notifier, m, payrollService.Settings{
		Rules:            rules,
		Location:         loc,
		WeekStart:        weekStart,
		Currency:         cfg.Payroll.Currency,
		DefaultRecipient: cfg.Telegram.DefaultChatID,
	})

	router := appHTTP.NewRouter(cfg, JWTService, m, appHTTP.Handlers{
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc, JWTService),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:    appHTTP.NewDashboardHandler(payrollSvc),
		Notification: appHTTP.NewNotificationHandler(notifier),
	})

	if cfg.Digest.Interval > 0 {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(payrollSvc, cfg.Digest.Interval, weekStart, loc).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, loc *time.Location) (stores, error) {
	switch cfg.Store.Driver {
	case "mongo":
		db, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
		if err != nil {
			return stores{}, fmt.Errorf("error connecting to mongodb: %w", err)
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = db.Disconnect(ctx)
			return stores{}, err
		}
		return stores{
			employees:   mongodb.NewEmployeeRepository(db),
			attendances: mongodb.NewAttendanceRepository(db, loc),
			payments:    mongodb.NewPaymentRepository(db, loc),
			close: func(ctx context.Context) {
				if err := db.Disconnect(ctx); err != nil {
					slog.Warn("Failed to disconnect mongodb", "error", err)
				}
			},
		}, nil

	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return stores{}, fmt.Errorf("error connecting to database: %w", err)
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return stores{}, err
		}
		return stores{
			employees:   postgresql.NewEmployeeRepository(db),
			attendances: postgresql.NewAttendanceRepository(db, loc),
			payments:    postgresql.NewPaymentRepository(db, loc),
			close:       func(context.Context) { db.Close() },
		}, nil

	case "memory":
		slog.Warn("Using in-memory store, data is lost on restart")
		return stores{
			employees:   memory.NewEmployeeRepository(),
			attendances: memory.NewAttendanceRepository(),
			payments:    memory.NewPaymentRepository(),
			close:       func(context.Context) {},
		}, nil
	}
	return stores{}, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
