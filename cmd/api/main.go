package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/config"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/dashboard"
	documentService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/payroll"
	reviewService "github.com/cmlabs-hris/squadhr-backend-go/internal/service/review"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	level := parseLogLevel(cfg.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	clk := clock.New()
	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	overlapPolicy := leave.OverlapAllow
	if cfg.Leave.OverlapPolicy == config.LeaveOverlapReject {
		overlapPolicy = leave.OverlapReject
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, clk, loc)
	leaveSvc := leaveService.NewLeaveService(
		leaveRequestRepo,
		employeeRepo,
		clk,
		leaveService.WithLocation(loc),
		leaveService.WithOverlapPolicy(overlapPolicy),
	)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, clk, loc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, clk)
	reviewSvc := reviewService.NewReviewService(reviewRepo, employeeRepo)
	documentSvc := documentService.NewDocumentService(documentRepo, employeeRepo, fileService)
	dashboardSvc := dashboardService.NewDashboardService(
		dashboardRepo,
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		payrollRepo,
		clk,
		loc,
	)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Review:     appHTTP.NewReviewHandler(reviewSvc),
		Document:   appHTTP.NewDocumentHandler(documentSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       level,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	scheduler := cron.NewScheduler()
	if cfg.Payroll.AutoGenerateDay > 0 {
		cron.NewPayrollJobs(payrollSvc, clk, loc, cfg.Payroll.AutoGenerateDay).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", srv.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
