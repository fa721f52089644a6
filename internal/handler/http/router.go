package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const requestTimeout = 60 * time.Second

// Handlers groups the route handlers mounted by NewRouter.
type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
	Employee   EmployeeHandler
	Review     ReviewHandler
	Document   DocumentHandler
	Dashboard  DashboardHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(chiMiddleware.Timeout(requestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionDashboardAdmin)).Get("/admin", h.Dashboard.GetAdminDashboard)
				r.With(middleware.RequireEmployee).Get("/employee", h.Dashboard.GetEmployeeDashboard)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.List)
					r.Get("/department/{department}", h.Employee.ListByDepartment)
					r.Get("/{id}", h.Employee.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
				})

				r.With(middleware.RequirePermission(user.PermissionEmployeeDelete)).Delete("/{id}", h.Employee.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-in", h.Attendance.ClockIn)
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-out", h.Attendance.ClockOut)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/today", h.Attendance.GetToday)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/my", h.Attendance.GetMyAttendance)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
					r.Get("/employee/{employeeID}", h.Attendance.ListByEmployee)
					r.Get("/date/{date}", h.Attendance.GetByDate)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Put("/{id}", h.Attendance.Update)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", h.Leave.Apply)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", h.Leave.GetMyRequests)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", h.Leave.GetMyBalance)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewAll))
					r.Get("/", h.Leave.ListRequests)
					r.Get("/balance/{employeeID}", h.Leave.GetBalance)
				})

				r.Get("/{id}", h.Leave.GetRequest)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/status", h.Leave.UpdateStatus)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Post("/", h.Payroll.Create)
					r.Post("/generate", h.Payroll.Generate)
					r.Get("/", h.Payroll.List)
					r.Get("/summary", h.Payroll.GetSummary)
					r.Get("/export", h.Payroll.Export)
					r.Put("/{id}", h.Payroll.Update)
				})

				r.With(middleware.RequireEmployee, middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/my", h.Payroll.GetMyPayrolls)
				r.Get("/{id}", h.Payroll.Get)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Post("/", h.Document.Upload)
				r.With(middleware.RequireEmployee).Get("/my", h.Document.GetMyDocuments)
				r.With(middleware.RequirePermission(user.PermissionDocumentViewAll)).Get("/", h.Document.List)
				r.Delete("/{id}", h.Document.Delete)
			})

			r.Get("/files/documents/{employeeID}/{name}", h.Document.Download)

			r.Route("/reviews", func(r chi.Router) {
				r.With(middleware.RequireEmployee, middleware.RequirePermission(user.PermissionReviewViewOwn)).Get("/my", h.Review.GetMyReviews)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReviewManage))
					r.Post("/", h.Review.Create)
					r.Get("/", h.Review.List)
					r.Get("/{id}", h.Review.Get)
					r.Put("/{id}", h.Review.Update)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "route not found", nil)
	})

	return r
}
