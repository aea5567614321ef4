package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cluedotech/timesheetpro/internal/api/handler"
	"github.com/cluedotech/timesheetpro/internal/api/middleware"
	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/ports"
)

// Deps bundles everything the router needs. Mongo and Redis handles may be
// nil when the service runs memory-only; they are used by the readiness probe
// only.
type Deps struct {
	JWTSecret string
	Log       zerolog.Logger

	Auth          ports.AuthService
	Timesheets    ports.TimesheetService
	Directory     ports.DirectoryService
	Notifications ports.NotificationService
	Summaries     ports.SummaryService
	Exporter      handler.InvoiceExporter

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("timesheetpro"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	timesheetHandler := handler.NewTimesheetHandler(deps.Timesheets)
	directoryHandler := handler.NewDirectoryHandler(deps.Directory)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	summaryHandler := handler.NewSummaryHandler(deps.Timesheets, deps.Summaries)
	exportHandler := handler.NewExportHandler(deps.Exporter)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	auth := middleware.Auth(deps.JWTSecret)
	contractorOnly := middleware.RBAC(domain.RoleContractor)
	managerOnly := middleware.RBAC(domain.RoleManager)
	adminOnly := middleware.RBAC(domain.RoleSuperAdmin)
	adminOrManager := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleManager)

	v1 := e.Group("/v1", auth)

	v1.GET("/periods", timesheetHandler.Periods)

	v1.GET("/timesheets", timesheetHandler.List)
	v1.GET("/timesheets/current", timesheetHandler.Current, contractorOnly)
	v1.PUT("/timesheets/current/entries", timesheetHandler.UpdateEntry, contractorOnly)
	v1.POST("/timesheets/current/save", timesheetHandler.Save, contractorOnly)
	v1.POST("/timesheets/current/submit", timesheetHandler.Submit, contractorOnly)

	v1.POST("/timesheets/bulk/approve", timesheetHandler.BulkApprove, managerOnly)
	v1.POST("/timesheets/bulk/send", timesheetHandler.BulkSend, adminOnly)
	v1.POST("/timesheets/bulk/pay", timesheetHandler.BulkPay, adminOnly)

	v1.POST("/timesheets/:id/approve", timesheetHandler.Approve, managerOnly)
	v1.POST("/timesheets/:id/send", timesheetHandler.Send, adminOnly)
	v1.POST("/timesheets/:id/pay", timesheetHandler.Pay, adminOnly)
	v1.POST("/timesheets/:id/summary", summaryHandler.Generate)
	v1.GET("/timesheets/:id/invoice", exportHandler.Invoice, adminOrManager)

	v1.GET("/users", directoryHandler.Users, adminOrManager)
	v1.PUT("/users/:id", directoryHandler.UpdateContractor, adminOnly)

	v1.GET("/clients", directoryHandler.Clients, adminOrManager)
	v1.POST("/clients", directoryHandler.CreateClient, adminOnly)
	v1.PUT("/clients/:id", directoryHandler.UpdateClient, adminOnly)
	v1.DELETE("/clients/:id", directoryHandler.DeleteClient, adminOnly)

	v1.GET("/notifications", notificationHandler.List)
	v1.POST("/notifications/:id/read", notificationHandler.MarkRead)

	return e
}
