package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"task-service/internal/auth"
	"task-service/internal/config"
	"task-service/internal/http/handler"
	"task-service/internal/http/middleware"
	"task-service/internal/infra/cache"
	"task-service/internal/notify"
	"task-service/internal/policy/presets"
	"task-service/internal/repository/postgres"
	"task-service/pkg/metrics"
	"task-service/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus = "status"
	statusOK      = "ok"
)

type ServerDependencies struct {
	Config           *config.Config
	DB               *postgres.DB
	OrgRepo          *postgres.OrganizationRepository
	DeptRepo         *postgres.DepartmentRepository
	UserRepo         *postgres.UserRepository
	TaskRepo         *postgres.TaskRepository
	AttachmentRepo   *postgres.AttachmentRepository
	CommentRepo      *postgres.CommentRepository
	VendorRepo       *postgres.VendorRepository
	MaterialRepo     *postgres.MaterialRepository
	NotificationRepo *postgres.NotificationRepository
	AttachmentStore  handler.AttachmentStore
	URLCache         *cache.URLCache
	JWTService       *auth.JWTService
	AuthMiddleware   *auth.Middleware
	PolicyMiddleware *auth.PolicyMiddleware
	Notifier         *notify.Notifier
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom HTTP error handler
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	// The body limit must admit multipart uploads; JSON endpoints enforce a
	// much tighter bound at bind time.
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", deps.Config.App.MaxUploadSize>>20)))

	e.Use(metrics.MetricsMiddleware())

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for auth endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.DB, deps.JWTService)
	orgHandler := handler.NewOrganizationHandler(deps.OrgRepo)
	deptHandler := handler.NewDepartmentHandler(deps.DeptRepo)
	userHandler := handler.NewUserHandler(deps.UserRepo)
	taskHandler := handler.NewTaskHandler(deps.TaskRepo, deps.UserRepo, deps.Notifier)
	attachmentHandler := handler.NewAttachmentHandler(
		deps.AttachmentRepo, deps.TaskRepo, deps.AttachmentStore, deps.URLCache,
		deps.Config.App.PresignedURLExpiry, deps.Config.App.MaxUploadSize)
	commentHandler := handler.NewCommentHandler(deps.CommentRepo, deps.TaskRepo, deps.Notifier)
	vendorHandler := handler.NewVendorHandler(deps.VendorRepo)
	materialHandler := handler.NewMaterialHandler(deps.MaterialRepo)
	notificationHandler := handler.NewNotificationHandler(deps.NotificationRepo)

	// Auth endpoints with strict rate limiting
	e.POST("/auth/signup", authHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	metrics.RegisterMetricsRoute(e)
	if profiling.IsProfilingEnabled() {
		profiling.RegisterPprofRoutes(e)
	}

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	pm := deps.PolicyMiddleware

	api.POST("/organizations", orgHandler.Create, pm.Require(presets.ResourceOrganization, presets.OpCreate))
	api.GET("/organizations", orgHandler.List, pm.Require(presets.ResourceOrganization, presets.OpRead))
	api.GET("/organizations/:id", orgHandler.Get, pm.RequireOrganization(presets.OpRead))
	api.PUT("/organizations/:id", orgHandler.Update, pm.RequireOrganization(presets.OpUpdate))
	api.DELETE("/organizations/:id", orgHandler.Delete, pm.RequireOrganization(presets.OpDelete))

	api.POST("/departments", deptHandler.Create, pm.Require(presets.ResourceDepartment, presets.OpCreate))
	api.GET("/departments", deptHandler.List, pm.Require(presets.ResourceDepartment, presets.OpRead))
	api.GET("/departments/:id", deptHandler.Get, pm.RequireDepartment(presets.OpRead))
	api.PUT("/departments/:id", deptHandler.Update, pm.RequireDepartment(presets.OpUpdate))
	api.DELETE("/departments/:id", deptHandler.Delete, pm.RequireDepartment(presets.OpDelete))

	api.POST("/users", userHandler.Create, pm.Require(presets.ResourceUser, presets.OpCreate))
	api.GET("/users", userHandler.List, pm.Require(presets.ResourceUser, presets.OpList))
	api.GET("/users/:id", userHandler.Get, pm.RequireUser(presets.OpRead))
	api.PUT("/users/:id", userHandler.Update, pm.RequireUser(presets.OpUpdate))
	api.DELETE("/users/:id", userHandler.Delete, pm.RequireUser(presets.OpDelete))

	api.POST("/tasks", taskHandler.Create, pm.Require(presets.ResourceTask, presets.OpCreate))
	api.GET("/tasks", taskHandler.List, pm.Require(presets.ResourceTask, presets.OpList))
	api.GET("/tasks/:id", taskHandler.Get, pm.RequireTask(presets.OpRead))
	api.PUT("/tasks/:id", taskHandler.Update, pm.RequireTask(presets.OpUpdate))
	api.DELETE("/tasks/:id", taskHandler.Delete, pm.RequireTask(presets.OpDelete))
	api.POST("/tasks/:id/assign", taskHandler.Assign, pm.RequireTask(presets.OpAssign))
	api.POST("/tasks/:id/approve", taskHandler.Approve, pm.RequireTask(presets.OpApprove))
	api.POST("/tasks/:id/order", taskHandler.Order, pm.RequireTask(presets.OpOrder))

	api.POST("/tasks/:id/comments", commentHandler.Create, pm.RequireCommentOnTask(presets.OpCreate))
	api.GET("/tasks/:id/comments", commentHandler.ListByTask, pm.RequireCommentOnTask(presets.OpRead))
	api.PUT("/comments/:id", commentHandler.Update, pm.RequireComment(presets.OpUpdate))
	api.DELETE("/comments/:id", commentHandler.Delete, pm.RequireComment(presets.OpDelete))

	api.POST("/tasks/:id/attachments", attachmentHandler.Upload, pm.RequireAttachmentOnTask(presets.OpCreate))
	api.GET("/tasks/:id/attachments", attachmentHandler.ListByTask, pm.RequireAttachmentOnTask(presets.OpRead))
	api.GET("/attachments/:id/download-url", attachmentHandler.Download, pm.RequireAttachment(presets.OpRead))
	api.DELETE("/attachments/:id", attachmentHandler.Delete, pm.RequireAttachment(presets.OpDelete))

	api.POST("/vendors", vendorHandler.Create, pm.Require(presets.ResourceVendor, presets.OpCreate))
	api.GET("/vendors", vendorHandler.List, pm.Require(presets.ResourceVendor, presets.OpRead))
	api.GET("/vendors/:id", vendorHandler.Get, pm.RequireVendor(presets.OpRead))
	api.PUT("/vendors/:id", vendorHandler.Update, pm.RequireVendor(presets.OpUpdate))
	api.DELETE("/vendors/:id", vendorHandler.Delete, pm.RequireVendor(presets.OpDelete))

	api.POST("/materials", materialHandler.Create, pm.Require(presets.ResourceMaterial, presets.OpCreate))
	api.GET("/materials", materialHandler.List, pm.Require(presets.ResourceMaterial, presets.OpRead))
	api.GET("/materials/:id", materialHandler.Get, pm.RequireMaterial(presets.OpRead))
	api.PUT("/materials/:id", materialHandler.Update, pm.RequireMaterial(presets.OpUpdate))
	api.DELETE("/materials/:id", materialHandler.Delete, pm.RequireMaterial(presets.OpDelete))

	api.GET("/notifications", notificationHandler.List, pm.Require(presets.ResourceNotification, presets.OpList))
	api.POST("/notifications/:id/read", notificationHandler.MarkRead, pm.RequireNotification(presets.OpUpdate))
	api.DELETE("/notifications/:id", notificationHandler.Delete, pm.RequireNotification(presets.OpDelete))

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
