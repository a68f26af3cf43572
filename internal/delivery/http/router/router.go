// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskhub/config"
	"taskhub/internal/delivery/http/middleware"
	"taskhub/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	UserHandler    *handler.UserHandler
	TaskHandler    *handler.TaskHandler
	DeviceHandler  *handler.DeviceHandler
	SyncHandler    *handler.SyncHandler
	TestHandler    *handler.TestHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	userHandler    *handler.UserHandler
	taskHandler    *handler.TaskHandler
	deviceHandler  *handler.DeviceHandler
	syncHandler    *handler.SyncHandler
	testHandler    *handler.TestHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		userHandler:    params.UserHandler,
		taskHandler:    params.TaskHandler,
		deviceHandler:  params.DeviceHandler,
		syncHandler:    params.SyncHandler,
		testHandler:    params.TestHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// Task routes that require authentication
	taskGroup := e.Group("/tasks")
	taskGroup.Use(r.authMiddleware.Authenticate)
	{
		taskGroup.GET("", r.taskHandler.ListTasks)
		taskGroup.POST("", r.taskHandler.CreateTask)
		taskGroup.GET("/:id", r.taskHandler.GetTask)
		taskGroup.PUT("/:id", r.taskHandler.UpdateTask)
		taskGroup.DELETE("/:id", r.taskHandler.DeleteTask)
	}

	// Device registry routes
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.GET("", r.deviceHandler.GetUserDevices)
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.DELETE("", r.deviceHandler.RemoveDevice)
	}

	// Sync routes
	syncGroup := e.Group("/sync")
	syncGroup.Use(r.authMiddleware.Authenticate)
	{
		syncGroup.POST("", r.syncHandler.Reconcile)
		syncGroup.GET("/status", r.syncHandler.Status)
	}

	// Preference routes
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/preferences", r.userHandler.GetPreferences)
		userGroup.PUT("/preferences", r.userHandler.UpdatePreferences)
	}

	// Test routes are only mounted when explicitly enabled.
	if r.cfg.TestRoutes != nil && r.cfg.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.Use(r.authMiddleware.Authenticate)
		{
			testGroup.POST("/notify/:taskId", r.testHandler.NotifyTask)
		}
	}
}
