// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"taskhub/internal/delivery/http/response"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler holds dependencies for task-related handlers
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// TaskRequest represents the request body for creating or updating a task
type TaskRequest struct {
	Title                 string   `json:"title" validate:"required"`
	Priority              string   `json:"priority"`
	Completed             bool     `json:"completed"`
	AllDay                bool     `json:"all_day"`
	StartTime             *int64   `json:"start_time"`
	EndTime               *int64   `json:"end_time"`
	Location              string   `json:"location"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	ReminderOffsetMinutes *int     `json:"reminder_offset_minutes" validate:"omitempty,gte=0"`
}

func (r *TaskRequest) toInput() *usecase.TaskInput {
	return &usecase.TaskInput{
		Title:                 r.Title,
		Priority:              r.Priority,
		Completed:             r.Completed,
		AllDay:                r.AllDay,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		Location:              r.Location,
		Latitude:              r.Latitude,
		Longitude:             r.Longitude,
		ReminderOffsetMinutes: r.ReminderOffsetMinutes,
	}
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	task, err := h.taskUC.CreateTask(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task, "Task created successfully")
}

// GetTask handles retrieving a single task
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	task, err := h.taskUC.GetTask(c.Request().Context(), userID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task, "Task retrieved successfully")
}

// ListTasks handles retrieving all tasks of the authenticated user
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskUC.ListTasks(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks, "Tasks retrieved successfully")
}

// UpdateTask handles replacing the mutable fields of a task
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	task, err := h.taskUC.UpdateTask(c.Request().Context(), userID, taskID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task, "Task updated successfully")
}

// DeleteTask handles deleting a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	if err := h.taskUC.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Task deleted successfully"}, "Task deleted successfully")
}

// getUserID extracts the user ID from the context
func getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
