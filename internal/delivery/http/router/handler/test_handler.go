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

// TestHandlerParams holds dependencies for TestHandler, injected by Fx.
type TestHandlerParams struct {
	fx.In

	DispatchUC usecase.DispatchUsecase
	Logger     *slog.Logger
}

// TestHandler handles config-gated endpoints for exercising push delivery
// end to end without waiting for a scheduled reminder.
type TestHandler struct {
	dispatchUC usecase.DispatchUsecase
	logger     *slog.Logger
}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler(params TestHandlerParams) *TestHandler {
	return &TestHandler{
		dispatchUC: params.DispatchUC,
		logger:     params.Logger,
	}
}

// NotifyRequest carries optional overrides for the notification content.
// Omitted fields fall back to defaults built from the task itself.
type NotifyRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NotifyTask sends a manual push for one of the caller's tasks.
func (h *TestHandler) NotifyTask(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid task ID")
	}

	var req NotifyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notify input")
	}

	result, err := h.dispatchUC.NotifyTask(c.Request().Context(), userID, taskID, req.Title, req.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Notification dispatched")
}
