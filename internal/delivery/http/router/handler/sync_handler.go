package handler

import (
	"log/slog"
	"net/http"

	"taskhub/internal/delivery/http/response"
	"taskhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SyncHandlerParams holds dependencies for SyncHandler, injected by Fx.
type SyncHandlerParams struct {
	fx.In

	SyncUC usecase.SyncUsecase
	Logger *slog.Logger
}

// SyncHandler holds dependencies for sync-related handlers
type SyncHandler struct {
	syncUC usecase.SyncUsecase
	logger *slog.Logger
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(params SyncHandlerParams) *SyncHandler {
	return &SyncHandler{
		syncUC: params.SyncUC,
		logger: params.Logger,
	}
}

// ReconcileRequest represents the request body for a sync batch.
// An empty items array is valid: it still advances the last sync time.
type ReconcileRequest struct {
	DeviceID string              `json:"device_id"`
	Items    []usecase.SyncItem  `json:"items"`
}

// Reconcile handles an offline mutation batch
func (h *SyncHandler) Reconcile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req ReconcileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sync input")
	}

	result, err := h.syncUC.Reconcile(c.Request().Context(), userID, req.DeviceID, req.Items)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Sync completed")
}

// Status handles reporting the user's sync progress
func (h *SyncHandler) Status(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	status, err := h.syncUC.Status(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "Sync status retrieved successfully")
}
