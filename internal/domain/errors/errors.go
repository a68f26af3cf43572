// Package errors defines the application-level error taxonomy shared by
// all delivery layers.
package errors

import (
	"net/http"

	"taskhub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"找不到該使用者",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"此電子郵件已被註冊",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"建立使用者失敗",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"電子郵件或密碼錯誤",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"密碼處理錯誤",
		"",
	)

	// Task-related errors
	ErrTaskNotFound = NewBaseError(
		http.StatusNotFound,
		"TASK_NOT_FOUND",
		"找不到該任務",
		"",
	)

	ErrTaskCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"TASK_CREATION_FAILED",
		"建立任務失敗",
		"",
	)

	ErrTaskUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"TASK_UPDATE_FAILED",
		"更新任務失敗",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	ErrInvalidLatitude = NewBaseError(
		http.StatusBadRequest,
		"INVALID_LATITUDE",
		"緯度超出有效範圍",
		"latitude must be between -90 and 90",
	)

	ErrInvalidLongitude = NewBaseError(
		http.StatusBadRequest,
		"INVALID_LONGITUDE",
		"經度超出有效範圍",
		"longitude must be between -180 and 180",
	)

	ErrInvalidReminderOffset = NewBaseError(
		http.StatusBadRequest,
		"INVALID_REMINDER_OFFSET",
		"提醒提前時間無效",
		"reminder offset minutes must be non-negative",
	)

	ErrInvalidQuietHours = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUIET_HOURS",
		"勿擾時段設定無效",
		"quiet hours must be hours of day between 0 and 23, and both bounds must be set together",
	)

	// Device-related errors
	ErrDeviceRegistrationFailed = NewBaseError(
		http.StatusInternalServerError,
		"DEVICE_REGISTRATION_FAILED",
		"裝置註冊失敗",
		"",
	)

	// Notification-related errors
	ErrPushGatewayUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"PUSH_GATEWAY_UNAVAILABLE",
		"推播服務未設定",
		"",
	)

	// Sync-related errors
	ErrSyncFailed = NewBaseError(
		http.StatusInternalServerError,
		"SYNC_FAILED",
		"同步處理失敗",
		"",
	)
)

// NewDatabaseExecuteError wraps a low-level database failure into a
// generic internal error, keeping the cause in the details.
func NewDatabaseExecuteError(err error, message string) AppError {
	details := ""
	if err != nil {
		details = err.Error()
	}

	return NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		message,
		details,
	)
}
