package errors

import (
	"net/http"

	"playden/internal/errors"
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

	ErrAccountDeactivated = NewBaseError(
		http.StatusUnauthorized,
		"ACCOUNT_DEACTIVATED",
		"此帳號已被停用",
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

	// Wallet / ledger errors
	ErrWalletNotFound = NewBaseError(
		http.StatusNotFound,
		"WALLET_NOT_FOUND",
		"找不到錢包",
		"",
	)

	ErrInsufficientFunds = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_FUNDS",
		"餘額不足",
		"",
	)

	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"金額必須為正整數（以分為單位）",
		"",
	)

	ErrDepositAlreadyProcessed = NewBaseError(
		http.StatusConflict,
		"DEPOSIT_ALREADY_PROCESSED",
		"此筆付款已入帳",
		"",
	)

	ErrGatewayFailure = NewBaseError(
		http.StatusBadGateway,
		"GATEWAY_FAILURE",
		"付款閘道錯誤，請稍後再試",
		"",
	)

	// Room / session errors
	ErrRoomNotFound = NewBaseError(
		http.StatusNotFound,
		"ROOM_NOT_FOUND",
		"找不到該包廂",
		"",
	)

	ErrRoomNumberTaken = NewBaseError(
		http.StatusConflict,
		"ROOM_NUMBER_TAKEN",
		"包廂編號已存在",
		"",
	)

	ErrRoomUnavailable = NewBaseError(
		http.StatusConflict,
		"ROOM_UNAVAILABLE",
		"包廂目前無法使用",
		"",
	)

	ErrRoomHasActiveSession = NewBaseError(
		http.StatusConflict,
		"ROOM_HAS_ACTIVE_SESSION",
		"包廂內仍有進行中的使用時段",
		"",
	)

	ErrSessionNotFound = NewBaseError(
		http.StatusNotFound,
		"SESSION_NOT_FOUND",
		"找不到該使用時段",
		"",
	)

	ErrSessionAlreadyActive = NewBaseError(
		http.StatusConflict,
		"SESSION_ALREADY_ACTIVE",
		"您已有進行中的使用時段",
		"",
	)

	ErrSessionNotActive = NewBaseError(
		http.StatusConflict,
		"SESSION_NOT_ACTIVE",
		"該使用時段已結束",
		"",
	)

	ErrInvalidQRToken = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QR_TOKEN",
		"無效的 QR Code",
		"",
	)

	// Menu / order errors
	ErrMenuItemNotFound = NewBaseError(
		http.StatusNotFound,
		"MENU_ITEM_NOT_FOUND",
		"找不到該餐點",
		"",
	)

	ErrMenuItemNameTaken = NewBaseError(
		http.StatusConflict,
		"MENU_ITEM_NAME_TAKEN",
		"餐點名稱已存在",
		"",
	)

	ErrItemUnavailable = NewBaseError(
		http.StatusBadRequest,
		"ITEM_UNAVAILABLE",
		"部分餐點目前無法供應",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"找不到該訂單",
		"",
	)

	ErrInvalidOrderTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_ORDER_TRANSITION",
		"訂單狀態無法如此變更",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"資料庫交易失敗",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"存取被拒絕",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"資源衝突",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "資料庫執行失敗"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
