// Package httpx carries the uniform error envelope shared by handlers and
// middleware: {"error":{"message","code","details?"}}.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Machine-readable error codes, enumerated per route group.
const (
	CodeMissingToken      = "MISSING_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMissingAuth       = "MISSING_AUTH"
	CodeInsufficientPerms = "INSUFFICIENT_PERMISSIONS"
	CodeAccessDenied      = "ACCESS_DENIED"
	CodeMissingCreds      = "MISSING_CREDENTIALS"
	CodeInvalidCreds      = "INVALID_CREDENTIALS"

	CodeMissingFields    = "MISSING_REQUIRED_FIELDS"
	CodeInvalidEmail     = "INVALID_EMAIL"
	CodeInvalidDate      = "INVALID_DATE"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeInvalidLeaveType = "INVALID_LEAVE_TYPE"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeInvalidMonth     = "INVALID_MONTH"
	CodeInvalidNumeric   = "INVALID_NUMERIC_VALUE"
	CodeMissingDate      = "MISSING_DATE"
	CodeMissingStartDate = "MISSING_START_DATE"
	CodeNoUpdates        = "NO_UPDATES"
	CodePasswordTooShort = "PASSWORD_TOO_SHORT"

	CodeCompanyExists     = "COMPANY_EXISTS"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
	CodeDuplicateCheckin  = "DUPLICATE_CHECKIN"
	CodeAlreadyCheckedOut = "ALREADY_CHECKEDOUT"
	CodeNoCheckin         = "NO_CHECKIN"
	CodeDuplicatePayroll  = "DUPLICATE_PAYROLL"

	CodeCompanyNotFound = "COMPANY_NOT_FOUND"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeLeaveNotFound   = "LEAVE_NOT_FOUND"
	CodePayrollNotFound = "PAYROLL_NOT_FOUND"

	CodeRateLimited   = "RATE_LIMITED"
	CodeInternalError = "INTERNAL_ERROR"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type envelope struct {
	Error errorBody `json:"error"`
}

// Error writes the envelope and stops further handlers.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Error: errorBody{Message: message, Code: code}})
}

// ErrorDetails is Error with a details payload.
func ErrorDetails(c *gin.Context, status int, code, message string, details any) {
	c.AbortWithStatusJSON(status, envelope{Error: errorBody{Message: message, Code: code, Details: details}})
}

// Internal logs the underlying fault server-side and returns the generic
// envelope. Lower-layer detail must never reach the client.
func Internal(c *gin.Context, err error) {
	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	Error(c, http.StatusInternalServerError, CodeInternalError, "An error occurred processing your request")
}
