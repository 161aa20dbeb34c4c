package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sitetrack/sitetrack/internal/authorization"
	ledgerdomain "github.com/sitetrack/sitetrack/internal/ledger/domain"
	materialdomain "github.com/sitetrack/sitetrack/internal/material/domain"
	projectdomain "github.com/sitetrack/sitetrack/internal/project/domain"
	supplierdomain "github.com/sitetrack/sitetrack/internal/supplier/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authorization.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictErrorMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ledgerdomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, ErrInternal):
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ledgerdomain.ErrInvalidQuantity),
		errors.Is(err, ledgerdomain.ErrInvalidTransactionType),
		errors.Is(err, ledgerdomain.ErrInvalidInput):
		return true
	case isProjectValidationError(err),
		isSupplierValidationError(err),
		isMaterialValidationError(err):
		return true
	default:
		return false
	}
}

func isProjectValidationError(err error) bool {
	switch {
	case errors.Is(err, projectdomain.ErrInvalidUser),
		errors.Is(err, projectdomain.ErrInvalidName),
		errors.Is(err, projectdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isSupplierValidationError(err error) bool {
	switch {
	case errors.Is(err, supplierdomain.ErrInvalidName),
		errors.Is(err, supplierdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isMaterialValidationError(err error) bool {
	switch {
	case errors.Is(err, materialdomain.ErrInvalidProject),
		errors.Is(err, materialdomain.ErrInvalidName),
		errors.Is(err, materialdomain.ErrInvalidUnit),
		errors.Is(err, materialdomain.ErrInvalidMinLevel),
		errors.Is(err, materialdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

// Access denial inside a project is reported as not found so callers
// cannot probe which material IDs exist.
func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ledgerdomain.ErrMaterialNotFound),
		errors.Is(err, ledgerdomain.ErrAccessDenied),
		errors.Is(err, projectdomain.ErrNotFound),
		errors.Is(err, supplierdomain.ErrNotFound),
		errors.Is(err, materialdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, ledgerdomain.ErrInsufficientStock),
		errors.Is(err, ledgerdomain.ErrNegativeStock),
		errors.Is(err, ledgerdomain.ErrConcurrentModification),
		errors.Is(err, materialdomain.ErrNameTaken):
		return true
	default:
		return false
	}
}

func conflictErrorMessage(err error) string {
	var insufficient *ledgerdomain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return insufficient.Error()
	}
	switch {
	case errors.Is(err, ledgerdomain.ErrInsufficientStock):
		return "insufficient stock"
	case errors.Is(err, ledgerdomain.ErrNegativeStock):
		return "stock cannot become negative"
	case errors.Is(err, ledgerdomain.ErrConcurrentModification):
		return "concurrent modification"
	case errors.Is(err, materialdomain.ErrNameTaken):
		return "material name already in use"
	default:
		return "conflict"
	}
}

func validationErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return err.Error()
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_request":
		return "invalid request"
	case "invalid_quantity":
		return "quantity must be positive"
	case "invalid_transaction_type":
		return "unknown transaction type"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog labels a failed request for the access log.
func classifyErrorForLog(err error) (string, string) {
	switch {
	case err == nil:
		return "", ""
	case asValidationErrors(err) != nil:
		code := "invalid_request"
		if vErr := asValidationErrors(err); len(vErr.Errors) > 0 {
			code = vErr.Errors[0].Code
		}
		return "validation_error", code
	case isValidationError(err):
		return "validation_error", validationErrorCode(err)
	case isNotFoundError(err):
		return "not_found", "not_found"
	case isConflictError(err):
		return "conflict", "conflict"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited", "rate_limited"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized", "unauthorized"
	case errors.Is(err, ErrForbidden), errors.Is(err, authorization.ErrForbidden):
		return "forbidden", "forbidden"
	default:
		return "internal_error", "internal_error"
	}
}
