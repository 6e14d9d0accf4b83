package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	tokendomain "github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ValidationError carries one field-level failure through the envelope.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorHandlingMiddleware maps the last error pushed onto the gin context to
// the response envelope. Handlers push errors via AbortWithError and never
// build failure payloads themselves.
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

		code, message, fields := mapError(lastErr.Err)
		var data any
		if len(fields) > 0 {
			data = gin.H{"errors": fields}
		}
		respond(c, code, data, message)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string, []ValidationError) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal server error", nil

	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, accountdomain.ErrInvalidCredentials),
		errors.Is(err, tokendomain.ErrTokenInvalid),
		errors.Is(err, tokendomain.ErrTokenExpired),
		errors.Is(err, tokendomain.ErrWrongAbility):
		return http.StatusUnauthorized, "unauthenticated", nil

	case errors.Is(err, ErrForbidden),
		errors.Is(err, tenantdomain.ErrTenantInactive),
		errors.Is(err, tenantdomain.ErrSubscriptionDue):
		return http.StatusForbidden, "forbidden", nil

	case errors.Is(err, accountdomain.ErrUserNotFound),
		errors.Is(err, tenantdomain.ErrNotFound),
		errors.Is(err, restaurantdomain.ErrNotFound),
		errors.Is(err, menudomain.ErrCategoryNotFound),
		errors.Is(err, menudomain.ErrItemNotFound),
		errors.Is(err, tabledomain.ErrNotFound),
		errors.Is(err, tabledomain.ErrCategoryNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "not found", nil
	}

	if field, message, ok := validationField(err); ok {
		return http.StatusUnprocessableEntity, "validation error", []ValidationError{
			{Field: field, Message: message},
		}
	}

	return http.StatusInternalServerError, "internal server error", nil
}

func validationField(err error) (string, string, bool) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "request", "request body is invalid", true
	case errors.Is(err, accountdomain.ErrInvalidEmail):
		return "email", "email is invalid", true
	case errors.Is(err, accountdomain.ErrInvalidPassword):
		return "password", "password must be at least 8 characters", true
	case errors.Is(err, accountdomain.ErrInvalidRole):
		return "role", "role is invalid", true
	case errors.Is(err, accountdomain.ErrUserExists):
		return "email", "email is already taken", true
	case errors.Is(err, tenantdomain.ErrInvalidName),
		errors.Is(err, restaurantdomain.ErrInvalidName),
		errors.Is(err, menudomain.ErrInvalidName),
		errors.Is(err, tabledomain.ErrInvalidName):
		return "name", "name is required", true
	case errors.Is(err, tenantdomain.ErrInvalidPlan):
		return "plan", "plan is invalid", true
	case errors.Is(err, tenantdomain.ErrSlugTaken):
		return "name", "name is already taken", true
	case errors.Is(err, tenantdomain.ErrDomainTaken):
		return "domain", "domain is already taken", true
	case errors.Is(err, restaurantdomain.ErrSlugTaken),
		errors.Is(err, menudomain.ErrSlugTaken):
		return "name", "name is already in use", true
	case errors.Is(err, restaurantdomain.ErrInvalidCuisine):
		return "cuisine_type", "cuisine type is invalid", true
	case errors.Is(err, menudomain.ErrInvalidPrice):
		return "price", "price must not be negative", true
	case errors.Is(err, menudomain.ErrInvalidSpice):
		return "spice_level", "spice level must be between 0 and 5", true
	case errors.Is(err, tabledomain.ErrInvalidCapacity):
		return "capacity", "capacity must be at least 1", true
	case errors.Is(err, tabledomain.ErrInvalidStatus):
		return "status", "status is invalid", true
	case errors.Is(err, tabledomain.ErrNameTaken):
		return "name", "a table with this name already exists", true
	default:
		return "", "", false
	}
}
