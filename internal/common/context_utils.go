package common

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys for the authenticated caller. The auth middleware fills these;
// the engine only reads them.
type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// ErrorResponse is the JSON error payload all handlers return.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func SendValidationError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{
		Error:   "validation failed",
		Details: map[string]string{field: message},
	})
}

func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: message})
}

// SendEngineError renders a classified engine error with its mapped status.
// Unclassified errors are logged and surfaced generically, never swallowed.
func SendEngineError(c echo.Context, err error) error {
	status := HTTPStatus(err)
	if !IsClassified(err) {
		log.Printf("storage error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(status, &ErrorResponse{Error: "internal error"})
	}
	return c.JSON(status, &ErrorResponse{Error: err.Error()})
}

func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID", fieldName)
	}
	return id, nil
}

func ValidatePositiveInteger(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if maxValue > 0 && value > maxValue {
		return fmt.Errorf("%s must not exceed %d", fieldName, maxValue)
	}
	return nil
}

func ValidateRequiredString(value, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateClockTime checks an "HH:MM" clock time as used for booking windows.
func ValidateClockTime(value, fieldName string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%s must be a clock time in HH:MM form", fieldName)
	}
	return nil
}

// ValidateDateFormat checks a "YYYY-MM-DD" calendar date and returns it.
func ValidateDateFormat(dateStr, fieldName string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD form", fieldName)
	}
	return d, nil
}

func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
