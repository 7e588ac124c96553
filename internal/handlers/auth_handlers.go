package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if req.Login == "" || req.Password == "" {
		return common.SendClientError(c, "login and password are required")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         user,
	})
}

// Register handles POST /auth/register (admin only)
func (h *AuthHandlers) Register(c echo.Context) error {
	var req struct {
		Login    string  `json:"login"`
		Password string  `json:"password"`
		Role     string  `json:"role"`
		GuestID  *string `json:"guest_id"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	var guestID *uuid.UUID
	if req.GuestID != nil && *req.GuestID != "" {
		id, err := common.ValidateUUID(*req.GuestID, "guest_id")
		if err != nil {
			return common.SendValidationError(c, "guest_id", err.Error())
		}
		guestID = &id
	}

	user, err := h.authService.Register(c.Request().Context(), req.Login, req.Password, req.Role, guestID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	userID, ok := common.GetUserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
