package handlers

import (
	"net/http"
	"strconv"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type GuestHandlers struct {
	guests repositories.GuestRepository
}

func NewGuestHandlers(guests repositories.GuestRepository) *GuestHandlers {
	return &GuestHandlers{guests: guests}
}

type guestRequest struct {
	LastName   string  `json:"last_name"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	BirthDate  *string `json:"birth_date"`
}

func (h *GuestHandlers) bindGuest(c echo.Context, req *guestRequest) (*models.Guest, error) {
	if err := common.ValidateRequiredString(req.LastName, "last_name"); err != nil {
		return nil, common.SendValidationError(c, "last_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return nil, common.SendValidationError(c, "first_name", err.Error())
	}

	guest := &models.Guest{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		birthDate, err := common.ValidateDateFormat(*req.BirthDate, "birth_date")
		if err != nil {
			return nil, common.SendValidationError(c, "birth_date", err.Error())
		}
		guest.BirthDate = &birthDate
	}
	return guest, nil
}

// CreateGuest handles POST /guests
func (h *GuestHandlers) CreateGuest(c echo.Context) error {
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	guest, respErr := h.bindGuest(c, &req)
	if guest == nil {
		return respErr
	}
	guest.ID = uuid.New()

	if err := h.guests.Create(c.Request().Context(), guest); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("create guest", err))
	}
	return c.JSON(http.StatusCreated, guest)
}

// GetGuest handles GET /guests/:id
func (h *GuestHandlers) GetGuest(c echo.Context) error {
	guestID, err := common.ValidateUUID(c.Param("id"), "guest id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	guest, err := h.guests.GetByID(c.Request().Context(), guestID)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get guest", err))
	}
	return c.JSON(http.StatusOK, guest)
}

// UpdateGuest handles PUT /guests/:id. Loyalty counters are not editable;
// they only move when orders are paid.
func (h *GuestHandlers) UpdateGuest(c echo.Context) error {
	guestID, err := common.ValidateUUID(c.Param("id"), "guest id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	guest, respErr := h.bindGuest(c, &req)
	if guest == nil {
		return respErr
	}
	guest.ID = guestID

	if _, err := h.guests.GetByID(c.Request().Context(), guestID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get guest", err))
	}
	if err := h.guests.Update(c.Request().Context(), guest); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("update guest", err))
	}

	updated, err := h.guests.GetByID(c.Request().Context(), guestID)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get guest", err))
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteGuest handles DELETE /guests/:id
func (h *GuestHandlers) DeleteGuest(c echo.Context) error {
	guestID, err := common.ValidateUUID(c.Param("id"), "guest id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.guests.GetByID(c.Request().Context(), guestID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get guest", err))
	}
	if err := h.guests.Delete(c.Request().Context(), guestID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("delete guest", err))
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGuests handles GET /guests
func (h *GuestHandlers) ListGuests(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	guests, err := h.guests.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("list guests", err))
	}
	return c.JSON(http.StatusOK, guests)
}
