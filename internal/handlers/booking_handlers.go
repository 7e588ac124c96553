package handlers

import (
	"net/http"
	"strconv"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
)

type BookingHandlers struct {
	bookingService services.BookingServiceInterface
}

func NewBookingHandlers(bookingService services.BookingServiceInterface) *BookingHandlers {
	return &BookingHandlers{bookingService: bookingService}
}

type bookingRequest struct {
	TableID      string `json:"table_id"`
	GuestID      string `json:"guest_id"`
	BookingDate  string `json:"booking_date"`
	GuestsCount  int    `json:"guests_count"`
	BookingStart string `json:"booking_start"`
	BookingEnd   string `json:"booking_end"`
}

func (h *BookingHandlers) bindBooking(c echo.Context, req *bookingRequest) (*models.Booking, error) {
	booking := &models.Booking{
		GuestsCount:  req.GuestsCount,
		BookingStart: req.BookingStart,
		BookingEnd:   req.BookingEnd,
	}

	tableID, err := common.ValidateUUID(req.TableID, "table_id")
	if err != nil {
		return nil, common.SendValidationError(c, "table_id", err.Error())
	}
	booking.TableID = tableID

	guestID, err := common.ValidateUUID(req.GuestID, "guest_id")
	if err != nil {
		return nil, common.SendValidationError(c, "guest_id", err.Error())
	}
	booking.GuestID = guestID

	date, err := common.ValidateDateFormat(req.BookingDate, "booking_date")
	if err != nil {
		return nil, common.SendValidationError(c, "booking_date", err.Error())
	}
	booking.BookingDate = date

	return booking, nil
}

// CreateBooking handles POST /bookings
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	booking, respErr := h.bindBooking(c, &req)
	if booking == nil {
		return respErr
	}

	created, err := h.bookingService.Create(c.Request().Context(), booking)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateBooking handles PUT /bookings/:id
func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	bookingID, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	booking, respErr := h.bindBooking(c, &req)
	if booking == nil {
		return respErr
	}
	booking.ID = bookingID

	updated, err := h.bookingService.Update(c.Request().Context(), booking)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// GetBooking handles GET /bookings/:id
func (h *BookingHandlers) GetBooking(c echo.Context) error {
	bookingID, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	booking, err := h.bookingService.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /bookings/:id
func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	bookingID, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.bookingService.Delete(c.Request().Context(), bookingID); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBookings handles GET /bookings?date=YYYY-MM-DD
func (h *BookingHandlers) ListBookings(c echo.Context) error {
	date, err := common.ValidateDateFormat(c.QueryParam("date"), "date")
	if err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}

	bookings, err := h.bookingService.ListByDate(c.Request().Context(), date)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// FindFreeTables handles GET /tables/free?date=...&start=...&end=...&guests=...
func (h *BookingHandlers) FindFreeTables(c echo.Context) error {
	date, err := common.ValidateDateFormat(c.QueryParam("date"), "date")
	if err != nil {
		return common.SendValidationError(c, "date", err.Error())
	}
	guests, err := strconv.Atoi(c.QueryParam("guests"))
	if err != nil {
		return common.SendValidationError(c, "guests", "guests must be an integer")
	}

	tables, err := h.bookingService.FindFreeTables(c.Request().Context(), date,
		c.QueryParam("start"), c.QueryParam("end"), guests)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, tables)
}
