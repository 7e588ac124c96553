package handlers

import (
	"net/http"
	"strconv"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers exposes the order lifecycle over HTTP. All consistency rules
// live in the service; handlers only parse, validate shape and render.
type OrderHandlers struct {
	orderService services.OrderServiceInterface
}

func NewOrderHandlers(orderService services.OrderServiceInterface) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req struct {
		GuestID   string                     `json:"guest_id"`
		TableID   *string                    `json:"table_id"`
		WaiterID  *string                    `json:"waiter_id"`
		BookingID *string                    `json:"booking_id"`
		Items     []models.OrderItemRequest  `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	guestID, err := common.ValidateUUID(req.GuestID, "guest_id")
	if err != nil {
		return common.SendValidationError(c, "guest_id", err.Error())
	}

	order := &models.Order{GuestID: guestID}
	if order.TableID, err = parseOptionalUUID(req.TableID, "table_id"); err != nil {
		return common.SendValidationError(c, "table_id", err.Error())
	}
	if order.WaiterID, err = parseOptionalUUID(req.WaiterID, "waiter_id"); err != nil {
		return common.SendValidationError(c, "waiter_id", err.Error())
	}
	if order.BookingID, err = parseOptionalUUID(req.BookingID, "booking_id"); err != nil {
		return common.SendValidationError(c, "booking_id", err.Error())
	}

	created, err := h.orderService.Create(c.Request().Context(), order, req.Items)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderService.GetByID(c.Request().Context(), orderID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	if guestParam := c.QueryParam("guest_id"); guestParam != "" {
		guestID, err := common.ValidateUUID(guestParam, "guest_id")
		if err != nil {
			return common.SendValidationError(c, "guest_id", err.Error())
		}
		orders, err := h.orderService.ListByGuest(c.Request().Context(), guestID, limit, offset)
		if err != nil {
			return common.SendEngineError(c, err)
		}
		return c.JSON(http.StatusOK, orders)
	}

	orders, err := h.orderService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// SearchOrders handles GET /orders/search?guest=...&dish=...
func (h *OrderHandlers) SearchOrders(c echo.Context) error {
	guestName := c.QueryParam("guest")
	dishName := c.QueryParam("dish")
	if guestName == "" && dishName == "" {
		return common.SendClientError(c, "at least one of guest or dish is required")
	}

	rows, err := h.orderService.Search(c.Request().Context(), guestName, dishName)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// ListOrderItems handles GET /orders/:id/items
func (h *OrderHandlers) ListOrderItems(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	items, err := h.orderService.Items(c.Request().Context(), orderID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddOrderItem handles POST /orders/:id/items
func (h *OrderHandlers) AddOrderItem(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.OrderItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if req.DishID == uuid.Nil {
		return common.SendValidationError(c, "dish_id", "dish_id is required")
	}

	order, err := h.orderService.AddItem(c.Request().Context(), orderID, req.DishID, req.Quantity)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateOrderItem handles PUT /orders/:id/items/:dish_id
func (h *OrderHandlers) UpdateOrderItem(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	dishID, err := common.ValidateUUID(c.Param("dish_id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "dish_id", err.Error())
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	order, err := h.orderService.UpdateItem(c.Request().Context(), orderID, dishID, req.Quantity)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// RemoveOrderItem handles DELETE /orders/:id/items/:dish_id
func (h *OrderHandlers) RemoveOrderItem(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}
	dishID, err := common.ValidateUUID(c.Param("dish_id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "dish_id", err.Error())
	}

	order, err := h.orderService.RemoveItem(c.Request().Context(), orderID, dishID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ConsumeOrder handles POST /orders/:id/consume
func (h *OrderHandlers) ConsumeOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderService.ConsumeProducts(c.Request().Context(), orderID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// PayOrder handles POST /orders/:id/pay
func (h *OrderHandlers) PayOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderService.Pay(c.Request().Context(), orderID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// CancelOrder handles POST /orders/:id/cancel
func (h *OrderHandlers) CancelOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderService.Cancel(c.Request().Context(), orderID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.orderService.Delete(c.Request().Context(), orderID); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseOptionalUUID(value *string, fieldName string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := common.ValidateUUID(*value, fieldName)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
