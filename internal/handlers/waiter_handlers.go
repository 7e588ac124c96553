package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WaiterHandlers struct {
	waiters repositories.WaiterRepository
}

func NewWaiterHandlers(waiters repositories.WaiterRepository) *WaiterHandlers {
	return &WaiterHandlers{waiters: waiters}
}

type waiterRequest struct {
	LastName   string  `json:"last_name"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	Salary     *string `json:"salary"`
}

func (h *WaiterHandlers) bindWaiter(c echo.Context, req *waiterRequest) (*models.Waiter, error) {
	if err := common.ValidateRequiredString(req.LastName, "last_name"); err != nil {
		return nil, common.SendValidationError(c, "last_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.FirstName, "first_name"); err != nil {
		return nil, common.SendValidationError(c, "first_name", err.Error())
	}

	waiter := &models.Waiter{
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
	}
	if req.Salary != nil && *req.Salary != "" {
		salary, err := decimal.NewFromString(*req.Salary)
		if err != nil {
			return nil, common.SendValidationError(c, "salary", "salary must be a decimal number")
		}
		waiter.Salary = &salary
	}
	return waiter, nil
}

// CreateWaiter handles POST /waiters
func (h *WaiterHandlers) CreateWaiter(c echo.Context) error {
	var req waiterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	waiter, respErr := h.bindWaiter(c, &req)
	if waiter == nil {
		return respErr
	}
	waiter.ID = uuid.New()

	if err := h.waiters.Create(c.Request().Context(), waiter); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("create waiter", err))
	}
	return c.JSON(http.StatusCreated, waiter)
}

// GetWaiter handles GET /waiters/:id
func (h *WaiterHandlers) GetWaiter(c echo.Context) error {
	waiterID, err := common.ValidateUUID(c.Param("id"), "waiter id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	waiter, err := h.waiters.GetByID(c.Request().Context(), waiterID)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get waiter", err))
	}
	return c.JSON(http.StatusOK, waiter)
}

// UpdateWaiter handles PUT /waiters/:id
func (h *WaiterHandlers) UpdateWaiter(c echo.Context) error {
	waiterID, err := common.ValidateUUID(c.Param("id"), "waiter id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req waiterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	waiter, respErr := h.bindWaiter(c, &req)
	if waiter == nil {
		return respErr
	}
	waiter.ID = waiterID

	if _, err := h.waiters.GetByID(c.Request().Context(), waiterID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get waiter", err))
	}
	if err := h.waiters.Update(c.Request().Context(), waiter); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("update waiter", err))
	}
	return c.JSON(http.StatusOK, waiter)
}

// DeleteWaiter handles DELETE /waiters/:id
func (h *WaiterHandlers) DeleteWaiter(c echo.Context) error {
	waiterID, err := common.ValidateUUID(c.Param("id"), "waiter id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.waiters.GetByID(c.Request().Context(), waiterID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get waiter", err))
	}
	if err := h.waiters.Delete(c.Request().Context(), waiterID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("delete waiter", err))
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWaiters handles GET /waiters
func (h *WaiterHandlers) ListWaiters(c echo.Context) error {
	waiters, err := h.waiters.List(c.Request().Context())
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("list waiters", err))
	}
	return c.JSON(http.StatusOK, waiters)
}
