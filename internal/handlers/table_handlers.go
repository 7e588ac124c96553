package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TableHandlers manages the dining-table reference data straight over the
// repository; availability queries live in the booking handlers.
type TableHandlers struct {
	tables repositories.TableRepository
}

func NewTableHandlers(tables repositories.TableRepository) *TableHandlers {
	return &TableHandlers{tables: tables}
}

type tableRequest struct {
	TableNumber int    `json:"table_number"`
	Seats       int    `json:"seats"`
	Status      string `json:"status"`
}

func validateTableRequest(req *tableRequest) (string, string) {
	if req.TableNumber <= 0 {
		return "table_number", "table_number must be positive"
	}
	if req.Seats <= 0 {
		return "seats", "seats must be positive"
	}
	switch req.Status {
	case models.TableStatusFree, models.TableStatusOccupied, models.TableStatusReserved:
		return "", ""
	default:
		return "status", "status must be free, occupied or reserved"
	}
}

// CreateTable handles POST /tables
func (h *TableHandlers) CreateTable(c echo.Context) error {
	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if req.Status == "" {
		req.Status = models.TableStatusFree
	}
	if field, msg := validateTableRequest(&req); field != "" {
		return common.SendValidationError(c, field, msg)
	}

	table := &models.Table{
		ID:          uuid.New(),
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		Status:      req.Status,
	}
	if err := h.tables.Create(c.Request().Context(), table); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("create table", err))
	}
	return c.JSON(http.StatusCreated, table)
}

// GetTable handles GET /tables/:id
func (h *TableHandlers) GetTable(c echo.Context) error {
	tableID, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	table, err := h.tables.GetByID(c.Request().Context(), tableID)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get table", err))
	}
	return c.JSON(http.StatusOK, table)
}

// UpdateTable handles PUT /tables/:id
func (h *TableHandlers) UpdateTable(c echo.Context) error {
	tableID, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if field, msg := validateTableRequest(&req); field != "" {
		return common.SendValidationError(c, field, msg)
	}

	if _, err := h.tables.GetByID(c.Request().Context(), tableID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get table", err))
	}

	table := &models.Table{
		ID:          tableID,
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		Status:      req.Status,
	}
	if err := h.tables.Update(c.Request().Context(), table); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("update table", err))
	}
	return c.JSON(http.StatusOK, table)
}

// DeleteTable handles DELETE /tables/:id
func (h *TableHandlers) DeleteTable(c echo.Context) error {
	tableID, err := common.ValidateUUID(c.Param("id"), "table id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.tables.GetByID(c.Request().Context(), tableID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get table", err))
	}
	if err := h.tables.Delete(c.Request().Context(), tableID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("delete table", err))
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTables handles GET /tables
func (h *TableHandlers) ListTables(c echo.Context) error {
	tables, err := h.tables.List(c.Request().Context())
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("list tables", err))
	}
	return c.JSON(http.StatusOK, tables)
}
