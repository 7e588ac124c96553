package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SupplierHandlers struct {
	suppliers repositories.SupplierRepository
}

func NewSupplierHandlers(suppliers repositories.SupplierRepository) *SupplierHandlers {
	return &SupplierHandlers{suppliers: suppliers}
}

type supplierRequest struct {
	Name          string  `json:"name"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

// CreateSupplier handles POST /suppliers
func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	supplier := &models.Supplier{
		ID:            uuid.New(),
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}
	if err := h.suppliers.Create(c.Request().Context(), supplier); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("create supplier", err))
	}
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier handles GET /suppliers/:id
func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	supplier, err := h.suppliers.GetByID(c.Request().Context(), supplierID)
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get supplier", err))
	}
	return c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier handles PUT /suppliers/:id
func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	if _, err := h.suppliers.GetByID(c.Request().Context(), supplierID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get supplier", err))
	}

	supplier := &models.Supplier{
		ID:            supplierID,
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}
	if err := h.suppliers.Update(c.Request().Context(), supplier); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("update supplier", err))
	}
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles DELETE /suppliers/:id
func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	supplierID, err := common.ValidateUUID(c.Param("id"), "supplier id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if _, err := h.suppliers.GetByID(c.Request().Context(), supplierID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("get supplier", err))
	}
	if err := h.suppliers.Delete(c.Request().Context(), supplierID); err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("delete supplier", err))
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSuppliers handles GET /suppliers
func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	suppliers, err := h.suppliers.List(c.Request().Context())
	if err != nil {
		return common.SendEngineError(c, common.ClassifyDBError("list suppliers", err))
	}
	return c.JSON(http.StatusOK, suppliers)
}
