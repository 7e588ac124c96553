package handlers

import (
	"net/http"
	"strconv"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandlers struct {
	inventoryService services.InventoryServiceInterface
}

func NewProductHandlers(inventoryService services.InventoryServiceInterface) *ProductHandlers {
	return &ProductHandlers{inventoryService: inventoryService}
}

type productRequest struct {
	Name       string  `json:"name"`
	Weight     *string `json:"weight"`
	ExpiryDate *string `json:"expiry_date"`
	Quantity   string  `json:"quantity"`
	Category   *string `json:"category"`
}

func (h *ProductHandlers) bindProduct(c echo.Context, req *productRequest) (*models.Product, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.SendValidationError(c, "name", err.Error())
	}

	product := &models.Product{
		Name:     req.Name,
		Category: req.Category,
		Quantity: decimal.Zero,
	}

	if req.Quantity != "" {
		quantity, err := decimal.NewFromString(req.Quantity)
		if err != nil {
			return nil, common.SendValidationError(c, "quantity", "quantity must be a decimal number")
		}
		product.Quantity = quantity
	}
	if req.Weight != nil && *req.Weight != "" {
		weight, err := decimal.NewFromString(*req.Weight)
		if err != nil {
			return nil, common.SendValidationError(c, "weight", "weight must be a decimal number")
		}
		product.Weight = &weight
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		expiry, err := common.ValidateDateFormat(*req.ExpiryDate, "expiry_date")
		if err != nil {
			return nil, common.SendValidationError(c, "expiry_date", err.Error())
		}
		product.ExpiryDate = &expiry
	}
	return product, nil
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	product, respErr := h.bindProduct(c, &req)
	if product == nil {
		return respErr
	}

	created, err := h.inventoryService.Create(c.Request().Context(), product)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product, err := h.inventoryService.GetByID(c.Request().Context(), productID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id. Quantity is not editable here;
// it only moves through restock and consumption.
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	product, respErr := h.bindProduct(c, &req)
	if product == nil {
		return respErr
	}
	product.ID = productID

	updated, err := h.inventoryService.Update(c.Request().Context(), product)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.inventoryService.Delete(c.Request().Context(), productID); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	products, err := h.inventoryService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// RestockProduct handles POST /products/:id/restock
func (h *ProductHandlers) RestockProduct(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Amount string `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return common.SendValidationError(c, "amount", "amount must be a decimal number")
	}

	product, err := h.inventoryService.Restock(c.Request().Context(), productID, amount)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListExpiring handles GET /products/expiring?within_hours=72
func (h *ProductHandlers) ListExpiring(c echo.Context) error {
	withinHours := 72
	if param := c.QueryParam("within_hours"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed <= 0 {
			return common.SendValidationError(c, "within_hours", "within_hours must be a positive integer")
		}
		withinHours = parsed
	}

	products, err := h.inventoryService.ExpiringSoon(c.Request().Context(), time.Duration(withinHours)*time.Hour)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// ListLowStock handles GET /products/low-stock?threshold=10
func (h *ProductHandlers) ListLowStock(c echo.Context) error {
	threshold := decimal.NewFromInt(10)
	if param := c.QueryParam("threshold"); param != "" {
		parsed, err := decimal.NewFromString(param)
		if err != nil {
			return common.SendValidationError(c, "threshold", "threshold must be a decimal number")
		}
		threshold = parsed
	}

	products, err := h.inventoryService.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}
