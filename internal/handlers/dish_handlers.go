package handlers

import (
	"net/http"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type DishHandlers struct {
	catalogService services.CatalogServiceInterface
}

func NewDishHandlers(catalogService services.CatalogServiceInterface) *DishHandlers {
	return &DishHandlers{catalogService: catalogService}
}

type dishRequest struct {
	Name            string  `json:"name"`
	Category        *string `json:"category"`
	Price           string  `json:"price"`
	CountryOfOrigin *string `json:"country_of_origin"`
}

func (h *DishHandlers) bindDish(c echo.Context, req *dishRequest) (*models.Dish, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.SendValidationError(c, "name", err.Error())
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, common.SendValidationError(c, "price", "price must be a decimal number")
	}
	return &models.Dish{
		Name:            req.Name,
		Category:        req.Category,
		Price:           price,
		CountryOfOrigin: req.CountryOfOrigin,
	}, nil
}

// CreateDish handles POST /dishes
func (h *DishHandlers) CreateDish(c echo.Context) error {
	var req dishRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	dish, respErr := h.bindDish(c, &req)
	if dish == nil {
		return respErr
	}

	created, err := h.catalogService.CreateDish(c.Request().Context(), dish)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetDish handles GET /dishes/:id
func (h *DishHandlers) GetDish(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	dish, err := h.catalogService.GetDish(c.Request().Context(), dishID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, dish)
}

// UpdateDish handles PUT /dishes/:id
func (h *DishHandlers) UpdateDish(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req dishRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	dish, respErr := h.bindDish(c, &req)
	if dish == nil {
		return respErr
	}
	dish.ID = dishID

	updated, err := h.catalogService.UpdateDish(c.Request().Context(), dish)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteDish handles DELETE /dishes/:id
func (h *DishHandlers) DeleteDish(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.catalogService.DeleteDish(c.Request().Context(), dishID); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListDishes handles GET /dishes
func (h *DishHandlers) ListDishes(c echo.Context) error {
	dishes, err := h.catalogService.ListDishes(c.Request().Context())
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, dishes)
}

// GetRecipe handles GET /dishes/:id/recipe
func (h *DishHandlers) GetRecipe(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	lines, err := h.catalogService.GetRecipe(c.Request().Context(), dishID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, lines)
}

// ReplaceRecipe handles PUT /dishes/:id/recipe
func (h *DishHandlers) ReplaceRecipe(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Lines []struct {
			ProductID string `json:"product_id"`
			Amount    string `json:"amount"`
		} `json:"lines"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	lines := make([]*models.RecipeLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		productID, err := common.ValidateUUID(l.ProductID, "product_id")
		if err != nil {
			return common.SendValidationError(c, "product_id", err.Error())
		}
		amount, err := decimal.NewFromString(l.Amount)
		if err != nil {
			return common.SendValidationError(c, "amount", "amount must be a decimal number")
		}
		lines = append(lines, &models.RecipeLine{DishID: dishID, ProductID: productID, Amount: amount})
	}

	if err := h.catalogService.ReplaceRecipe(c.Request().Context(), dishID, lines); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPhoto handles POST /dishes/:id/photo (multipart form, field "photo")
func (h *DishHandlers) UploadPhoto(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return common.SendValidationError(c, "photo", "photo file is required")
	}
	src, err := file.Open()
	if err != nil {
		return common.SendClientError(c, "cannot read uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := h.catalogService.UploadDishPhoto(c.Request().Context(), dishID,
		file.Filename, src, file.Size, contentType); err != nil {
		return common.SendEngineError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPhotoURL handles GET /dishes/:id/photo-url
func (h *DishHandlers) GetPhotoURL(c echo.Context) error {
	dishID, err := common.ValidateUUID(c.Param("id"), "dish id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	url, err := h.catalogService.DishPhotoURL(c.Request().Context(), dishID)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
