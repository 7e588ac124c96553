package handlers

import (
	"net/http"
	"strconv"

	"restomart/internal/analytics"
	"restomart/internal/common"

	"github.com/labstack/echo/v4"
)

type ReportHandlers struct {
	analyticsService *analytics.AnalyticsService
}

func NewReportHandlers(analyticsService *analytics.AnalyticsService) *ReportHandlers {
	return &ReportHandlers{analyticsService: analyticsService}
}

// Revenue handles GET /reports/revenue?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandlers) Revenue(c echo.Context) error {
	from, err := common.ValidateDateFormat(c.QueryParam("from"), "from")
	if err != nil {
		return common.SendValidationError(c, "from", err.Error())
	}
	to, err := common.ValidateDateFormat(c.QueryParam("to"), "to")
	if err != nil {
		return common.SendValidationError(c, "to", err.Error())
	}

	report, err := h.analyticsService.Revenue(c.Request().Context(), from, to)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// DishSales handles GET /reports/dish-sales
func (h *ReportHandlers) DishSales(c echo.Context) error {
	rows, err := h.analyticsService.DishSales(c.Request().Context())
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GuestStatistics handles GET /reports/guest-statistics?limit=50
func (h *ReportHandlers) GuestStatistics(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	rows, err := h.analyticsService.GuestStatistics(c.Request().Context(), limit)
	if err != nil {
		return common.SendEngineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
