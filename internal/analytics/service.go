package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/common"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reportCacheTTL = 5 * time.Minute

// AnalyticsService computes reporting aggregates straight from the ledger
// tables and caches the JSON payloads in redis.
type AnalyticsService struct {
	db           repositories.DBTX
	cacheService caching.CacheService
}

func NewAnalyticsService(db repositories.DBTX, cacheService caching.CacheService) *AnalyticsService {
	return &AnalyticsService{db: db, cacheService: cacheService}
}

// RevenueReport is the paid-order turnover for a date range.
type RevenueReport struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// DishSalesRow is how many units of one dish were sold and for how much,
// across consumed and paid orders.
type DishSalesRow struct {
	DishID      uuid.UUID       `json:"dish_id"`
	DishName    string          `json:"dish_name"`
	UnitsSold   int64           `json:"units_sold"`
	SalesAmount decimal.Decimal `json:"sales_amount"`
	AvgPrice    decimal.Decimal `json:"avg_price"`
}

// GuestStatsRow summarizes one guest's loyalty standing.
type GuestStatsRow struct {
	GuestID       uuid.UUID       `json:"guest_id"`
	LastName      string          `json:"last_name"`
	FirstName     string          `json:"first_name"`
	TotalOrders   int             `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	AvgCheck      decimal.Decimal `json:"avg_check"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
}

// Revenue sums paid-order totals whose order_time falls in [from, to).
func (s *AnalyticsService) Revenue(ctx context.Context, from, to time.Time) (*RevenueReport, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: report range is empty", common.ErrInvalidArgument)
	}

	cacheKey := fmt.Sprintf("revenue:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if report := getCached[RevenueReport](ctx, s.cacheService, cacheKey); report != nil {
		return report, nil
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = 'paid' AND order_time >= $1 AND order_time < $2
	`
	report := &RevenueReport{From: from, To: to}
	err := s.db.QueryRow(ctx, query, from, to).Scan(&report.OrderCount, &report.Revenue)
	if err != nil {
		return nil, common.ClassifyDBError("revenue report", err)
	}

	s.putCached(ctx, cacheKey, report)
	return report, nil
}

// DishSales aggregates units and turnover per dish over all consumed and
// paid orders, best sellers first.
func (s *AnalyticsService) DishSales(ctx context.Context) ([]*DishSalesRow, error) {
	const cacheKey = "dish-sales"
	if rows := getCached[[]*DishSalesRow](ctx, s.cacheService, cacheKey); rows != nil {
		return *rows, nil
	}

	query := `
		SELECT d.id, d.name, COALESCE(SUM(oi.quantity), 0),
		       COALESCE(SUM(oi.quantity * oi.unit_price), 0),
		       COALESCE(SUM(oi.quantity * oi.unit_price) / NULLIF(SUM(oi.quantity), 0), 0)
		FROM dishes d
		JOIN order_items oi ON oi.dish_id = d.id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status IN ('consumed', 'paid')
		GROUP BY d.id, d.name
		ORDER BY SUM(oi.quantity * oi.unit_price) DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, common.ClassifyDBError("dish sales report", err)
	}
	defer rows.Close()

	var result []*DishSalesRow
	for rows.Next() {
		row := &DishSalesRow{}
		if err := rows.Scan(&row.DishID, &row.DishName, &row.UnitsSold,
			&row.SalesAmount, &row.AvgPrice); err != nil {
			return nil, common.ClassifyDBError("dish sales report", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ClassifyDBError("dish sales report", err)
	}

	s.putCached(ctx, cacheKey, &result)
	return result, nil
}

// GuestStatistics lists the top guests by paid turnover.
func (s *AnalyticsService) GuestStatistics(ctx context.Context, limit int) ([]*GuestStatsRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("guest-stats:%d", limit)
	if rows := getCached[[]*GuestStatsRow](ctx, s.cacheService, cacheKey); rows != nil {
		return *rows, nil
	}

	query := `
		SELECT g.id, g.last_name, g.first_name, g.total_orders, g.total_discount,
		       COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'paid'), 0) AS total_spent,
		       COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'paid')
		                / NULLIF(COUNT(o.id) FILTER (WHERE o.status = 'paid'), 0), 0) AS avg_check
		FROM guests g
		LEFT JOIN orders o ON o.guest_id = g.id
		GROUP BY g.id, g.last_name, g.first_name, g.total_orders, g.total_discount
		ORDER BY total_spent DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, common.ClassifyDBError("guest statistics report", err)
	}
	defer rows.Close()

	var result []*GuestStatsRow
	for rows.Next() {
		row := &GuestStatsRow{}
		if err := rows.Scan(&row.GuestID, &row.LastName, &row.FirstName,
			&row.TotalOrders, &row.TotalDiscount, &row.TotalSpent, &row.AvgCheck); err != nil {
			return nil, common.ClassifyDBError("guest statistics report", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, common.ClassifyDBError("guest statistics report", err)
	}

	s.putCached(ctx, cacheKey, &result)
	return result, nil
}

// InvalidateReportCache drops all cached report payloads; the jobs layer
// calls it after bulk data changes.
func (s *AnalyticsService) InvalidateReportCache(ctx context.Context) error {
	return s.cacheService.InvalidateReports(ctx)
}

func getCached[T any](ctx context.Context, cache caching.CacheService, key string) *T {
	data, err := cache.GetReport(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}
	return &value
}

func (s *AnalyticsService) putCached(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheService.SetReport(ctx, key, data, reportCacheTTL); err != nil {
		log.Printf("WARN: failed to cache report %s: %v", key, err)
	}
}
