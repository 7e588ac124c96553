package background

import (
	"context"
	"log"
	"sync"
	"time"

	"restomart/internal/analytics"
	"restomart/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/shopspring/decimal"
)

const (
	expiryHorizon     = 72 * time.Hour
	lowStockThreshold = "10"
)

// JobScheduler runs the periodic back-office jobs: expiry alerts, low-stock
// alerts and report cache refresh.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.AnalyticsService
	productRepo  repositories.ProductRepository
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(analyticsSvc *analytics.AnalyticsService, productRepo repositories.ProductRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		productRepo:  productRepo,
		jobs:         make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	reportJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshReportCache, context.Background()),
		gocron.WithName("report-cache-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create report refresh job: %v", err)
	} else {
		js.jobs["report-cache-refresh"] = reportJob
	}

	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.processExpiryAlerts),
		gocron.WithName("product-expiry-alerts"),
	)
	if err != nil {
		log.Printf("Failed to create expiry alerts job: %v", err)
	} else {
		js.jobs["product-expiry-alerts"] = expiryJob
	}

	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processLowStockAlerts),
		gocron.WithName("low-stock-alerts"),
	)
	if err != nil {
		log.Printf("Failed to create low-stock alerts job: %v", err)
	} else {
		js.jobs["low-stock-alerts"] = lowStockJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshReportCache recomputes the standing reports so dashboards read warm
// cache entries.
func (js *JobScheduler) refreshReportCache(ctx context.Context) error {
	if err := js.analyticsSvc.InvalidateReportCache(ctx); err != nil {
		log.Printf("Failed to invalidate report cache: %v", err)
		return err
	}
	if _, err := js.analyticsSvc.DishSales(ctx); err != nil {
		log.Printf("Failed to refresh dish sales report: %v", err)
	}
	if _, err := js.analyticsSvc.GuestStatistics(ctx, 50); err != nil {
		log.Printf("Failed to refresh guest statistics report: %v", err)
	}
	return nil
}

// processExpiryAlerts flags products that expire inside the horizon.
func (js *JobScheduler) processExpiryAlerts() error {
	cutoff := time.Now().Add(expiryHorizon)
	products, err := js.productRepo.ListExpiringBefore(context.Background(), cutoff)
	if err != nil {
		log.Printf("Failed to list expiring products: %v", err)
		return err
	}
	for _, product := range products {
		log.Printf("ALERT: product %q expires %s", product.Name, product.ExpiryDate.Format("2006-01-02"))
	}
	return nil
}

// processLowStockAlerts flags products at or below the threshold.
func (js *JobScheduler) processLowStockAlerts() error {
	threshold := decimal.RequireFromString(lowStockThreshold)
	products, err := js.productRepo.ListBelowQuantity(context.Background(), threshold)
	if err != nil {
		log.Printf("Failed to list low-stock products: %v", err)
		return err
	}
	if len(products) > 0 {
		log.Printf("ALERT: %d products at or below quantity %s", len(products), lowStockThreshold)
	}
	return nil
}

// GetJobStatus reports the registered job names for the health endpoint.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}
