package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"giftmart/internal/jobs"
	"giftmart/internal/services"
)

// JobScheduler owns the gocron scheduler and the recurring maintenance
// jobs: low stock alerts and shipping reference data refresh.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	lowStockSvc *jobs.LowStockAlertService
	shippingSvc services.ShippingServiceInterface
	jobHandles  map[string]gocron.Job
	mu          sync.RWMutex
}

func NewJobScheduler(lowStockSvc *jobs.LowStockAlertService, shippingSvc services.ShippingServiceInterface) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		lowStockSvc: lowStockSvc,
		shippingSvc: shippingSvc,
		jobHandles:  make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.lowStockSvc.ScheduledLowStockCheck, context.Background()),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock alerts job: %v", err)
	} else {
		js.jobHandles["low-stock-alerts"] = lowStockJob
	}

	shippingJob, err := js.scheduler.NewJob(
		gocron.DurationJob(12*time.Hour),
		gocron.NewTask(js.refreshShippingReferenceData),
		gocron.WithName("shipping-reference-refresh"),
	)
	if err != nil {
		log.Printf("Failed to create shipping reference job: %v", err)
	} else {
		js.jobHandles["shipping-reference-refresh"] = shippingJob
	}

	log.Printf("Registered %d background jobs", len(js.jobHandles))
}

// refreshShippingReferenceData keeps the province cache warm so the
// storefront address picker does not pay the carrier round trip.
func (js *JobScheduler) refreshShippingReferenceData() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provinces, err := js.shippingSvc.ListProvinces(ctx)
	if err != nil {
		log.Printf("Shipping reference refresh failed: %v", err)
		return
	}
	log.Printf("Shipping reference refresh completed: %d provinces cached", len(provinces))
}
