package background

import (
	"context"
	"log"
	"sync"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the recurring background jobs
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc services.AnalyticsService
	cacheSvc     caching.CacheService
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(analyticsSvc services.AnalyticsService, cacheSvc caching.CacheService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		cacheSvc:     cacheSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Analytics refresh - every 5 minutes, so dashboard loads hit cache
	analyticsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboardAnalytics, context.Background()),
		gocron.WithName("dashboard-analytics-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create analytics job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["analytics"] = analyticsJob
		js.mu.Unlock()
	}

	// Cache health probe - every hour. Expired refresh tokens, sessions,
	// and drafts age out via their TTLs; this surfaces a broken KV store
	// in the logs before users do.
	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.probeCache, context.Background()),
		gocron.WithName("cache-health-probe"),
	)
	if err != nil {
		log.Printf("Failed to create cache probe job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["cache-probe"] = cacheJob
		js.mu.Unlock()
	}

	js.mu.RLock()
	log.Printf("Registered %d background jobs", len(js.jobs))
	js.mu.RUnlock()
}

// refreshDashboardAnalytics recomputes every supported time range.
func (js *JobScheduler) refreshDashboardAnalytics(ctx context.Context) {
	for _, timeRange := range []string{
		services.TimeRange7Days, services.TimeRange30Days,
		services.TimeRange90Days, services.TimeRange1Year,
	} {
		if _, err := js.analyticsSvc.Refresh(ctx, timeRange); err != nil {
			log.Printf("Analytics refresh failed for %s: %v", timeRange, err)
		}
	}
}

func (js *JobScheduler) probeCache(ctx context.Context) {
	if err := js.cacheSvc.Ping(ctx); err != nil {
		log.Printf("Cache health probe failed: %v", err)
	}
}
