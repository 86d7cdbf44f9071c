package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bizboost/internal/caching"
	"bizboost/internal/repositories"
)

// Supported dashboard time ranges.
const (
	TimeRange7Days  = "7days"
	TimeRange30Days = "30days"
	TimeRange90Days = "90days"
	TimeRange1Year  = "1year"
)

var timeRangeDurations = map[string]time.Duration{
	TimeRange7Days:  7 * 24 * time.Hour,
	TimeRange30Days: 30 * 24 * time.Hour,
	TimeRange90Days: 90 * 24 * time.Hour,
	TimeRange1Year:  365 * 24 * time.Hour,
}

const analyticsCacheTTL = 5 * time.Minute

// TimeSeriesPoint is one bucket of the submissions-over-time chart.
type TimeSeriesPoint struct {
	Bucket        string `json:"bucket"`
	Registrations int    `json:"registrations"`
	Applications  int    `json:"applications"`
}

// DashboardAnalytics is the aggregate payload behind the admin dashboard.
type DashboardAnalytics struct {
	TimeRange          string            `json:"time_range"`
	TotalRegistrations int               `json:"total_registrations"`
	TotalApplications  int               `json:"total_applications"`
	RegistrationStatus map[string]int    `json:"registration_status_counts"`
	ApplicationStatus  map[string]int    `json:"application_status_counts"`
	BusinessCategories map[string]int    `json:"business_category_counts"`
	Series             []TimeSeriesPoint `json:"series"`
	GeneratedAt        time.Time         `json:"generated_at"`
}

type AnalyticsService interface {
	GetDashboard(ctx context.Context, timeRange string) (*DashboardAnalytics, error)
	Refresh(ctx context.Context, timeRange string) (*DashboardAnalytics, error)
}

type analyticsService struct {
	registrationRepo repositories.RegistrationRepository
	applicationRepo  repositories.ApplicationRepository
	businessRepo     repositories.BusinessRepository
	cacheSvc         caching.CacheService
}

func NewAnalyticsService(registrationRepo repositories.RegistrationRepository, applicationRepo repositories.ApplicationRepository, businessRepo repositories.BusinessRepository, cacheSvc caching.CacheService) AnalyticsService {
	return &analyticsService{
		registrationRepo: registrationRepo,
		applicationRepo:  applicationRepo,
		businessRepo:     businessRepo,
		cacheSvc:         cacheSvc,
	}
}

// GetDashboard serves from cache when possible and recomputes otherwise.
func (s *analyticsService) GetDashboard(ctx context.Context, timeRange string) (*DashboardAnalytics, error) {
	if _, ok := timeRangeDurations[timeRange]; !ok {
		return nil, fmt.Errorf("invalid time range: %s", timeRange)
	}

	cached := &DashboardAnalytics{}
	found, err := s.cacheSvc.GetJSON(ctx, "analytics:"+timeRange, cached)
	if err == nil && found {
		return cached, nil
	}
	return s.Refresh(ctx, timeRange)
}

// Refresh recomputes the aggregates for a range and stores them. The
// background scheduler calls this so dashboard loads mostly hit cache.
func (s *analyticsService) Refresh(ctx context.Context, timeRange string) (*DashboardAnalytics, error) {
	duration, ok := timeRangeDurations[timeRange]
	if !ok {
		return nil, fmt.Errorf("invalid time range: %s", timeRange)
	}

	end := time.Now()
	start := end.Add(-duration)

	registrations, err := s.registrationRepo.ListSubmittedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}
	applications, err := s.applicationRepo.ListSubmittedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	categories, err := s.businessRepo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category counts: %w", err)
	}

	analytics := &DashboardAnalytics{
		TimeRange:          timeRange,
		TotalRegistrations: len(registrations),
		TotalApplications:  len(applications),
		RegistrationStatus: make(map[string]int),
		ApplicationStatus:  make(map[string]int),
		BusinessCategories: categories,
		GeneratedAt:        time.Now(),
	}

	buckets := make(map[string]*TimeSeriesPoint)
	for _, reg := range registrations {
		analytics.RegistrationStatus[reg.Status]++
		label := bucketLabel(reg.SubmittedAt, timeRange)
		point := buckets[label]
		if point == nil {
			point = &TimeSeriesPoint{Bucket: label}
			buckets[label] = point
		}
		point.Registrations++
	}
	for _, app := range applications {
		analytics.ApplicationStatus[app.Status]++
		label := bucketLabel(app.SubmittedAt, timeRange)
		point := buckets[label]
		if point == nil {
			point = &TimeSeriesPoint{Bucket: label}
			buckets[label] = point
		}
		point.Applications++
	}

	analytics.Series = make([]TimeSeriesPoint, 0, len(buckets))
	for _, point := range buckets {
		analytics.Series = append(analytics.Series, *point)
	}
	sort.Slice(analytics.Series, func(i, j int) bool {
		return analytics.Series[i].Bucket < analytics.Series[j].Bucket
	})

	if err := s.cacheSvc.SetJSON(ctx, "analytics:"+timeRange, analytics, analyticsCacheTTL); err != nil {
		// Serve the fresh result even if caching it failed.
		return analytics, nil
	}
	return analytics, nil
}

// bucketLabel assigns a timestamp to its chart bucket. Short ranges bucket
// by day, 90 days by ISO week start, a year by month. Labels sort
// lexicographically in chronological order.
func bucketLabel(t time.Time, timeRange string) string {
	switch timeRange {
	case TimeRange90Days:
		// Monday of the week.
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset).Format("2006-01-02")
	case TimeRange1Year:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
