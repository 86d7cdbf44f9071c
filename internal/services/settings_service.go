package services

import (
	"context"

	"bizboost/internal/caching"

	"github.com/google/uuid"
)

// AdminSettings is the per-admin dashboard preferences blob. It lives only
// in the KV store; there is deliberately no settings table. The dashboard
// answers success on save, and the record survives only as long as the KV
// entry does.
type AdminSettings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"`
	EmailDigest          string `json:"email_digest"`
	DefaultTimeRange     string `json:"default_time_range"`
	ItemsPerPage         int    `json:"items_per_page"`
	Theme                string `json:"theme"`
}

// DefaultAdminSettings returns the settings a fresh admin account sees.
func DefaultAdminSettings() *AdminSettings {
	return &AdminSettings{
		NotificationsEnabled: true,
		EmailDigest:          "daily",
		DefaultTimeRange:     "30days",
		ItemsPerPage:         50,
		Theme:                "light",
	}
}

type SettingsService interface {
	Get(ctx context.Context, adminID uuid.UUID) (*AdminSettings, error)
	Save(ctx context.Context, adminID uuid.UUID, settings *AdminSettings) error
}

type settingsService struct {
	cacheSvc caching.CacheService
}

func NewSettingsService(cacheSvc caching.CacheService) SettingsService {
	return &settingsService{cacheSvc: cacheSvc}
}

func (s *settingsService) Get(ctx context.Context, adminID uuid.UUID) (*AdminSettings, error) {
	settings := &AdminSettings{}
	found, err := s.cacheSvc.GetJSON(ctx, "settings:"+adminID.String(), settings)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultAdminSettings(), nil
	}
	return settings, nil
}

func (s *settingsService) Save(ctx context.Context, adminID uuid.UUID, settings *AdminSettings) error {
	// No TTL: settings persist until overwritten.
	return s.cacheSvc.SetJSON(ctx, "settings:"+adminID.String(), settings, 0)
}
