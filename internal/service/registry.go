package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/tenderdesk/tenderdesk/internal/config"
	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/metrics"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/ratelimit"
	"github.com/tenderdesk/tenderdesk/internal/registry"
)

// RegistryService answers KVK lookups through a cache and a per-user rate
// limit.
type RegistryService struct {
	client  registry.Client
	cache   *CacheService
	limiter *ratelimit.Keyed
	config  *config.Config
}

func NewRegistryService(client registry.Client, cache *CacheService, limiter *ratelimit.Keyed, cfg *config.Config) *RegistryService {
	return &RegistryService{
		client:  client,
		cache:   cache,
		limiter: limiter,
		config:  cfg,
	}
}

// Lookup returns the registry profile for kvkNumber, or domain.ErrNotFound
// when the registry does not know it. Unknown numbers are cached too.
func (s *RegistryService) Lookup(ctx context.Context, tc *model.TenantContext, kvkNumber string) (*registry.CompanyProfile, error) {
	kvkNumber = strings.TrimSpace(kvkNumber)
	if err := registry.ValidateKvKNumber(kvkNumber); err != nil {
		return nil, err
	}
	if err := s.limiter.Allow(tc.UserID.String()); err != nil {
		return nil, err
	}

	var profile *registry.CompanyProfile
	err := s.cache.GetOrSet(ctx, "kvk:"+kvkNumber, &profile, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.config.UpstreamTimeout)
		defer cancel()

		start := time.Now()
		p, err := s.client.Lookup(callCtx, kvkNumber)
		metrics.ExternalCallDuration.WithLabelValues("kvk").Observe(time.Since(start).Seconds())
		metrics.ExternalCallsTotal.WithLabelValues("kvk", metrics.Result(err)).Inc()
		if err != nil {
			slog.WarnContext(ctx, "KVK lookup failed", "error", err, "tenantID", tc.TenantID)
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}
