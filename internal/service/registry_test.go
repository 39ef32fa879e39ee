package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tenderdesk/tenderdesk/internal/domain"
	"github.com/tenderdesk/tenderdesk/internal/mocks"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/ratelimit"
	"github.com/tenderdesk/tenderdesk/internal/registry"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

func TestRegistryLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	tc := &model.TenantContext{UserID: uuid.New(), TenantID: "acme-b-v-a1b2c3"}

	newService := func(client registry.Client) *service.RegistryService {
		cache := service.NewCacheService(service.CacheConfig{Size: 16, TTL: time.Hour})
		limiter := ratelimit.NewKeyed(ratelimit.PerMinute(60), 10)
		return service.NewRegistryService(client, cache, limiter, testConfig())
	}

	t.Run("profiles are cached", func(t *testing.T) {
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Lookup(gomock.Any(), "69599084").
			Return(&registry.CompanyProfile{KvKNumber: "69599084", Name: "Acme B.V.", City: "Utrecht"}, nil).Times(1)

		svc := newService(client)
		for i := 0; i < 3; i++ {
			profile, err := svc.Lookup(ctx, tc, " 69599084 ")
			require.NoError(t, err)
			assert.Equal(t, "Acme B.V.", profile.Name)
		}
	})

	t.Run("unknown numbers are cached as not found", func(t *testing.T) {
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Lookup(gomock.Any(), "12345678").Return(nil, nil).Times(1)

		svc := newService(client)
		for i := 0; i < 2; i++ {
			_, err := svc.Lookup(ctx, tc, "12345678")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
	})

	t.Run("upstream failures are not cached", func(t *testing.T) {
		client := mocks.NewMockClient(ctrl)
		upstream := &domain.ExternalServiceError{Service: "kvk", Err: errors.New("503")}
		client.EXPECT().Lookup(gomock.Any(), "87654321").Return(nil, upstream).Times(2)

		svc := newService(client)
		for i := 0; i < 2; i++ {
			_, err := svc.Lookup(ctx, tc, "87654321")
			assert.ErrorIs(t, err, domain.ErrExternalService)
		}
	})

	t.Run("malformed numbers never reach the registry", func(t *testing.T) {
		svc := newService(mocks.NewMockClient(ctrl))
		_, err := svc.Lookup(ctx, tc, "1234")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("lookups are rate limited per user", func(t *testing.T) {
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		cache := service.NewCacheService(service.CacheConfig{Size: 16, TTL: time.Hour})
		svc := service.NewRegistryService(client, cache, ratelimit.NewKeyed(ratelimit.PerHour(1), 1), testConfig())

		_, err := svc.Lookup(ctx, tc, "11111111")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = svc.Lookup(ctx, tc, "22222222")
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})
}
