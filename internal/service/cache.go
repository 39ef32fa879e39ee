package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

// CacheService provides caching functionality with type safety and error handling
type CacheService struct {
	cache *expirable.LRU[string, []byte]
}

// CacheConfig holds configuration for the cache service
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// NewCacheService creates a new cache service. Entries are evicted when
// they expire or when the cache is full, least recently used first.
func NewCacheService(config CacheConfig) *CacheService {
	if config.Size <= 0 {
		config.Size = 1024
	}
	return &CacheService{
		cache: expirable.NewLRU[string, []byte](config.Size, nil, config.TTL),
	}
}

// Set stores a JSON encoding of value under key
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value: %w", err)
	}

	s.cache.Add(key, data)
	return nil
}

// Get decodes the value stored under key into result
func (s *CacheService) Get(ctx context.Context, key string, result interface{}) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	data, found := s.cache.Get(key)
	if !found {
		return domain.ErrNotFound
	}

	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("unmarshaling cached value: %w", err)
	}
	return nil
}

// GetOrSet retrieves a value from cache or sets it if not found
func (s *CacheService) GetOrSet(ctx context.Context, key string, result interface{}, fetchFunc func() (interface{}, error)) error {
	err := s.Get(ctx, key, result)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("getting from cache: %w", err)
	}

	value, err := fetchFunc()
	if err != nil {
		return err
	}

	if err := s.Set(ctx, key, value); err != nil {
		return fmt.Errorf("storing in cache: %w", err)
	}

	return s.Get(ctx, key, result)
}

// Delete removes a value from the cache
func (s *CacheService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	s.cache.Remove(key)
	return nil
}

// Close drops every cached entry
func (s *CacheService) Close() {
	s.cache.Purge()
}
