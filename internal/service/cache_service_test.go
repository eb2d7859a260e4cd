package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plm-dev/enlistment-api/internal/models"
	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.entries = nil
	return nil
}

func TestCacheServiceHitAndMiss(t *testing.T) {
	repo := &memoryCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))

	hit, err = svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "v", out)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := &memoryCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.Zero(t, repo.sets)

	var nilSvc *CacheService
	hit, err := nilSvc.Get(context.Background(), "k", nil)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestEligibilityResolveUsesCache(t *testing.T) {
	catalog, students := newEligibilityFixture()
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewEligibilityService(catalog, students, cache, nil)

	first, err := svc.Resolve(context.Background(), "2021-00123", "1st")
	require.NoError(t, err)

	// Remove the catalog entries; a second resolve must come from cache.
	catalog.subjects = map[string]models.Subject{}
	second, err := svc.Resolve(context.Background(), "2021-00123", "1st")
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
	assert.Equal(t, first[0].Code, second[0].Code)
}
