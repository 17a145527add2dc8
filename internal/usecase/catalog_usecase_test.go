package usecase

import (
	"context"
	"testing"
	"time"

	"mitienda-backend/config"
	"mitienda-backend/internal/domain"
	cacheinfra "mitienda-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogListProducts(t *testing.T) {
	api := &fakeStorefrontAPI{products: []domain.Product{
		{ID: "p1", Name: "Taza", Price: 100},
		{ID: "p2", Name: "Playera", Price: 50},
	}}
	cfg := &config.Config{CacheProductTTL: time.Minute}
	u := NewCatalogUsecase(api, cacheinfra.NewMemoryCache(time.Minute, time.Minute), cfg)

	products, err := u.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, api.listCalls)

	// Second read is served from cache
	_, err = u.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)
}

func TestCatalogGetProduct(t *testing.T) {
	api := &fakeStorefrontAPI{product: &domain.Product{ID: "p1", Name: "Taza", Price: 100}}
	cfg := &config.Config{CacheProductTTL: time.Minute}
	u := NewCatalogUsecase(api, cacheinfra.NewMemoryCache(time.Minute, time.Minute), cfg)

	product, err := u.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Taza", product.Name)

	_, err = u.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, api.getCalls)

	_, err = u.GetProduct(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCatalogUpstreamFailureIsNotCached(t *testing.T) {
	api := &fakeStorefrontAPI{listErr: domain.NewUpstreamError("backend unavailable")}
	cfg := &config.Config{CacheProductTTL: time.Minute}
	u := NewCatalogUsecase(api, cacheinfra.NewMemoryCache(time.Minute, time.Minute), cfg)

	_, err := u.ListProducts(context.Background())
	require.Error(t, err)

	api.listErr = nil
	api.products = []domain.Product{{ID: "p1", Name: "Taza", Price: 100}}
	products, err := u.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, api.listCalls)
}
