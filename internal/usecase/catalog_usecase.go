package usecase

import (
	"context"

	"mitienda-backend/config"
	"mitienda-backend/internal/domain"
	"mitienda-backend/pkg/cache"
	"mitienda-backend/pkg/logger"
)

const (
	productListCacheKey = "catalog:products"
	productCacheKeyBase = "catalog:product:"
)

// CatalogUsecase fronts the internal product API with a short-lived cache so
// browsing doesn't hammer the upstream on every page view.
type CatalogUsecase struct {
	api   domain.StorefrontAPI
	cache cache.CacheService
	cfg   *config.Config
}

func NewCatalogUsecase(api domain.StorefrontAPI, cacheService cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		api:   api,
		cache: cacheService,
		cfg:   cfg,
	}
}

func (u *CatalogUsecase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := u.cache.Get(productListCacheKey); ok {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, err := u.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	u.cache.Set(productListCacheKey, products, u.cfg.CacheProductTTL)
	logger.WithContext(ctx).Debug().Int("count", len(products)).Msg("product list cached")
	return products, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.NewValidationError("product id is required")
	}

	key := productCacheKeyBase + id
	if cached, ok := u.cache.Get(key); ok {
		if product, ok := cached.(*domain.Product); ok {
			return product, nil
		}
	}

	product, err := u.api.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	u.cache.Set(key, product, u.cfg.CacheProductTTL)
	return product, nil
}
