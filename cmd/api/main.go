package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mitienda-backend/config"
	"mitienda-backend/internal/delivery/http/middleware"
	v1 "mitienda-backend/internal/delivery/http/v1"
	storefront "mitienda-backend/internal/infrastructure/backend"
	cacheinfra "mitienda-backend/internal/infrastructure/cache"
	"mitienda-backend/internal/infrastructure/envia"
	"mitienda-backend/internal/infrastructure/geocode"
	"mitienda-backend/internal/infrastructure/session"
	"mitienda-backend/internal/usecase"
	"mitienda-backend/pkg/logger"
	"mitienda-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)
	logger.Init(cfg.Env, cfg.LogLevel)

	logger.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting server")

	// Infrastructure
	sessions := session.NewStore(cfg.SessionTTL, 10*time.Minute)
	productCache := cacheinfra.NewMemoryCache(cfg.CacheProductTTL, 15*time.Minute)
	geocoder := geocode.NewClient(cfg.GeocodesAPIURL, cfg.HTTPTimeout)
	carrier := envia.NewClient(cfg.EnviaAPIURL, cfg.EnviaToken, cfg.HTTPTimeout)
	storeAPI := storefront.NewClient(cfg.StorefrontAPIURL, cfg.ProductsAPIKey, cfg.HTTPTimeout)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(storeAPI, sessions, cfg.SessionTTL)
	catalogUsecase := usecase.NewCatalogUsecase(storeAPI, productCache, cfg)
	cartUsecase := usecase.NewCartUsecase(sessions)
	shippingUsecase := usecase.NewShippingUsecase(geocoder, carrier, cfg)

	// Handlers
	authHandler := v1.NewAuthHandler(authUsecase)
	catalogHandler := v1.NewCatalogHandler(catalogUsecase)
	cartHandler := v1.NewCartHandler(cartUsecase, catalogUsecase, cfg)
	shippingHandler := v1.NewShippingHandler(shippingUsecase)

	auth := middleware.NewAuthMiddleware(sessions)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.Handle("POST /api/v1/auth/logout", auth(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	// Catalog
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)

	// Cart
	mux.Handle("GET /api/v1/cart", auth(http.HandlerFunc(cartHandler.GetCart)))
	mux.Handle("POST /api/v1/cart/items", auth(http.HandlerFunc(cartHandler.AddItem)))
	mux.Handle("PUT /api/v1/cart/items", auth(http.HandlerFunc(cartHandler.UpdateItem)))
	mux.Handle("DELETE /api/v1/cart/items/{productId}", auth(http.HandlerFunc(cartHandler.RemoveItem)))
	mux.Handle("DELETE /api/v1/cart", auth(http.HandlerFunc(cartHandler.Clear)))

	// Shipping
	mux.HandleFunc("POST /api/v1/shipping/address/validate", shippingHandler.ValidateAddress)
	mux.Handle("POST /api/v1/shipping/rates", auth(http.HandlerFunc(shippingHandler.Rates)))
	mux.Handle("POST /api/v1/shipping/labels", auth(http.HandlerFunc(shippingHandler.Labels)))

	// Middleware chain (applied in reverse order of execution)
	rateLimiter := middleware.NewRateLimiter(context.Background(), rate.Limit(10), 20, 1*time.Minute, 3*time.Minute)

	var handler http.Handler = mux
	handler = gziphandler.GzipHandler(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.NewCORSMiddleware(cfg)(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	logger.Info().Str("addr", server.Addr).Msg("Server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rateLimiter.Shutdown()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
