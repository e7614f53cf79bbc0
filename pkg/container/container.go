package container

import (
	"context"
	"fmt"
	"time"

	"pos-admin-gateway/internal/config"
	authhandler "pos-admin-gateway/internal/domains/auth/handler"
	authservice "pos-admin-gateway/internal/domains/auth/service"
	carthandler "pos-admin-gateway/internal/domains/cart/handler"
	cartservice "pos-admin-gateway/internal/domains/cart/service"
	cartstore "pos-admin-gateway/internal/domains/cart/store"
	cataloghandler "pos-admin-gateway/internal/domains/catalog/handler"
	catalogservice "pos-admin-gateway/internal/domains/catalog/service"
	dashboardhandler "pos-admin-gateway/internal/domains/dashboard/handler"
	importerhandler "pos-admin-gateway/internal/domains/importer/handler"
	importerservice "pos-admin-gateway/internal/domains/importer/service"
	txhandler "pos-admin-gateway/internal/domains/transaction/handler"
	infracache "pos-admin-gateway/internal/infrastructure/cache"
	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/pkg/jwt"

	"github.com/rs/zerolog/log"
)

// Container wires all application dependencies together.
type Container struct {
	Config     *config.Config
	JWTManager *jwt.Manager
	Redis      *infracache.RedisClient

	AuthHandler        *authhandler.Handler
	CartHandler        *carthandler.Handler
	CatalogHandler     *cataloghandler.Handler
	DashboardHandler   *dashboardhandler.Handler
	ImportHandler      *importerhandler.Handler
	TransactionHandler *txhandler.Handler
}

// New builds the dependency graph bottom-up: infrastructure, then
// services, then handlers.
func New(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ========================================
	// Infrastructure
	// ========================================

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	posClient := posapi.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	catalogClient := posapi.NewCatalogClient(posClient)
	transactionClient := posapi.NewTransactionClient(posClient)
	dashboardClient := posapi.NewDashboardClient(posClient)

	if cfg.Redis.Host != "" {
		redisClient := infracache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = redisClient
		log.Info().Str("host", cfg.Redis.Host).Msg("Redis connected")
	} else {
		log.Info().Msg("Redis disabled, using in-memory carts")
	}

	cartTTL := time.Duration(cfg.Cart.TTLMinutes) * time.Minute
	var sessionStore cartstore.Store
	if c.Redis != nil {
		sessionStore = cartstore.NewRedisStore(c.Redis, cartTTL)
	} else {
		sessionStore = cartstore.NewMemoryStore(cartTTL)
	}

	// ========================================
	// Services
	// ========================================

	authSvc := authservice.NewService(cfg.Admin, c.JWTManager)
	cartSvc := cartservice.NewService(sessionStore, catalogClient, transactionClient)

	var catalogSvc catalogservice.ServiceInterface
	if c.Redis != nil {
		catalogSvc = catalogservice.NewService(catalogClient, c.Redis)
	} else {
		catalogSvc = catalogservice.NewService(catalogClient, nil)
	}

	// Imports bypass the read cache, so a successful run must flush it.
	importSvc := importerservice.NewService(catalogClient, catalogSvc.InvalidateProducts)

	// ========================================
	// Handlers
	// ========================================

	c.AuthHandler = authhandler.NewHandler(authSvc)
	c.CartHandler = carthandler.NewHandler(cartSvc)
	c.CatalogHandler = cataloghandler.NewHandler(catalogSvc)
	c.DashboardHandler = dashboardhandler.NewHandler(dashboardClient)
	c.ImportHandler = importerhandler.NewHandler(importSvc)
	c.TransactionHandler = txhandler.NewHandler(transactionClient)

	return c, nil
}

// Cleanup releases external resources on shutdown.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis connection")
		}
	}
}
