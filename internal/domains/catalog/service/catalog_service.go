package service

import (
	"context"
	"fmt"
	"time"

	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/pkg/cache"

	"github.com/rs/zerolog/log"
)

const (
	productCachePrefix = "catalog:products:"
	productCacheTTL    = 30 * time.Second
)

// CatalogAPI is the upstream surface this service proxies.
type CatalogAPI interface {
	ListCategories(ctx context.Context, page, pageSize int, search string) ([]posapi.Category, int, error)
	CreateCategory(ctx context.Context, req posapi.CreateCategoryRequest) (*posapi.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListTags(ctx context.Context, page, pageSize int, search string) ([]posapi.Tag, int, error)
	CreateTag(ctx context.Context, req posapi.CreateTagRequest) (*posapi.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, page, pageSize int, search string) ([]posapi.Product, int, error)
	GetProduct(ctx context.Context, id int64) (*posapi.Product, error)
	CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*posapi.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCustomers(ctx context.Context, page, pageSize int, search string) ([]posapi.Customer, int, error)
	CreateCustomer(ctx context.Context, req posapi.CreateCustomerRequest) (*posapi.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// ServiceInterface fronts the POS catalog for the admin UI. Product
// lists are cached briefly; every product write invalidates the cache.
type ServiceInterface interface {
	ListCategories(ctx context.Context, page, pageSize int, search string) ([]posapi.Category, int, error)
	CreateCategory(ctx context.Context, req posapi.CreateCategoryRequest) (*posapi.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListTags(ctx context.Context, page, pageSize int, search string) ([]posapi.Tag, int, error)
	CreateTag(ctx context.Context, req posapi.CreateTagRequest) (*posapi.Tag, error)
	DeleteTag(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, page, pageSize int, search string) ([]posapi.Product, int, error)
	GetProduct(ctx context.Context, id int64) (*posapi.Product, error)
	CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*posapi.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	InvalidateProducts(ctx context.Context)

	ListCustomers(ctx context.Context, page, pageSize int, search string) ([]posapi.Customer, int, error)
	CreateCustomer(ctx context.Context, req posapi.CreateCustomerRequest) (*posapi.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type catalogService struct {
	api   CatalogAPI
	cache cache.Cache
}

// NewService builds the catalog proxy. cache may be nil; the service
// then passes every read through to the backend.
func NewService(api CatalogAPI, c cache.Cache) ServiceInterface {
	return &catalogService{api: api, cache: c}
}

// ========================================
// Categories
// ========================================

func (s *catalogService) ListCategories(ctx context.Context, page, pageSize int, search string) ([]posapi.Category, int, error) {
	return s.api.ListCategories(ctx, page, pageSize, search)
}

func (s *catalogService) CreateCategory(ctx context.Context, req posapi.CreateCategoryRequest) (*posapi.Category, error) {
	return s.api.CreateCategory(ctx, req)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.api.DeleteCategory(ctx, id)
}

// ========================================
// Tags
// ========================================

func (s *catalogService) ListTags(ctx context.Context, page, pageSize int, search string) ([]posapi.Tag, int, error) {
	return s.api.ListTags(ctx, page, pageSize, search)
}

func (s *catalogService) CreateTag(ctx context.Context, req posapi.CreateTagRequest) (*posapi.Tag, error) {
	return s.api.CreateTag(ctx, req)
}

func (s *catalogService) DeleteTag(ctx context.Context, id int64) error {
	return s.api.DeleteTag(ctx, id)
}

// ========================================
// Products
// ========================================

type productPage struct {
	Data  []posapi.Product `json:"data"`
	Total int              `json:"total"`
}

func productCacheKey(page, pageSize int, search string) string {
	return fmt.Sprintf("%s%d:%d:%s", productCachePrefix, page, pageSize, search)
}

func (s *catalogService) ListProducts(ctx context.Context, page, pageSize int, search string) ([]posapi.Product, int, error) {
	key := productCacheKey(page, pageSize, search)

	if s.cache != nil {
		var cached productPage
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("Product cache read failed")
		} else if found {
			return cached.Data, cached.Total, nil
		}
	}

	products, total, err := s.api.ListProducts(ctx, page, pageSize, search)
	if err != nil {
		return nil, 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, productPage{Data: products, Total: total}, productCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Product cache write failed")
		}
	}
	return products, total, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*posapi.Product, error) {
	return s.api.GetProduct(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*posapi.Product, error) {
	product, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.InvalidateProducts(ctx)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.InvalidateProducts(ctx)
	return nil
}

// InvalidateProducts drops every cached product page. Called after any
// product write, including bulk imports.
func (s *catalogService) InvalidateProducts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, productCachePrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("Product cache invalidation failed")
	}
}

// ========================================
// Customers
// ========================================

func (s *catalogService) ListCustomers(ctx context.Context, page, pageSize int, search string) ([]posapi.Customer, int, error) {
	return s.api.ListCustomers(ctx, page, pageSize, search)
}

func (s *catalogService) CreateCustomer(ctx context.Context, req posapi.CreateCustomerRequest) (*posapi.Customer, error) {
	return s.api.CreateCustomer(ctx, req)
}

func (s *catalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.api.DeleteCustomer(ctx, id)
}
