package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"pos-admin-gateway/internal/infrastructure/posapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory cache.Cache without TTL handling.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }

// fakeAPI counts upstream calls so tests can observe cache behavior.
type fakeAPI struct {
	products     []posapi.Product
	listCalls    int
	createCalls  int
	deleteCalls  int
	nextID       int64
	listProducts func() ([]posapi.Product, int, error)
}

func (f *fakeAPI) ListCategories(context.Context, int, int, string) ([]posapi.Category, int, error) {
	return nil, 0, nil
}
func (f *fakeAPI) CreateCategory(_ context.Context, req posapi.CreateCategoryRequest) (*posapi.Category, error) {
	return &posapi.Category{ID: 1, CategoryName: req.CategoryName}, nil
}
func (f *fakeAPI) DeleteCategory(context.Context, int64) error { return nil }
func (f *fakeAPI) ListTags(context.Context, int, int, string) ([]posapi.Tag, int, error) {
	return nil, 0, nil
}
func (f *fakeAPI) CreateTag(_ context.Context, req posapi.CreateTagRequest) (*posapi.Tag, error) {
	return &posapi.Tag{ID: 1, TagName: req.TagName}, nil
}
func (f *fakeAPI) DeleteTag(context.Context, int64) error { return nil }

func (f *fakeAPI) ListProducts(context.Context, int, int, string) ([]posapi.Product, int, error) {
	f.listCalls++
	if f.listProducts != nil {
		return f.listProducts()
	}
	return f.products, len(f.products), nil
}
func (f *fakeAPI) GetProduct(_ context.Context, id int64) (*posapi.Product, error) {
	return &posapi.Product{ID: id}, nil
}
func (f *fakeAPI) CreateProduct(_ context.Context, req posapi.CreateProductRequest) (*posapi.Product, error) {
	f.createCalls++
	f.nextID++
	return &posapi.Product{ID: f.nextID, ProductName: req.ProductName}, nil
}
func (f *fakeAPI) DeleteProduct(context.Context, int64) error {
	f.deleteCalls++
	return nil
}
func (f *fakeAPI) ListCustomers(context.Context, int, int, string) ([]posapi.Customer, int, error) {
	return nil, 0, nil
}
func (f *fakeAPI) CreateCustomer(_ context.Context, req posapi.CreateCustomerRequest) (*posapi.Customer, error) {
	return &posapi.Customer{ID: 1, FullName: req.Name}, nil
}
func (f *fakeAPI) DeleteCustomer(context.Context, int64) error { return nil }

func TestListProductsCachesPages(t *testing.T) {
	api := &fakeAPI{products: []posapi.Product{{ID: 1, ProductName: "Kopi Susu"}}}
	svc := NewService(api, newFakeCache())
	ctx := context.Background()

	first, total, err := svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, first, 1)

	// Second identical read is served from cache.
	_, _, err = svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)

	// A different page misses the cache.
	_, _, err = svc.ListProducts(ctx, 2, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestProductWritesInvalidateCache(t *testing.T) {
	api := &fakeAPI{products: []posapi.Product{{ID: 1, ProductName: "Kopi Susu"}}}
	svc := NewService(api, newFakeCache())
	ctx := context.Background()

	_, _, err := svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, posapi.CreateProductRequest{ProductName: "Teh Manis"})
	require.NoError(t, err)

	_, _, err = svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls, "create should have flushed the cached page")

	require.NoError(t, svc.DeleteProduct(ctx, 1))

	_, _, err = svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 3, api.listCalls, "delete should have flushed the cached page")
}

func TestInvalidateProductsCalledExternally(t *testing.T) {
	api := &fakeAPI{products: []posapi.Product{{ID: 1}}}
	svc := NewService(api, newFakeCache())
	ctx := context.Background()

	_, _, err := svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)

	// The bulk importer calls this hook after a successful run.
	svc.InvalidateProducts(ctx)

	_, _, err = svc.ListProducts(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestListProductsWithoutCache(t *testing.T) {
	api := &fakeAPI{products: []posapi.Product{{ID: 1}}}
	svc := NewService(api, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := svc.ListProducts(ctx, 1, 20, "")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, api.listCalls)
}
