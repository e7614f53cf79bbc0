package posapi

import (
	"context"
	"fmt"
)

// CatalogClient talks to the Catalog side of the POS backend:
// categories, tags, products and customers.
type CatalogClient struct {
	*Client
}

func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{Client: c}
}

type categoryListResponse struct {
	Data         []Category `json:"data"`
	TotalRecords int        `json:"totalRecords"`
}

func (c *CatalogClient) ListCategories(ctx context.Context, page, pageSize int, search string) ([]Category, int, error) {
	var out categoryListResponse
	if err := c.get(ctx, "/CategoriesApi", listQuery(page, pageSize, search), &out); err != nil {
		return nil, 0, err
	}
	return out.Data, out.TotalRecords, nil
}

func (c *CatalogClient) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var out Category
	if err := c.post(ctx, "/CategoriesApi", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/CategoriesApi/%d", id))
}

type tagListResponse struct {
	Data         []Tag `json:"data"`
	TotalRecords int   `json:"totalRecords"`
}

func (c *CatalogClient) ListTags(ctx context.Context, page, pageSize int, search string) ([]Tag, int, error) {
	var out tagListResponse
	if err := c.get(ctx, "/TagsApi", listQuery(page, pageSize, search), &out); err != nil {
		return nil, 0, err
	}
	return out.Data, out.TotalRecords, nil
}

func (c *CatalogClient) CreateTag(ctx context.Context, req CreateTagRequest) (*Tag, error) {
	var out Tag
	if err := c.post(ctx, "/TagsApi", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) DeleteTag(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/TagsApi/%d", id))
}

type productListResponse struct {
	Data         []Product `json:"data"`
	TotalRecords int       `json:"totalRecords"`
}

func (c *CatalogClient) ListProducts(ctx context.Context, page, pageSize int, search string) ([]Product, int, error) {
	var out productListResponse
	if err := c.get(ctx, "/productsApi", listQuery(page, pageSize, search), &out); err != nil {
		return nil, 0, err
	}
	return out.Data, out.TotalRecords, nil
}

func (c *CatalogClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.get(ctx, fmt.Sprintf("/productsApi/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var out Product
	if err := c.post(ctx, "/productsApi", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/productsApi/%d", id))
}

type customerListResponse struct {
	Data         []Customer `json:"data"`
	TotalRecords int        `json:"totalRecords"`
}

func (c *CatalogClient) ListCustomers(ctx context.Context, page, pageSize int, search string) ([]Customer, int, error) {
	var out customerListResponse
	if err := c.get(ctx, "/CustomersApi", listQuery(page, pageSize, search), &out); err != nil {
		return nil, 0, err
	}
	return out.Data, out.TotalRecords, nil
}

func (c *CatalogClient) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var out Customer
	if err := c.post(ctx, "/CustomersApi", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CatalogClient) DeleteCustomer(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/CustomersApi/%d", id))
}
