package posapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/productsApi", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "kopi", r.URL.Query().Get("search"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": 1, "productName": "Kopi Susu", "price": 15000, "stock": 10},
			},
			"totalRecords": 37,
		})
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	products, total, err := client.ListProducts(context.Background(), 2, 50, "kopi")

	require.NoError(t, err)
	assert.Equal(t, 37, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Kopi Susu", products[0].ProductName)
	assert.Equal(t, 10, products[0].Stock)
}

func TestCreateCategorySendsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/CategoriesApi", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Drinks", req["categoryName"])
		assert.Equal(t, "Created via Bulk Import", req["description"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 5, "categoryName": "Drinks"})
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	category, err := client.CreateCategory(context.Background(), CreateCategoryRequest{
		CategoryName: "Drinks",
		Description:  "Created via Bulk Import",
		Active:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), category.ID)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("Product name already exists"))
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	_, err := client.CreateTag(context.Background(), CreateTagRequest{TagName: "Hot"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Product name already exists", apiErr.Body)
	assert.Contains(t, apiErr.Error(), "upstream returned 409")
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	_, err := client.GetProduct(context.Background(), 42)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestDeleteIgnoresEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/productsApi/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	assert.NoError(t, client.DeleteProduct(context.Background(), 9))
}

func TestDashboardEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dashboard/summary":
			w.Write([]byte(`{"totalSales":120000}`))
		case "/dashboard/top-products":
			assert.Equal(t, "3", r.URL.Query().Get("count"))
			w.Write([]byte(`[{"productName":"Kopi Susu","sold":40}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewDashboardClient(NewClient(srv.URL, 0))

	summary, err := client.GetSummary(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalSales":120000}`, string(summary))

	top, err := client.GetTopProducts(context.Background(), 3)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productName":"Kopi Susu","sold":40}]`, string(top))
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewCatalogClient(NewClient(srv.URL, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := client.ListTags(ctx, 1, 10, "")
	assert.Error(t, err)
}
