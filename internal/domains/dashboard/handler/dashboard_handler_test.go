package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-admin-gateway/internal/infrastructure/posapi"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboardAPI struct {
	summary   json.RawMessage
	chart     json.RawMessage
	top       json.RawMessage
	err       error
	lastCount int
}

func (f *fakeDashboardAPI) GetSummary(context.Context) (json.RawMessage, error) {
	return f.summary, f.err
}

func (f *fakeDashboardAPI) GetSalesChart(context.Context) (json.RawMessage, error) {
	return f.chart, f.err
}

func (f *fakeDashboardAPI) GetTopProducts(_ context.Context, count int) (json.RawMessage, error) {
	f.lastCount = count
	return f.top, f.err
}

func setupRouter(api *fakeDashboardAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(api)
	r.GET("/dashboard/summary", h.GetSummary)
	r.GET("/dashboard/sales-chart", h.GetSalesChart)
	r.GET("/dashboard/top-products", h.GetTopProducts)
	return r
}

func TestGetSummaryPassesPayloadThrough(t *testing.T) {
	api := &fakeDashboardAPI{summary: json.RawMessage(`{"totalSales":120000,"transactionCount":14}`)}
	router := setupRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.JSONEq(t, `{"totalSales":120000,"transactionCount":14}`, string(envelope.Data))
}

func TestGetTopProductsCount(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "default", query: "", wantCount: 5},
		{name: "explicit", query: "?count=10", wantCount: 10},
		{name: "garbage falls back", query: "?count=lots", wantCount: 5},
		{name: "non-positive falls back", query: "?count=0", wantCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeDashboardAPI{top: json.RawMessage(`[]`)}
			router := setupRouter(api)

			req := httptest.NewRequest(http.MethodGet, "/dashboard/top-products"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantCount, api.lastCount)
		})
	}
}

func TestDashboardUpstreamFailure(t *testing.T) {
	api := &fakeDashboardAPI{err: &posapi.APIError{StatusCode: 500, Body: "reporting database offline"}}
	router := setupRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/sales-chart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "reporting database offline")
}
