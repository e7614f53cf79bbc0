package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pos-admin-gateway/internal/infrastructure/posapi"
	"pos-admin-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// defaultTopProducts matches the count the dashboard page asks for.
const defaultTopProducts = 5

// DashboardAPI is the reporting slice of the POS backend.
type DashboardAPI interface {
	GetSummary(ctx context.Context) (json.RawMessage, error)
	GetSalesChart(ctx context.Context) (json.RawMessage, error)
	GetTopProducts(ctx context.Context, count int) (json.RawMessage, error)
}

// Handler exposes the dashboard read endpoints. Pure pass-throughs;
// the backend owns the aggregation.
type Handler struct {
	api DashboardAPI
}

func NewHandler(api DashboardAPI) *Handler {
	return &Handler{api: api}
}

// GetSummary handles GET /dashboard/summary
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.api.GetSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}

// GetSalesChart handles GET /dashboard/sales-chart
func (h *Handler) GetSalesChart(c *gin.Context) {
	chart, err := h.api.GetSalesChart(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, chart)
}

// GetTopProducts handles GET /dashboard/top-products
func (h *Handler) GetTopProducts(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", strconv.Itoa(defaultTopProducts)))
	if err != nil || count < 1 {
		count = defaultTopProducts
	}

	top, err := h.api.GetTopProducts(c.Request.Context(), count)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, top)
}

func writeError(c *gin.Context, err error) {
	var apiErr *posapi.APIError
	if errors.As(err, &apiErr) {
		response.BadGateway(c, apiErr.Error())
		return
	}
	response.BadGateway(c, err.Error())
}
