package posapi

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// DashboardClient talks to the reporting side of the POS backend. The
// payloads are chart-shaped and consumed as-is by the frontend, so
// they pass through untyped.
type DashboardClient struct {
	*Client
}

func NewDashboardClient(c *Client) *DashboardClient {
	return &DashboardClient{Client: c}
}

func (c *DashboardClient) GetSummary(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardClient) GetSalesChart(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/dashboard/sales-chart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardClient) GetTopProducts(ctx context.Context, count int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))

	var out json.RawMessage
	if err := c.get(ctx, "/dashboard/top-products", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
