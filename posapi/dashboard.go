package posapi

import (
	"context"
	"encoding/json"
	"net/url"
)

// DefaultPeriod is used by the dashboard series when no period is given.
const DefaultPeriod = "6months"

type Dashboard struct {
	api Requester
}

func (d *Dashboard) Stats(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, d.api, "/dashboard/stats", nil)
}

func (d *Dashboard) Sales(ctx context.Context, period string) (json.RawMessage, error) {
	return d.series(ctx, "sales", period)
}

func (d *Dashboard) Revenue(ctx context.Context, period string) (json.RawMessage, error) {
	return d.series(ctx, "revenue", period)
}

func (d *Dashboard) CustomerGrowth(ctx context.Context, period string) (json.RawMessage, error) {
	return d.series(ctx, "customer-growth", period)
}

func (d *Dashboard) Tickets(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, d.api, "/dashboard/tickets", nil)
}

func (d *Dashboard) NetworkStatus(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, d.api, "/dashboard/network-status", nil)
}

func (d *Dashboard) series(ctx context.Context, name, period string) (json.RawMessage, error) {
	if period == "" {
		period = DefaultPeriod
	}
	return getRaw(ctx, d.api, "/dashboard/"+name, url.Values{"period": {period}})
}

type Reports struct {
	api Requester
}

func (r *Reports) Sales(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, r.api, "/reports/sales", params)
}

func (r *Reports) Customers(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, r.api, "/reports/customers", params)
}

func (r *Reports) Revenue(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, r.api, "/reports/revenue", params)
}

func (r *Reports) Tickets(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, r.api, "/reports/tickets", params)
}

// Export returns the report file exactly as the server sent it.
func (r *Reports) Export(ctx context.Context, reportType string, params url.Values) ([]byte, error) {
	return r.api.GetRaw(ctx, "/reports/export/"+url.PathEscape(reportType), params)
}
