package posapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func TestResourceEndpoints(t *testing.T) {
	var got capturedRequest
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = capturedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() (json.RawMessage, error)
		expected capturedRequest
	}{
		{
			name:     "users list",
			call:     func() (json.RawMessage, error) { return api.Users.List(ctx, nil) },
			expected: capturedRequest{Method: http.MethodGet, Path: "/users"},
		},
		{
			name:     "users update role",
			call:     func() (json.RawMessage, error) { return api.Users.UpdateRole(ctx, "u1", "tech") },
			expected: capturedRequest{Method: http.MethodPatch, Path: "/users/u1/role", Body: `{"role":"tech"}`},
		},
		{
			name:     "customers list with params",
			call:     func() (json.RawMessage, error) { return api.Customers.List(ctx, url.Values{"status": {"active"}}) },
			expected: capturedRequest{Method: http.MethodGet, Path: "/customers", Query: "status=active"},
		},
		{
			name:     "customers search",
			call:     func() (json.RawMessage, error) { return api.Customers.Search(ctx, "acme corp") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/customers/search", Query: "q=acme+corp"},
		},
		{
			name:     "customer services",
			call:     func() (json.RawMessage, error) { return api.Customers.ServiceHistory(ctx, "c9") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/customers/c9/services"},
		},
		{
			name:     "plan get",
			call:     func() (json.RawMessage, error) { return api.Plans.Get(ctx, "fiber-100") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/service-plans/fiber-100"},
		},
		{
			name:     "transactions by customer",
			call:     func() (json.RawMessage, error) { return api.Transactions.ByCustomer(ctx, "c9") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/transactions/customer/c9"},
		},
		{
			name:     "ticket assign",
			call:     func() (json.RawMessage, error) { return api.Tickets.AssignTechnician(ctx, "t1", "tech1") },
			expected: capturedRequest{Method: http.MethodPatch, Path: "/tickets/t1/assign", Body: `{"technicianId":"tech1"}`},
		},
		{
			name:     "equipment stock",
			call:     func() (json.RawMessage, error) { return api.Equipment.UpdateStock(ctx, "e1", 12) },
			expected: capturedRequest{Method: http.MethodPatch, Path: "/equipment/e1/stock", Body: `{"quantity":12}`},
		},
		{
			name:     "dashboard default period",
			call:     func() (json.RawMessage, error) { return api.Dashboard.Sales(ctx, "") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/dashboard/sales", Query: "period=6months"},
		},
		{
			name:     "dashboard growth",
			call:     func() (json.RawMessage, error) { return api.Dashboard.CustomerGrowth(ctx, "12months") },
			expected: capturedRequest{Method: http.MethodGet, Path: "/dashboard/customer-growth", Query: "period=12months"},
		},
		{
			name:     "revenue report",
			call:     func() (json.RawMessage, error) { return api.Reports.Revenue(ctx, url.Values{"from": {"2024-01"}}) },
			expected: capturedRequest{Method: http.MethodGet, Path: "/reports/revenue", Query: "from=2024-01"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.call()
			require.NoError(t, err)
			require.JSONEq(t, `{"ok":true}`, string(out))
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestResourceDelete(t *testing.T) {
	var method, path string
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, api.Tickets.Delete(context.Background(), "t7"))
	require.Equal(t, http.MethodDelete, method)
	require.Equal(t, "/tickets/t7", path)
}

func TestReportExport(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reports/export/sales", r.URL.Path)
		_, _ = w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	})

	data, err := api.Reports.Export(context.Background(), "sales", nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x50, 0x4b, 0x03, 0x04}, data)
}
