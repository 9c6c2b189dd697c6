package cisapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, req gqlRequest)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		handler(w, req)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token", WithHTTPClient(srv.Client()))
}

func TestDailySalesReportDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, req gqlRequest) {
		require.Equal(t, "2024-05-07", req.Variables["date"])
		_, _ = w.Write([]byte(`{"data":{"dailySalesReport":{
			"date":"2024-05-07",
			"totalSalesAmount":120.5,
			"totalCostAmount":80,
			"totalProfitAmount":40.5,
			"items":[{"productId":"p1","sku":"SKU1","productName":"Aspirin","quantitySold":3,"salesAmount":30,"costAmount":20,"profitAmount":10}]
		}}}`))
	})

	report, err := client.DailySalesReport(context.Background(), "2024-05-07")
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Equal(t, 40.5, report.TotalProfitAmount)
	require.Len(t, report.Items, 1)
	require.Equal(t, "Aspirin", report.Items[0].ProductName)
}

func TestDailySalesReportNullIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, req gqlRequest) {
		_, _ = w.Write([]byte(`{"data":{"dailySalesReport":null}}`))
	})

	report, err := client.DailySalesReport(context.Background(), "2024-05-08")
	require.NoError(t, err)
	require.Nil(t, report)
}

func TestGraphQLErrorIsWrapped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, req gqlRequest) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
	})

	_, err := client.Expenses(context.Background(), ExpenseFilter{Date: "2024-05-07"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cisapi: expenses")
	require.Contains(t, err.Error(), "boom")
}

func TestBearerTokenAttached(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"me":null}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", WithHTTPClient(srv.Client()))
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Nil(t, user)
	require.Equal(t, "Bearer secret", auth)
}

func TestExpiryAlertsDecodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, req gqlRequest) {
		require.Equal(t, float64(30), req.Variables["days"])
		_, _ = w.Write([]byte(`{"data":{"expiryAlerts":[
			{"productId":"p1","sku":"SKU1","productName":"Aspirin","batchId":"b1","batchNumber":"B-001","expiryDate":"2024-06-01","qtyOnHand":12,"daysToExpiry":25}
		]}}`))
	})

	alerts, err := client.ExpiryAlerts(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, 25, alerts[0].DaysToExpiry)
}
