// Package cisapi wraps the upstream CISystem GraphQL API behind typed query
// methods. Failures surface as single wrapped errors; there is no retry or
// backoff at this layer.
package cisapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
)

// Client issues authenticated queries against the CISystem GraphQL endpoint.
type Client struct {
	endpoint string
	gql      *graphql.Client
	token    string
	logger   *slog.Logger
}

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.gql = graphql.NewClient(c.endpoint, graphql.WithHTTPClient(hc))
	}
}

// WithLogger attaches a logger used for query tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient constructs a Client for the given endpoint and bearer token.
func NewClient(endpoint, token string, opts ...Option) *Client {
	hc := &http.Client{Timeout: 30 * time.Second}
	c := &Client{
		endpoint: endpoint,
		gql:      graphql.NewClient(endpoint, graphql.WithHTTPClient(hc)),
		token:    token,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger != nil {
		c.gql.Log = func(s string) { c.logger.Debug("graphql", slog.String("msg", s)) }
	}
	return c
}

func (c *Client) run(ctx context.Context, name string, req *graphql.Request, dest any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if err := c.gql.Run(ctx, req, dest); err != nil {
		return fmt.Errorf("cisapi: %s: %w", name, err)
	}
	return nil
}

// DailySalesReport fetches the sales summary for one calendar date. A date
// with no recorded sales yields nil without error.
func (c *Client) DailySalesReport(ctx context.Context, date string) (*DailySalesReport, error) {
	req := graphql.NewRequest(queryDailySalesReport)
	req.Var("date", date)
	var resp struct {
		DailySalesReport *DailySalesReport `json:"dailySalesReport"`
	}
	if err := c.run(ctx, "dailySalesReport", req, &resp); err != nil {
		return nil, err
	}
	return resp.DailySalesReport, nil
}

// Expenses fetches expense records matching the filter.
func (c *Client) Expenses(ctx context.Context, filter ExpenseFilter) ([]Expense, error) {
	req := graphql.NewRequest(queryExpenses)
	req.Var("filter", filter)
	var resp struct {
		Expenses []Expense `json:"expenses"`
	}
	if err := c.run(ctx, "expenses", req, &resp); err != nil {
		return nil, err
	}
	return resp.Expenses, nil
}

// MyPermissions fetches the per-module capability records for the
// authenticated credential.
func (c *Client) MyPermissions(ctx context.Context) ([]UserPermission, error) {
	req := graphql.NewRequest(queryMyPermissions)
	var resp struct {
		MyPermissions []UserPermission `json:"myPermissions"`
	}
	if err := c.run(ctx, "myPermissions", req, &resp); err != nil {
		return nil, err
	}
	return resp.MyPermissions, nil
}

// Me fetches the authenticated identity, or nil when the server reports none.
func (c *Client) Me(ctx context.Context) (*User, error) {
	req := graphql.NewRequest(queryMe)
	var resp struct {
		Me *User `json:"me"`
	}
	if err := c.run(ctx, "me", req, &resp); err != nil {
		return nil, err
	}
	return resp.Me, nil
}

// LowStockBatchAlerts fetches batches at or below the on-hand threshold.
func (c *Client) LowStockBatchAlerts(ctx context.Context, threshold int) ([]LowStockAlert, error) {
	req := graphql.NewRequest(queryLowStockBatchAlerts)
	req.Var("threshold", threshold)
	var resp struct {
		LowStockBatchAlerts []LowStockAlert `json:"lowStockBatchAlerts"`
	}
	if err := c.run(ctx, "lowStockBatchAlerts", req, &resp); err != nil {
		return nil, err
	}
	return resp.LowStockBatchAlerts, nil
}

// ExpiryAlerts fetches batches expiring within the given number of days.
func (c *Client) ExpiryAlerts(ctx context.Context, days int) ([]ExpiryAlert, error) {
	req := graphql.NewRequest(queryExpiryAlerts)
	req.Var("days", days)
	var resp struct {
		ExpiryAlerts []ExpiryAlert `json:"expiryAlerts"`
	}
	if err := c.run(ctx, "expiryAlerts", req, &resp); err != nil {
		return nil, err
	}
	return resp.ExpiryAlerts, nil
}
