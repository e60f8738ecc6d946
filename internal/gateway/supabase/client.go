// Package supabase implements both gateways against a hosted Supabase
// project: the data gateway speaks PostgREST, the identity gateway speaks
// GoTrue. One Client serves both.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"invoice-management-backend/internal/gateway"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Select returns all rows of table matching the equality filter.
func (c *Client) Select(ctx context.Context, table string, filter gateway.Filter) ([]gateway.Row, error) {
	return c.rest(ctx, http.MethodGet, table, filter, nil)
}

// Insert creates a record and returns the stored representation.
func (c *Client) Insert(ctx context.Context, table string, record gateway.Row) ([]gateway.Row, error) {
	return c.rest(ctx, http.MethodPost, table, nil, record)
}

// Update applies changes to every row matching the filter.
func (c *Client) Update(ctx context.Context, table string, changes gateway.Row, filter gateway.Filter) ([]gateway.Row, error) {
	return c.rest(ctx, http.MethodPatch, table, filter, changes)
}

// Delete removes matching rows and returns them as they were.
func (c *Client) Delete(ctx context.Context, table string, filter gateway.Filter) ([]gateway.Row, error) {
	return c.rest(ctx, http.MethodDelete, table, filter, nil)
}

func (c *Client) rest(ctx context.Context, method, table string, filter gateway.Filter, body any) ([]gateway.Row, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)

	query := url.Values{}
	query.Set("select", "*")
	for col, val := range filter {
		query.Set(col, fmt.Sprintf("eq.%v", val))
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint+"?"+query.Encode(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req, c.apiKey)
	req.Header.Set("Prefer", "return=representation")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s %s: status %d: %s", method, table, resp.StatusCode, string(raw))
	}

	var rows []gateway.Row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return rows, nil
}

func (c *Client) authorize(req *http.Request, bearer string) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
}
