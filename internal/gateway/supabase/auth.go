package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"invoice-management-backend/internal/gateway"
	"invoice-management-backend/internal/models"
)

type sessionResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        models.AuthUser `json:"user"`
}

// SignUp registers a user with GoTrue and returns the issued session.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*models.Session, error) {
	payload := map[string]any{"email": email, "password": password}
	if name != "" {
		payload["data"] = map[string]any{"name": name}
	}
	return c.session(ctx, "/auth/v1/signup", payload)
}

// SignIn exchanges an email/password pair for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	payload := map[string]any{"email": email, "password": password}
	sess, err := c.session(ctx, "/auth/v1/token?grant_type=password", payload)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && (se.code == http.StatusBadRequest || se.code == http.StatusUnauthorized) {
			return nil, gateway.ErrInvalidCredentials
		}
		return nil, err
	}
	return sess, nil
}

// VerifyToken asks GoTrue who the bearer token belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (*models.AuthUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req, token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user models.AuthUser
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		return &user, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, gateway.ErrInvalidCredentials
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("verify token: status %d: %s", resp.StatusCode, string(raw))
	}
}

func (c *Client) session(ctx context.Context, path string, payload map[string]any) (*models.Session, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &models.Session{
		AccessToken: sr.AccessToken,
		TokenType:   sr.TokenType,
		ExpiresIn:   sr.ExpiresIn,
		User:        sr.User,
	}, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("auth request failed: status %d: %s", e.code, e.body)
}

