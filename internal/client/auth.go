package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// expirySkew refreshes tokens slightly before the server-side expiry so an
// in-flight request never rides a dying token.
const expirySkew = 30 * time.Second

// defaultExpiresIn applies when the auth response omits expires_in.
const defaultExpiresIn = 3600

// token is a cached OAuth2 access token.
type token struct {
	access string
	expiry time.Time
}

func (t token) valid(now time.Time) bool {
	return t.access != "" && now.Before(t.expiry.Add(-expirySkew))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Authenticate fetches a fresh token immediately and returns its expiry.
// Used by the token command as a connectivity check; Insert* calls manage
// the token themselves.
func (c *Client) Authenticate(ctx context.Context) (time.Time, error) {
	if err := c.fetchToken(ctx); err != nil {
		return time.Time{}, err
	}
	return c.token.expiry, nil
}

// ensureToken makes sure a usable token is cached, refreshing if needed.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token.valid(time.Now()) {
		return nil
	}
	return c.fetchToken(ctx)
}

// fetchToken runs the OAuth2 client-credentials exchange: form-encoded
// grant with HTTP basic auth.
func (c *Client) fetchToken(ctx context.Context) error {
	if c.clientID == "" || c.clientSecret == "" {
		return fmt.Errorf("client id and client secret are required")
	}

	url := strings.TrimRight(c.baseURL, "/") + c.authPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(strings.TrimSpace(c.clientID), strings.TrimSpace(c.clientSecret))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return fmt.Errorf("no access_token in response")
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = defaultExpiresIn
	}

	c.token = token{
		access: tr.AccessToken,
		expiry: time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	return nil
}
