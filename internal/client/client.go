// Package client submits built payloads to the enrichment service. The
// transformation core never touches it: re-iterating a payload sequence
// cannot double-submit anything.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/invoicery-dev/invoicery/internal/config"
	"github.com/invoicery-dev/invoicery/internal/model"
)

// maxBodyBytes caps how much of a response body is retained for reporting.
const maxBodyBytes = 64 << 10

const requestTimeout = 60 * time.Second

// Client talks to the enrichment API. It is not safe for concurrent use;
// submission is sequential.
type Client struct {
	baseURL      string
	authPath     string
	invoicesPath string
	lookupPath   string
	clientID     string
	clientSecret string
	httpc        *http.Client
	token        token
}

// New creates a Client from the API configuration.
func New(api config.APIConfig, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      api.BaseURL,
		authPath:     api.AuthPath,
		invoicesPath: api.InvoicesPath,
		lookupPath:   api.LookupPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpc:        &http.Client{Timeout: requestTimeout},
	}
}

// Response captures the API's reply to one insert. Status >= 300 is not an
// error at this layer. The caller decides whether to continue, and it
// always does: one rejected invoice must not sink the rest of the batch.
type Response struct {
	Status int
	Body   string
}

// OK reports whether the insert was accepted.
func (r Response) OK() bool {
	return r.Status < 300
}

// InsertInvoice posts one invoice payload to the enrichment insert path.
func (c *Client) InsertInvoice(ctx context.Context, p *model.InvoicePayload) (Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, fmt.Errorf("encoding payload: %w", err)
	}
	return c.post(ctx, strings.TrimRight(c.baseURL, "/")+c.invoicesPath, body)
}

// InsertLookupRow posts one lookup-table row to the per-type endpoint.
func (c *Client) InsertLookupRow(ctx context.Context, table string, row map[string]string) (Response, error) {
	body, err := json.Marshal(row)
	if err != nil {
		return Response{}, fmt.Errorf("encoding row: %w", err)
	}
	url := strings.TrimRight(c.baseURL, "/") + strings.TrimRight(c.lookupPath, "/") + "/" + table
	return c.post(ctx, url, body)
}

func (c *Client) post(ctx context.Context, url string, body []byte) (Response, error) {
	if err := c.ensureToken(ctx); err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token.access)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("posting to %s: %w", url, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("reading response: %w", err)
	}

	return Response{Status: resp.StatusCode, Body: string(b)}, nil
}
