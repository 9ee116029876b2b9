package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicery-dev/invoicery/internal/config"
	"github.com/invoicery-dev/invoicery/internal/model"
)

type fakeAPI struct {
	t            *testing.T
	tokenCalls   int
	invoiceCalls int
	lookupPaths  []string
	lastInvoice  map[string]any
	expiresIn    int
	insertStatus int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	api := &fakeAPI{t: t, expiresIn: 3600, insertStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/auth/token", api.handleToken)
	mux.HandleFunc("POST /v2/enrichment/invoices", api.handleInvoice)
	mux.HandleFunc("POST /v2/enrichment/lookup-tables/{table}", api.handleLookup)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(config.APIConfig{
		BaseURL:      srv.URL,
		AuthPath:     "/v2/auth/token",
		InvoicesPath: "/v2/enrichment/invoices",
		LookupPath:   "/v2/enrichment/lookup-tables",
	}, "id-1", "secret-1")

	return api, c
}

func (f *fakeAPI) handleToken(w http.ResponseWriter, r *http.Request) {
	f.tokenCalls++

	user, pass, ok := r.BasicAuth()
	assert.True(f.t, ok, "token exchange uses basic auth")
	assert.Equal(f.t, "id-1", user)
	assert.Equal(f.t, "secret-1", pass)
	assert.Equal(f.t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

	require.NoError(f.t, r.ParseForm())
	assert.Equal(f.t, "client_credentials", r.PostForm.Get("grant_type"))

	fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, f.tokenCalls, f.expiresIn)
}

func (f *fakeAPI) handleInvoice(w http.ResponseWriter, r *http.Request) {
	f.invoiceCalls++

	assert.Equal(f.t, fmt.Sprintf("Bearer tok-%d", f.tokenCalls), r.Header.Get("Authorization"))
	assert.Equal(f.t, "application/json", r.Header.Get("Content-Type"))
	assert.NotEmpty(f.t, r.Header.Get("X-Request-Id"))

	var body map[string]any
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
	f.lastInvoice = body

	w.WriteHeader(f.insertStatus)
	fmt.Fprint(w, `{"id":"created-1"}`)
}

func (f *fakeAPI) handleLookup(w http.ResponseWriter, r *http.Request) {
	f.lookupPaths = append(f.lookupPaths, r.URL.Path)
	fmt.Fprint(w, `{}`)
}

func TestInsertInvoice(t *testing.T) {
	api, c := newFakeAPI(t)

	resp, err := c.InsertInvoice(context.Background(), &model.InvoicePayload{
		ExternalID:   "inv-1",
		Currency:     "EUR",
		InvoiceLines: []model.LinePayload{},
	})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, `{"id":"created-1"}`, resp.Body)

	assert.Equal(t, 1, api.tokenCalls)
	assert.Equal(t, "inv-1", api.lastInvoice["externalId"])
	lines, ok := api.lastInvoice["invoiceLines"].([]any)
	assert.True(t, ok, "invoiceLines is always a JSON array")
	assert.Empty(t, lines)
}

func TestTokenReused(t *testing.T) {
	api, c := newFakeAPI(t)

	for range 3 {
		_, err := c.InsertInvoice(context.Background(), &model.InvoicePayload{ExternalID: "inv-1"})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, api.tokenCalls, "a fresh token covers the whole batch")
	assert.Equal(t, 3, api.invoiceCalls)
}

func TestTokenRefreshedNearExpiry(t *testing.T) {
	api, c := newFakeAPI(t)
	api.expiresIn = 5 // inside the refresh skew, so every call refetches

	_, err := c.InsertInvoice(context.Background(), &model.InvoicePayload{ExternalID: "inv-1"})
	require.NoError(t, err)
	_, err = c.InsertInvoice(context.Background(), &model.InvoicePayload{ExternalID: "inv-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, api.tokenCalls)
}

func TestRejectionIsNotAnError(t *testing.T) {
	api, c := newFakeAPI(t)
	api.insertStatus = http.StatusUnprocessableEntity

	resp, err := c.InsertInvoice(context.Background(), &model.InvoicePayload{ExternalID: "inv-1"})
	require.NoError(t, err, "a 4xx is a result, not a transport failure")
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
}

func TestInsertLookupRow(t *testing.T) {
	api, c := newFakeAPI(t)

	resp, err := c.InsertLookupRow(context.Background(), "cost_centers", map[string]string{
		"externalId": "CC-100", "key": "100", "description": "Admin",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())

	require.Len(t, api.lookupPaths, 1)
	assert.Equal(t, "/v2/enrichment/lookup-tables/cost_centers", api.lookupPaths[0])
}

func TestAuthenticate(t *testing.T) {
	api, c := newFakeAPI(t)

	expiry, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.tokenCalls)
	assert.True(t, expiry.After(time.Now().Add(50*time.Minute)))
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/auth/token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(config.APIConfig{BaseURL: srv.URL, AuthPath: "/v2/auth/token"}, "id", "bad")
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	c := New(config.APIConfig{BaseURL: "http://localhost"}, "", "")
	_, err := c.Authenticate(context.Background())
	require.Error(t, err)
}
