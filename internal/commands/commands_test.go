package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicery-dev/invoicery/internal/config"
	"github.com/invoicery-dev/invoicery/internal/runlog"
	"github.com/invoicery-dev/invoicery/internal/sample"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestInit(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "invoicery.yaml")

	data, err := os.ReadFile("invoicery.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://api.cloud.hypatos.ai")

	_, err = run(t, "init")
	require.Error(t, err, "refuses to clobber an existing config")

	_, err = run(t, "init", "--force")
	require.NoError(t, err)

	_, err = run(t, "init", "proj")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join("proj", "invoicery.yaml"))
	require.NoError(t, err)
}

func TestTransform(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	out, err := run(t, "transform", "in.csv", "--compact")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "three rows collapse into two invoices")

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "ext-1", first["externalId"])
	assert.Equal(t, "ext-2", second["externalId"])
	assert.Len(t, second["invoiceLines"], 2)
	assert.Equal(t, "30", second["totalTaxAmount"], "10.00 + 20.00 summed as decimals")
}

func TestTransform_Limit(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	out, err := run(t, "transform", "in.csv", "--compact", "--limit", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"externalId":"ext-1"`)
}

func TestTransform_TestMode(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "transform", "--test", "--compact",
		"--set", "externalId=probe-1", "--set", "currency=EUR")
	require.NoError(t, err)

	assert.Contains(t, out, `"externalId":"probe-1"`)
	assert.Contains(t, out, `"invoiceLines":[]`)
}

func TestTransform_BadTaxModeNoOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	out, err := run(t, "transform", "in.csv", "--tax-mode", "per-line")
	require.Error(t, err)
	assert.NotContains(t, out, `"externalId"`, "config problems surface before any payload")
}

func TestTransform_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "transform")
	require.Error(t, err)
}

// enrichmentStub fakes the auth and insert endpoints with canned responses.
func enrichmentStub(t *testing.T, insertStatus int) (*httptest.Server, *int) {
	t.Helper()
	calls := new(int)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/auth/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tok","expires_in":3600}`)
	})
	mux.HandleFunc("POST /", func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(insertStatus)
		fmt.Fprint(w, `{"id":"created"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, calls
}

func writeStubConfig(t *testing.T, baseURL string) {
	t.Helper()
	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.ClientID = "id"
	cfg.API.ClientSecret = "secret"
	cfg.Send.DelayMS = 0
	require.NoError(t, config.Save("invoicery.yaml", cfg))
}

func TestSend(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, calls := enrichmentStub(t, http.StatusOK)
	writeStubConfig(t, srv.URL)
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	out, err := run(t, "send", "in.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, *calls)
	assert.Contains(t, out, "OK   ext-1")
	assert.Contains(t, out, "OK   ext-2")
	assert.Contains(t, out, "2 sent, 0 failed")

	entries, err := runlog.Read(".")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "send", entries[0].Command)
	assert.Equal(t, "ext-1", entries[0].ExternalID)
	assert.Equal(t, http.StatusOK, entries[0].Status)
}

func TestSend_RejectionsLoggedAndReported(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, calls := enrichmentStub(t, http.StatusUnprocessableEntity)
	writeStubConfig(t, srv.URL)
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	out, err := run(t, "send", "in.csv")
	require.Error(t, err, "a batch with failures exits non-zero")

	assert.Equal(t, 2, *calls, "one rejection does not stop the batch")
	assert.Contains(t, out, "FAIL ext-1")

	entries, rerr := runlog.Read(".")
	require.NoError(t, rerr)
	require.Len(t, entries, 2)
	assert.Equal(t, http.StatusUnprocessableEntity, entries[0].Status)
}

func TestSend_NoCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("in.csv", sample.Basic(false), 0o644))

	_, err := run(t, "send", "in.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestLookup_DryRun(t *testing.T) {
	t.Chdir(t.TempDir())
	csv := "externalId,key,description\nCC-100,100,Admin\nCC-200,200,Ops\n"
	require.NoError(t, os.WriteFile("cc.csv", []byte(csv), 0o644))

	out, err := run(t, "lookup", "Cost Centers", "cc.csv", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, `"externalId":"CC-100"`)
	assert.Contains(t, out, `2 row(s) for table "cost_centers" (dry run)`)
}

func TestLookup_MissingColumns(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("cc.csv", []byte("externalId,key\nCC-1,1\n"), 0o644))

	_, err := run(t, "lookup", "cost_centers", "cc.csv", "--dry-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description")

	out, err := run(t, "lookup", "cost_centers", "cc.csv", "--dry-run", "--no-check")
	require.NoError(t, err)
	assert.Contains(t, out, `"externalId":"CC-1"`)
}

func TestLookup_Upload(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, calls := enrichmentStub(t, http.StatusOK)
	writeStubConfig(t, srv.URL)
	require.NoError(t, os.WriteFile("cc.csv", []byte("externalId,key,description\nCC-1,1,Admin\n"), 0o644))

	out, err := run(t, "lookup", "cost_centers", "cc.csv")
	require.NoError(t, err)

	assert.Equal(t, 1, *calls)
	assert.Contains(t, out, `1 inserted, 0 failed into "cost_centers"`)

	entries, err := runlog.Read(".")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lookup", entries[0].Command)
	assert.Equal(t, "CC-1", entries[0].ExternalID)
}

func TestLookup_InvalidType(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("cc.csv", []byte("externalId,key,description\nCC-1,1,d\n"), 0o644))

	_, err := run(t, "lookup", "///", "cc.csv", "--dry-run")
	require.Error(t, err)
}

func TestSample(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "sample")
	require.NoError(t, err)
	data, err := os.ReadFile("sample-invoices.csv")
	require.NoError(t, err)
	assert.Contains(t, string(data), "externalId")

	out, err := run(t, "sample", "--out", "-", "--scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "ext-po-2")

	_, err = run(t, "sample", "--scenarios", "--with-gl-cc")
	require.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Chdir(t.TempDir())
	srv, _ := enrichmentStub(t, http.StatusOK)
	writeStubConfig(t, srv.URL)

	out, err := run(t, "token")
	require.NoError(t, err)
	assert.Contains(t, out, "Authenticated against "+srv.URL)
}
