package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	srv := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(srv.Close)
	return srv
}

func doReq(t *testing.T, method, url, token, csrf string, body any) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if csrf != "" {
		req.Header.Set("X-CSRF-Token", csrf)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestAuthRequired(t *testing.T) {
	srv := testServer(t, Config{})
	resp, env := doReq(t, http.MethodGet, srv.URL+"/api/claim", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "missing bearer token", env.Message)
}

func TestAuthFixedToken(t *testing.T) {
	srv := testServer(t, Config{Token: "secret"})
	resp, _ := doReq(t, http.MethodGet, srv.URL+"/api/claim", "wrong", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env := doReq(t, http.MethodGet, srv.URL+"/api/claim", "secret", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}

func TestCSRFOnMutations(t *testing.T) {
	srv := testServer(t, Config{CSRF: "csrf-token"})
	resp, env := doReq(t, http.MethodPost, srv.URL+"/api/claim/store", "tok", "", Record{"claim_description": "x"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	// Reads pass without the header.
	resp, _ = doReq(t, http.MethodGet, srv.URL+"/api/claim", "tok", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doReq(t, http.MethodPost, srv.URL+"/api/claim/store", "tok", "csrf-token", Record{"claim_description": "x"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCRUDFlow(t *testing.T) {
	srv := testServer(t, Config{})
	base := srv.URL + "/api/claim"

	resp, env := doReq(t, http.MethodPost, base+"/store", "tok", "", Record{
		"claim_description": "water damage",
		"id":                999, // server-assigned fields in the body are ignored
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := env.Data.(map[string]any)
	assert.Equal(t, "water damage", rec["claim_description"])
	assert.Equal(t, float64(1), rec["id"])
	assert.NotEmpty(t, rec["uuid"])
	assert.NotEmpty(t, rec["created_at"])
	assert.Nil(t, rec["deleted_at"])
	uuid := rec["uuid"].(string)

	// Collections are isolated per entity.
	_, env = doReq(t, http.MethodGet, srv.URL+"/api/customer", "tok", "", nil)
	assert.Empty(t, env.Data)

	_, env = doReq(t, http.MethodGet, base, "tok", "", nil)
	require.Len(t, env.Data, 1)

	_, env = doReq(t, http.MethodPatch, base+"/update/"+uuid, "tok", "", Record{"claim_description": "fire damage"})
	rec = env.Data.(map[string]any)
	assert.Equal(t, "fire damage", rec["claim_description"])

	resp, env = doReq(t, http.MethodDelete, base+"/delete/"+uuid, "tok", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec = env.Data.(map[string]any)
	deletedAt := rec["deleted_at"]
	require.NotNil(t, deletedAt)

	// A second delete keeps the original timestamp and the record stays
	// listed.
	_, env = doReq(t, http.MethodDelete, base+"/delete/"+uuid, "tok", "", nil)
	assert.Equal(t, deletedAt, env.Data.(map[string]any)["deleted_at"])
	_, env = doReq(t, http.MethodGet, base, "tok", "", nil)
	assert.Len(t, env.Data, 1)

	_, env = doReq(t, http.MethodPut, base+"/restore/"+uuid, "tok", "", nil)
	assert.Nil(t, env.Data.(map[string]any)["deleted_at"])
}

func TestGetMissAnswersEmptyEnvelope(t *testing.T) {
	srv := testServer(t, Config{})
	resp, env := doReq(t, http.MethodGet, srv.URL+"/api/claim/nope", "tok", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
}

func TestMutationMissAnswers404(t *testing.T) {
	srv := testServer(t, Config{})
	resp, env := doReq(t, http.MethodDelete, srv.URL+"/api/claim/delete/nope", "tok", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "no record found")
}

func TestSQLiteStoreBackedServer(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "mock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := testServer(t, Config{Store: store})
	base := srv.URL + "/api/customer"

	resp, env := doReq(t, http.MethodPost, base+"/store", "tok", "", Record{"customer_description": "Ada"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	uuid := env.Data.(map[string]any)["uuid"].(string)

	_, env = doReq(t, http.MethodGet, base+"/"+uuid, "tok", "", nil)
	assert.Equal(t, "Ada", env.Data.(map[string]any)["customer_description"])

	_, env = doReq(t, http.MethodDelete, base+"/delete/"+uuid, "tok", "", nil)
	assert.NotNil(t, env.Data.(map[string]any)["deleted_at"])

	_, env = doReq(t, http.MethodGet, base, "tok", "", nil)
	require.Len(t, env.Data, 1)
}
