package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mgr, err := NewIndexManager(t.TempDir(), nil)
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHandler(mgr, nil).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestCreateAndSearchIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name":     "demo",
		"sequence": "ACGTACGT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "demo", body["name"])
	assert.EqualValues(t, 8, body["length"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/indexes/demo/search", map[string]any{
		"queries": []string{"ACGT", "GG"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	results := body["results"].([]any)
	require.Len(t, results, 2)
	first := results[0].(map[string]any)
	assert.Equal(t, []any{float64(0), float64(4)}, first["positions"])
	second := results[1].(map[string]any)
	assert.Empty(t, second["positions"])
}

func TestSearchWithErrors(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name":     "demo",
		"sequence": "ACGTACGT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/indexes/demo/search", map[string]any{
		"queries":   []string{"CGTC"},
		"max_error": map[string]int{"total": 1, "substitution": 1},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	first := results[0].(map[string]any)
	assert.Equal(t, []any{float64(1)}, first["positions"])
}

func TestCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name": "noseq",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name":     "bad",
		"sequence": "ACGN",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Duplicate names conflict.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name": "dup", "sequence": "ACGT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name": "dup", "sequence": "ACGT",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/indexes", map[string]any{
		"name": "gone", "sequence": "ACGT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/indexes/gone", nil)
	require.NoError(t, err)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	resp3, err := http.Get(srv.URL + "/indexes/gone")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp3.StatusCode)
}

func TestManagerPersistenceAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	mgr, err := NewIndexManager(dir, nil)
	require.NoError(t, err)
	_, err = mgr.Create("persisted", "GATTACA")
	require.NoError(t, err)

	// A fresh manager over the same data dir reloads the index.
	mgr2, err := NewIndexManager(dir, nil)
	require.NoError(t, err)
	inst, err := mgr2.Get("persisted")
	require.NoError(t, err)
	assert.Equal(t, 7, inst.Length)
	assert.Equal(t, []string{"persisted"}, mgr2.List())
}
