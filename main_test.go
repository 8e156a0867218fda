package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	return rec
}

func addBomb(t *testing.T, x, y, r string) AddBombResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{"x": x, "y": y, "radius": r})
	require.NoError(t, err)

	rec := doRequest(t, http.MethodPost, "/bombs", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AddBombResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAddBombDiscardsInvalidInput(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	resp := addBomb(t, "1", "2", "3")
	assert.True(t, resp.Added)
	assert.Equal(t, []Bomb{{1, 2, 3}}, resp.Bombs)

	resp = addBomb(t, "oops", "2", "3")
	assert.False(t, resp.Added)
	assert.Equal(t, []Bomb{{1, 2, 3}}, resp.Bombs)

	rec := doRequest(t, http.MethodGet, "/bombs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"numBombs":1`)
}

func TestDetonateSessionBombs(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	addBomb(t, "10", "10", "1")
	addBomb(t, "0", "0", "5")
	addBomb(t, "3", "0", "1")

	rec := doRequest(t, http.MethodPost, "/detonate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DetonateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.MaxDetonated)
	assert.Equal(t, 1, resp.Trigger)
	assert.Equal(t, []int{1, 2}, resp.Chain)
	assert.Equal(t, 3, resp.NumBombs)
	assert.Equal(t, 1, resp.NumEdges)

	_, result := snapshotSession()
	require.NotNil(t, result)
	assert.Equal(t, 2, result.MaxDetonated)

	// The visualization marks the first two bombs but the chain is 1 and 2
	rec = doRequest(t, http.MethodGet, "/visualization", "")
	require.Equal(t, http.StatusOK, rec.Code)
	fc, err := geojson.UnmarshalFeatureCollection(rec.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, true, fc.Features[0].Properties["highlighted"])
	assert.Equal(t, false, fc.Features[0].Properties["detonated"])
	assert.Equal(t, false, fc.Features[2].Properties["highlighted"])
	assert.Equal(t, true, fc.Features[2].Properties["detonated"])

	// Adding a bomb invalidates the stored result
	addBomb(t, "50", "50", "1")
	_, result = snapshotSession()
	assert.Nil(t, result)
}

func TestDetonateRequestBombs(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	body := `{"bombs": [
		{"x": 0, "y": 0, "radius": 10},
		{"x": 5, "y": 0, "radius": 10},
		{"x": "10", "y": 0, "radius": 10},
		{"x": "oops", "y": 0, "radius": 1}
	]}`
	rec := doRequest(t, http.MethodPost, "/detonate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DetonateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.MaxDetonated)
	assert.Equal(t, 3, resp.NumBombs)
	assert.Equal(t, 6, resp.NumEdges)

	// Request bombs never touch the session
	bombs, result := snapshotSession()
	assert.Empty(t, bombs)
	assert.Nil(t, result)
}

func TestDetonateEmptySession(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	rec := doRequest(t, http.MethodPost, "/detonate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DetonateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.MaxDetonated)
	assert.Equal(t, -1, resp.Trigger)
	assert.Empty(t, resp.Chain)
}

func TestDetonationGraphLines(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	setSessionBombs([]Bomb{{0, 0, 10}, {5, 0, 10}, {10, 0, 10}})

	rec := doRequest(t, http.MethodGet, "/detonationGraphLines", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Lines    [][][2]float64 `json:"lines"`
		NumNodes int            `json:"numNodes"`
		NumEdges int            `json:"numEdges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Lines, 3)
	assert.Equal(t, 3, resp.NumNodes)
	assert.Equal(t, 6, resp.NumEdges)
}

func TestClearBombs(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	addBomb(t, "1", "1", "1")
	rec := doRequest(t, http.MethodDelete, "/bombs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	bombs, _ := snapshotSession()
	assert.Empty(t, bombs)
}

func TestHandlerErrors(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"detonate wrong method", http.MethodGet, "/detonate", "", http.StatusMethodNotAllowed},
		{"detonate bad body", http.MethodPost, "/detonate", "{", http.StatusBadRequest},
		{"add bomb bad body", http.MethodPost, "/bombs", "[", http.StatusBadRequest},
		{"bombs wrong method", http.MethodPut, "/bombs", "", http.StatusMethodNotAllowed},
		{"lines wrong method", http.MethodPost, "/detonationGraphLines", "", http.StatusMethodNotAllowed},
		{"visualization wrong method", http.MethodPost, "/visualization", "", http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, "/detonate", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestHealth(t *testing.T) {
	clearSession()
	t.Cleanup(clearSession)

	setSessionBombs([]Bomb{{0, 0, 1}, {4, 4, 2}})

	rec := doRequest(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status      string             `json:"status"`
		NumBombs    int                `json:"numBombs"`
		HasResult   bool               `json:"hasResult"`
		BoundingBox map[string]float64 `json:"boundingBox"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, 2, resp.NumBombs)
	assert.False(t, resp.HasResult)
	assert.Equal(t, map[string]float64{"minX": -1, "minY": -1, "maxX": 6, "maxY": 6}, resp.BoundingBox)
}

func TestRunSolveOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bombs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"x": 0, "y": 0, "radius": 5},
		{"x": 3, "y": 0, "radius": 1},
		{"x": 10, "y": 10, "radius": 1}
	]`), 0644))

	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"-solve", path}))
	assert.Equal(t, "2\n", out.String())
}

func TestRunLoadError(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"-solve", filepath.Join(t.TempDir(), "missing.hcl")})
	assert.ErrorContains(t, err, "failed to load bombs")
}
