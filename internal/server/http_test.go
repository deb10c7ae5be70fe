package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqdb/arqdb/pkg/engine"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	eng, err := engine.Open(engine.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })

	s, err := NewServer(eng, cfg)
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealthzEndpoint(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthToken = "secret-token"
	s := newTestServer(t, cfg)

	t.Run("healthz stays open", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("api requires token", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("api accepts valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graphs", nil)
		req.Header.Set("Authorization", "Bearer secret-token")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("api rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/graphs", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGraphLifecycleEndpoints(t *testing.T) {
	s := newTestServer(t, DefaultConfig())

	rec := doJSON(t, s, http.MethodPost, "/graphs", createGraphRequest{Name: "social"})
	require.Equal(t, http.StatusCreated, rec.Code)
	info := decodeBody[engine.GraphInfo](t, rec)
	assert.Equal(t, "social", info.Name)
	assert.NotEmpty(t, info.ID)

	rec = doJSON(t, s, http.MethodPost, "/graphs", createGraphRequest{Name: "social"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/graphs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]engine.GraphInfo](t, rec)
	assert.Len(t, list, 1)

	rec = doJSON(t, s, http.MethodGet, "/graphs/social", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/graphs/social", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/graphs/social", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// buildGraph populates the shared 6-node topology over the HTTP API.
func buildGraph(t *testing.T, s *Server, name string) {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/graphs", createGraphRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, text := range []string{"hello", "world", "foo", "bar", "baz", "asd"} {
		payload := nodePayload{Kind: "text", Text: &text}
		rec := doJSON(t, s, http.MethodPost, "/graphs/"+name+"/nodes", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	for _, e := range [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {3, 5}, {4, 5}} {
		rec := doJSON(t, s, http.MethodPost, "/graphs/"+name+"/edges", addEdgeRequest{From: e[0], To: e[1]})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestNodeAndEdgeEndpoints(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	buildGraph(t, s, "g")

	t.Run("duplicate node returns original index", func(t *testing.T) {
		text := "hello"
		rec := doJSON(t, s, http.MethodPost, "/graphs/g/nodes", nodePayload{Kind: "text", Text: &text})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 0, decodeBody[indexResponse](t, rec).Index)
	})

	t.Run("find node", func(t *testing.T) {
		text := "bar"
		rec := doJSON(t, s, http.MethodPost, "/graphs/g/nodes/find", nodePayload{Kind: "text", Text: &text})
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[findResponse](t, rec)
		assert.True(t, resp.Found)
		assert.Equal(t, 3, resp.Index)
	})

	t.Run("int and blob payloads round-trip", func(t *testing.T) {
		num := 42
		rec := doJSON(t, s, http.MethodPost, "/graphs/g/nodes", nodePayload{Kind: "int", Int: &num})
		require.Equal(t, http.StatusCreated, rec.Code)
		intIdx := decodeBody[indexResponse](t, rec).Index

		rec = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/graphs/g/nodes/%d", intIdx), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		removed := decodeBody[removeNodeResponse](t, rec).Removed
		require.NotNil(t, removed.Int)
		assert.Equal(t, "int", removed.Kind)
		assert.Equal(t, 42, *removed.Int)
	})

	t.Run("invalid payload kind", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/graphs/g/nodes", nodePayload{Kind: "float"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("edge endpoint validation", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/graphs/g/edges", addEdgeRequest{From: 0, To: 99})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("neighbours", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/nodes/0/out", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int{1, 2, 3, 4}, decodeBody[neighboursResponse](t, rec).Indexes)

		rec = doJSON(t, s, http.MethodGet, "/graphs/g/nodes/5/in", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []int{3, 4}, decodeBody[neighboursResponse](t, rec).Indexes)
	})
}

func TestTraversalEndpoints(t *testing.T) {
	s := newTestServer(t, DefaultConfig())
	buildGraph(t, s, "g")

	t.Run("boundary", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/boundary", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[boundaryResponse](t, rec)
		assert.True(t, resp.Found)
		assert.Equal(t, []int{1, 2, 5}, resp.Boundary)
	})

	t.Run("distance", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/distance?from=0&to=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, decodeBody[distanceResponse](t, rec).Distance)
	})

	t.Run("distance needs parameters", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/distance?from=0", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("shortest path", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/path?from=0&to=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[pathResponse](t, rec)
		require.True(t, resp.Found)
		assert.Contains(t, [][]int{{0, 3, 5}, {0, 4, 5}}, resp.Path)
	})

	t.Run("no path", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/path?from=2&to=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[pathResponse](t, rec)
		assert.False(t, resp.Found)
		assert.Empty(t, resp.Path)
	})

	t.Run("stats", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/g/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var stats struct {
			Nodes         int `json:"nodes"`
			Edges         int `json:"edges"`
			BoundaryNodes int `json:"boundary_nodes"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, 6, stats.Nodes)
		assert.Equal(t, 6, stats.Edges)
		assert.Equal(t, 3, stats.BoundaryNodes)
	})

	t.Run("unknown graph", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/graphs/ghost/boundary", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
