// Package client provides a Go client for the ArqDB HTTP API.
//
// It offers a type-safe way to perform all major operations:
//   - Graph management (Create, List, Info, Drop).
//   - Node operations (Add, Find, Remove, neighbour queries).
//   - Edge insertion.
//   - Traversal queries (Boundary, Distance, ShortestPath, Stats).
//
// The client handles HTTP communication, JSON serialization and
// standardized error handling. Blob payloads are transported as base64.
package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Custom Errors ---

// APIError represents an error returned by the ArqDB API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- Wire types ---

// GraphInfo models the information about a named graph.
type GraphInfo struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	CreatedAt time.Time `json:"created_at"`
}

// GraphStats models the topology summary of a graph.
type GraphStats struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	BoundaryNodes int     `json:"boundary_nodes"`
	MaxOutDegree  int     `json:"max_out_degree"`
	MeanOutDegree float64 `json:"mean_out_degree"`
	StdOutDegree  float64 `json:"std_out_degree"`
}

// NodeValue is the wire form of a tagged node payload. Use the TextNode,
// IntNode, or BlobNode constructors rather than filling it in by hand.
type NodeValue struct {
	Kind string  `json:"kind"`
	Text *string `json:"text,omitempty"`
	Int  *int    `json:"int,omitempty"`
	Blob string  `json:"blob,omitempty"`
}

// TextNode builds a text payload.
func TextNode(v string) NodeValue {
	return NodeValue{Kind: "text", Text: &v}
}

// IntNode builds an integer payload.
func IntNode(v int) NodeValue {
	return NodeValue{Kind: "int", Int: &v}
}

// BlobNode builds a binary payload.
func BlobNode(v []byte) NodeValue {
	return NodeValue{Kind: "blob", Blob: base64.StdEncoding.EncodeToString(v)}
}

type indexResponse struct {
	Index int `json:"index"`
}

type findResponse struct {
	Index int  `json:"index"`
	Found bool `json:"found"`
}

type removeNodeResponse struct {
	Removed NodeValue `json:"removed"`
}

type neighboursResponse struct {
	Indexes []int `json:"indexes"`
}

type boundaryResponse struct {
	Boundary []int `json:"boundary"`
	Found    bool  `json:"found"`
}

type distanceResponse struct {
	Distance int `json:"distance"`
}

type pathResponse struct {
	Path  []int `json:"path"`
	Found bool  `json:"found"`
}

// --- Client ---

// Client is the Go client for ArqDB.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New creates a new ArqDB client. Pass an empty token when the server runs
// without authentication.
func New(host string, port int, authToken string) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		authToken:  authToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// jsonRequest is the helper behind every API call. It handles JSON
// serialization, the HTTP round trip, and error mapping.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil // for 204 responses (e.g. DELETE)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

func decode[T any](data []byte) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// --- Graph management ---

// CreateGraph registers a new empty graph.
func (c *Client) CreateGraph(name string) (GraphInfo, error) {
	body, err := c.jsonRequest(http.MethodPost, "/graphs", map[string]string{"name": name})
	if err != nil {
		return GraphInfo{}, err
	}
	return decode[GraphInfo](body)
}

// ListGraphs returns info for every graph, ordered by name.
func (c *Client) ListGraphs() ([]GraphInfo, error) {
	body, err := c.jsonRequest(http.MethodGet, "/graphs", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]GraphInfo](body)
}

// Info returns the current counts and identity of one graph.
func (c *Client) Info(graph string) (GraphInfo, error) {
	body, err := c.jsonRequest(http.MethodGet, "/graphs/"+url.PathEscape(graph), nil)
	if err != nil {
		return GraphInfo{}, err
	}
	return decode[GraphInfo](body)
}

// DropGraph removes a graph and everything in it.
func (c *Client) DropGraph(graph string) error {
	_, err := c.jsonRequest(http.MethodDelete, "/graphs/"+url.PathEscape(graph), nil)
	return err
}

// --- Node operations ---

// AddNode inserts a node and returns its index. Re-inserting an equal
// value returns the existing index.
func (c *Client) AddNode(graph string, node NodeValue) (int, error) {
	body, err := c.jsonRequest(http.MethodPost, "/graphs/"+url.PathEscape(graph)+"/nodes", node)
	if err != nil {
		return 0, err
	}
	resp, err := decode[indexResponse](body)
	return resp.Index, err
}

// FindNode looks up a node index without mutating the graph.
func (c *Client) FindNode(graph string, node NodeValue) (int, bool, error) {
	body, err := c.jsonRequest(http.MethodPost, "/graphs/"+url.PathEscape(graph)+"/nodes/find", node)
	if err != nil {
		return 0, false, err
	}
	resp, err := decode[findResponse](body)
	return resp.Index, resp.Found, err
}

// RemoveNode deletes the node at idx and returns its value.
func (c *Client) RemoveNode(graph string, idx int) (NodeValue, error) {
	endpoint := fmt.Sprintf("/graphs/%s/nodes/%d", url.PathEscape(graph), idx)
	body, err := c.jsonRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return NodeValue{}, err
	}
	resp, err := decode[removeNodeResponse](body)
	return resp.Removed, err
}

// ReachableFrom returns the direct successors of a node.
func (c *Client) ReachableFrom(graph string, idx int) ([]int, error) {
	endpoint := fmt.Sprintf("/graphs/%s/nodes/%d/out", url.PathEscape(graph), idx)
	body, err := c.jsonRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[neighboursResponse](body)
	return resp.Indexes, err
}

// CanReach returns the direct predecessors of a node.
func (c *Client) CanReach(graph string, idx int) ([]int, error) {
	endpoint := fmt.Sprintf("/graphs/%s/nodes/%d/in", url.PathEscape(graph), idx)
	body, err := c.jsonRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[neighboursResponse](body)
	return resp.Indexes, err
}

// --- Edge operations ---

// AddEdge inserts a directed edge between two node indices and returns the
// edge index.
func (c *Client) AddEdge(graph string, from, to int) (int, error) {
	payload := map[string]int{"from": from, "to": to}
	body, err := c.jsonRequest(http.MethodPost, "/graphs/"+url.PathEscape(graph)+"/edges", payload)
	if err != nil {
		return 0, err
	}
	resp, err := decode[indexResponse](body)
	return resp.Index, err
}

// --- Traversal queries ---

// Boundary returns the sink nodes of a graph, ascending. found=false when
// every node has an outgoing edge.
func (c *Client) Boundary(graph string) ([]int, bool, error) {
	body, err := c.jsonRequest(http.MethodGet, "/graphs/"+url.PathEscape(graph)+"/boundary", nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := decode[boundaryResponse](body)
	return resp.Boundary, resp.Found, err
}

// Distance returns the BFS traversal counter between two nodes. The value
// is meaningless when 'to' is unreachable; use ShortestPath to test
// reachability.
func (c *Client) Distance(graph string, from, to int) (int, error) {
	endpoint := fmt.Sprintf("/graphs/%s/distance?from=%d&to=%d", url.PathEscape(graph), from, to)
	body, err := c.jsonRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := decode[distanceResponse](body)
	return resp.Distance, err
}

// ShortestPath returns a shortest directed path between two nodes as a
// sequence of node indices. found=false when no path exists.
func (c *Client) ShortestPath(graph string, from, to int) ([]int, bool, error) {
	endpoint := fmt.Sprintf("/graphs/%s/path?from=%d&to=%d", url.PathEscape(graph), from, to)
	body, err := c.jsonRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	resp, err := decode[pathResponse](body)
	return resp.Path, resp.Found, err
}

// Stats returns the topology summary of a graph.
func (c *Client) Stats(graph string) (GraphStats, error) {
	body, err := c.jsonRequest(http.MethodGet, "/graphs/"+url.PathEscape(graph)+"/stats", nil)
	if err != nil {
		return GraphStats{}, err
	}
	return decode[GraphStats](body)
}
