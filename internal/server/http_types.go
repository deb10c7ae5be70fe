package server

import (
	"encoding/base64"
	"fmt"

	"github.com/arqdb/arqdb/pkg/graph"
)

// --- Requests ---

type createGraphRequest struct {
	Name string `json:"name"`
}

// nodePayload is the wire form of a tagged node value. Exactly one of the
// value fields is read, selected by Kind. Blob payloads travel as base64.
type nodePayload struct {
	Kind string  `json:"kind"`
	Text *string `json:"text,omitempty"`
	Int  *int    `json:"int,omitempty"`
	Blob string  `json:"blob,omitempty"`
}

// toNode converts the wire form into a core node.
func (p nodePayload) toNode() (graph.Node, error) {
	switch p.Kind {
	case "text":
		if p.Text == nil {
			return graph.Node{}, fmt.Errorf("kind %q requires the 'text' field", p.Kind)
		}
		return graph.Text(*p.Text), nil

	case "int":
		if p.Int == nil {
			return graph.Node{}, fmt.Errorf("kind %q requires the 'int' field", p.Kind)
		}
		return graph.Int(*p.Int), nil

	case "blob":
		raw, err := base64.StdEncoding.DecodeString(p.Blob)
		if err != nil {
			return graph.Node{}, fmt.Errorf("blob payload is not valid base64: %w", err)
		}
		return graph.Blob(raw), nil

	default:
		return graph.Node{}, fmt.Errorf("unknown node kind %q (want text, int or blob)", p.Kind)
	}
}

// fromNode converts a core node into its wire form.
func fromNode(n graph.Node) nodePayload {
	switch n.Kind() {
	case graph.KindText:
		text, _ := n.TextValue()
		return nodePayload{Kind: "text", Text: &text}

	case graph.KindInt:
		num, _ := n.IntValue()
		return nodePayload{Kind: "int", Int: &num}

	default:
		raw, _ := n.BlobValue()
		return nodePayload{Kind: "blob", Blob: base64.StdEncoding.EncodeToString(raw)}
	}
}

type addEdgeRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// --- Responses ---

type indexResponse struct {
	Index int `json:"index"`
}

type findResponse struct {
	Index int  `json:"index"`
	Found bool `json:"found"`
}

type removeNodeResponse struct {
	Removed nodePayload `json:"removed"`
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

type errorResponse struct {
	Error string `json:"error"`
}
