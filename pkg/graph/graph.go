// Package graph provides a compact in-memory directed graph stored as two
// flat sequences: nodes and edges, each addressed by its position. There is
// no adjacency list; every query walks the edge sequence directly, which
// keeps the store trivially small and the mutation path allocation-free.
//
// Node and edge identity is positional. Removing a node swaps the last node
// into the freed slot, so exactly one surviving node changes index per
// removal and indices are reused immediately. Callers that need stable
// external handles must maintain their own mapping on top.
//
// The Graph performs no locking (see pkg/engine for a guarded registry).
// Basic usage:
//
//	g := graph.New()
//	a := g.AddNode(graph.Text("hello"))
//	b := g.AddNode(graph.Text("world"))
//	g.AddEdge(graph.Edge{From: a, To: b})
//	path, ok := g.ShortestPath(a, b)
package graph

// Graph owns an ordered sequence of nodes and an ordered sequence of edges.
// The exported slices allow read access and iteration; mutate only through
// the methods, which maintain deduplication and index consistency.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode inserts a node and returns its index. If a structurally equal
// node is already present, the existing index is returned and the sequence
// does not grow. The same logical value therefore maps to the same index
// for the lifetime of the graph (until a removal reshuffles it).
func (g *Graph) AddNode(newNode Node) int {
	for idx, node := range g.Nodes {
		if node.Equal(newNode) {
			return idx
		}
	}

	g.Nodes = append(g.Nodes, newNode)
	return len(g.Nodes) - 1
}

// AddEdge inserts a directed edge and returns its index, with the same
// deduplication contract as AddNode. Endpoints are not validated here; the
// caller is responsible for passing indices of live nodes.
func (g *Graph) AddEdge(newEdge Edge) int {
	for idx, edge := range g.Edges {
		if edge == newEdge {
			return idx
		}
	}

	g.Edges = append(g.Edges, newEdge)
	return len(g.Edges) - 1
}

// FindNodeIdx returns the index of the node structurally equal to the
// argument, or ok=false when absent. It never mutates the graph.
func (g *Graph) FindNodeIdx(node Node) (int, bool) {
	for idx, current := range g.Nodes {
		if current.Equal(node) {
			return idx, true
		}
	}

	return 0, false
}

// RemoveNode deletes the node at idx and returns its value.
// Returns ok=false when idx is out of range.
//
// Removal uses a swap-with-last strategy: the last node takes over the
// freed slot instead of shifting the whole sequence. Every edge touching
// the removed index is deleted, and every surviving edge that referenced
// the moved node's old index is rewritten to its new position. The cost is
// O(nodes+edges), and exactly one node changes index.
func (g *Graph) RemoveNode(idx int) (Node, bool) {
	if idx < 0 || idx >= len(g.Nodes) {
		return Node{}, false
	}

	lastIdx := len(g.Nodes) - 1
	removed := g.Nodes[idx]

	// swap-remove: the last node takes the freed slot
	g.Nodes[idx] = g.Nodes[lastIdx]
	g.Nodes = g.Nodes[:lastIdx]

	// drop every edge touching the removed node
	kept := g.Edges[:0]
	for _, edge := range g.Edges {
		if edge.From == idx || edge.To == idx {
			continue
		}
		kept = append(kept, edge)
	}
	g.Edges = kept

	// if the removed node was not the last one, edges that referenced the
	// moved node now point at its new position
	if idx != lastIdx {
		for i := range g.Edges {
			if g.Edges[i].From == lastIdx {
				g.Edges[i].From = idx
			}
			if g.Edges[i].To == lastIdx {
				g.Edges[i].To = idx
			}
		}
	}

	return removed, true
}

// ReachableNodesFrom returns the target of every edge leaving nodeIdx, in
// edge insertion order. Duplicate targets are not collapsed.
func (g *Graph) ReachableNodesFrom(nodeIdx int) []int {
	var out []int
	for _, edge := range g.Edges {
		if edge.From == nodeIdx {
			out = append(out, edge.To)
		}
	}

	return out
}

// NodesThatCanReach returns the source of every edge arriving at nodeIdx,
// in edge insertion order. The mirror of ReachableNodesFrom.
func (g *Graph) NodesThatCanReach(nodeIdx int) []int {
	var out []int
	for _, edge := range g.Edges {
		if edge.To == nodeIdx {
			out = append(out, edge.From)
		}
	}

	return out
}

// Boundary returns the indices of every node with no outgoing edge, in
// ascending order. These are the sinks of the graph: other nodes may reach
// them, but they reach nothing. Returns ok=false when the set is empty,
// which includes the empty graph. A single isolated node is trivially on
// the boundary.
func (g *Graph) Boundary() ([]int, bool) {
	froms := make(map[int]struct{}, len(g.Edges))
	for _, edge := range g.Edges {
		froms[edge.From] = struct{}{}
	}

	var boundary []int
	for idx := range g.Nodes {
		if _, hasOut := froms[idx]; !hasOut {
			boundary = append(boundary, idx)
		}
	}

	if len(boundary) == 0 {
		return nil, false
	}
	return boundary, true
}

// Leaves is an alias for Boundary, for callers whose graph is a tree.
func (g *Graph) Leaves() ([]int, bool) {
	return g.Boundary()
}
