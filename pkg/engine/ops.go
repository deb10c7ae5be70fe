// This file implements the per-graph operational methods of the Engine,
// wrapping the core graph mutations and queries with name resolution,
// locking, index validation, and metrics bookkeeping.

package engine

import (
	"fmt"

	"github.com/arqdb/arqdb/pkg/graph"
	"github.com/arqdb/arqdb/pkg/metrics"
)

// --- Mutation ---

// AddNode inserts a node into the named graph and returns its index.
// Re-inserting a structurally equal node returns the existing index.
func (e *Engine) AddNode(graphName string, node graph.Node) (int, error) {
	var idx int
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		idx = entry.g.AddNode(node)
		metrics.GraphNodes.WithLabelValues(graphName).Set(float64(len(entry.g.Nodes)))
		return nil
	})
	return idx, err
}

// AddEdge inserts a directed edge between two existing node indices and
// returns its index. Unlike the core graph, the engine validates both
// endpoints, so an edge can never dangle after API-driven mutation.
func (e *Engine) AddEdge(graphName string, from, to int) (int, error) {
	var idx int
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		if err := checkRange(entry.g, from); err != nil {
			return fmt.Errorf("edge source: %w", err)
		}
		if err := checkRange(entry.g, to); err != nil {
			return fmt.Errorf("edge target: %w", err)
		}

		idx = entry.g.AddEdge(graph.Edge{From: from, To: to})
		metrics.GraphEdges.WithLabelValues(graphName).Set(float64(len(entry.g.Edges)))
		return nil
	})
	return idx, err
}

// RemoveNode deletes the node at idx together with every edge touching it,
// and returns the removed value. found=false when idx is out of range.
// Removal moves the last node into the freed slot, so one surviving node
// changes index; see graph.Graph.RemoveNode.
func (e *Engine) RemoveNode(graphName string, idx int) (graph.Node, bool, error) {
	var (
		removed graph.Node
		found   bool
	)
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		removed, found = entry.g.RemoveNode(idx)
		if found {
			metrics.GraphNodes.WithLabelValues(graphName).Set(float64(len(entry.g.Nodes)))
			metrics.GraphEdges.WithLabelValues(graphName).Set(float64(len(entry.g.Edges)))
		}
		return nil
	})
	return removed, found, err
}

// --- Queries ---

// FindNode looks up the index of a structurally equal node without
// mutating the graph. found=false when absent.
func (e *Engine) FindNode(graphName string, node graph.Node) (int, bool, error) {
	var (
		idx   int
		found bool
	)
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		idx, found = entry.g.FindNodeIdx(node)
		return nil
	})
	return idx, found, err
}

// ReachableFrom returns the direct successors of a node, in edge insertion
// order.
func (e *Engine) ReachableFrom(graphName string, idx int) ([]int, error) {
	var out []int
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		if err := checkRange(entry.g, idx); err != nil {
			return err
		}
		out = entry.g.ReachableNodesFrom(idx)
		return nil
	})
	return out, err
}

// CanReach returns the direct predecessors of a node, in edge insertion
// order.
func (e *Engine) CanReach(graphName string, idx int) ([]int, error) {
	var out []int
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		if err := checkRange(entry.g, idx); err != nil {
			return err
		}
		out = entry.g.NodesThatCanReach(idx)
		return nil
	})
	return out, err
}

// Boundary returns the indices of every node with no outgoing edge,
// ascending. ok=false when the set is empty.
func (e *Engine) Boundary(graphName string) ([]int, bool, error) {
	var (
		boundary []int
		ok       bool
	)
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		boundary, ok = entry.g.Boundary()
		return nil
	})
	return boundary, ok, err
}

// BFSDistance returns the breadth-first traversal counter from start to
// end. The value is meaningless when end is unreachable; use ShortestPath
// to test reachability.
func (e *Engine) BFSDistance(graphName string, start, end int) (int, error) {
	var d int
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		if err := checkRange(entry.g, start); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		if err := checkRange(entry.g, end); err != nil {
			return fmt.Errorf("end: %w", err)
		}
		d = entry.g.BFSDistance(start, end)
		return nil
	})
	return d, err
}

// ShortestPath returns a shortest directed path from start to end as a
// sequence of node indices. ok=false when no path exists.
func (e *Engine) ShortestPath(graphName string, start, end int) ([]int, bool, error) {
	var (
		path []int
		ok   bool
	)
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		if err := checkRange(entry.g, start); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		if err := checkRange(entry.g, end); err != nil {
			return fmt.Errorf("end: %w", err)
		}
		path, ok = entry.g.ShortestPath(start, end)
		return nil
	})
	return path, ok, err
}

// Stats returns the topology summary of a graph.
func (e *Engine) Stats(graphName string) (graph.Stats, error) {
	var s graph.Stats
	err := e.withGraph(graphName, func(entry *graphEntry) error {
		s = entry.g.Stats()
		return nil
	})
	return s, err
}

func checkRange(g *graph.Graph, idx int) error {
	if idx < 0 || idx >= len(g.Nodes) {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrNodeOutOfRange, idx, len(g.Nodes))
	}
	return nil
}
