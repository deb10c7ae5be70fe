package graph

import "slices"

// BFSDistance runs a breadth-first traversal from start over directed edges
// and returns a hop counter for reaching end. The counter increments each
// time a node is dequeued as finished, and the function returns counter+1
// the instant end is first enqueued, so the value reflects traversal effort
// rather than edge count. start == end returns 0 immediately.
//
// When end is unreachable the traversal drains the frontier and returns the
// final counter value; there is no separate unreachable signal, so the
// return value is meaningless in that case. Callers that need to know
// whether a path exists should use ShortestPath and check ok.
func (g *Graph) BFSDistance(start, end int) int {
	if start == end {
		return 0
	}

	queue := []int{start}
	visited := make(map[int]struct{})
	distance := 0

	for len(queue) > 0 {
		working := queue[0]

		for _, neighbour := range g.ReachableNodesFrom(working) {
			if _, seen := visited[neighbour]; seen {
				continue
			}
			queue = append(queue, neighbour)

			if neighbour == end {
				return distance + 1
			}
		}

		// working node is finished
		visited[working] = struct{}{}
		queue = queue[1:]
		distance++
	}

	return distance
}

// ShortestPath finds a shortest directed path (by edge count) from start to
// end and returns it as a sequence of node indices beginning with start and
// ending with end, where every consecutive pair is an edge of the graph.
// Returns ok=false when no directed path exists. A query from a node to
// itself also reports no path, even in the presence of a self-loop.
//
// The search builds an auxiliary exploration tree: a second Graph whose
// nodes carry, as integer payloads, indices of the receiver graph. The
// start node becomes the root, and each breadth-first expansion round turns
// the current tree leaves into parents of their unvisited neighbours. When
// end first shows up among the neighbours, the path is reconstructed by
// walking parent edges from the current leaf back to the root, collecting
// each payload, then reversing.
//
// Neighbours are explored in edge insertion order, so among multiple
// shortest paths the one through the earliest-inserted edges wins.
func (g *Graph) ShortestPath(start, end int) ([]int, bool) {
	visited := map[int]struct{}{start: {}}

	tree := New()
	tree.AddNode(Int(start))

	for {
		// a non-empty tree always has leaves, so the ok result is moot here
		leaves, _ := tree.Leaves()
		grown := false

		for _, leafIdx := range leaves {
			origIdx := tree.Nodes[leafIdx].mustInt()

			for _, neighbour := range g.ReachableNodesFrom(origIdx) {
				if _, seen := visited[neighbour]; seen {
					continue
				}

				if neighbour == end {
					return backtrackPath(tree, leafIdx, end), true
				}

				childIdx := tree.AddNode(Int(neighbour))
				tree.AddEdge(Edge{From: leafIdx, To: childIdx})
				visited[neighbour] = struct{}{}
				grown = true
			}
		}

		// nothing left to explore and end never showed up
		if !grown {
			return nil, false
		}
	}
}

// backtrack walks parent edges of the exploration tree from leafIdx up to
// the root, collecting the original-graph index stored in each tree node,
// and returns the root-to-end path. The destination itself is not in the
// tree; it is prepended directly.
func backtrackPath(tree *Graph, leafIdx, end int) []int {
	path := []int{end}

	current := leafIdx
	for {
		path = append(path, tree.Nodes[current].mustInt())

		parent, hasParent := tree.parentOf(current)
		if !hasParent {
			// reached the root, the path is complete
			break
		}
		current = parent
	}

	slices.Reverse(path)
	return path
}

// parentOf returns the source of the edge arriving at idx. In the
// exploration tree every node except the root has exactly one parent.
func (g *Graph) parentOf(idx int) (int, bool) {
	for _, edge := range g.Edges {
		if edge.To == idx {
			return edge.From, true
		}
	}

	return 0, false
}
