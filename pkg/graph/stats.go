package graph

import "gonum.org/v1/gonum/stat"

// Stats summarizes the topology of a graph for API responses and
// diagnostics.
type Stats struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	BoundaryNodes int     `json:"boundary_nodes"`
	MaxOutDegree  int     `json:"max_out_degree"`
	MeanOutDegree float64 `json:"mean_out_degree"`
	StdOutDegree  float64 `json:"std_out_degree"`
}

// Stats computes node/edge counts and an out-degree summary.
// Degree mean and standard deviation come from gonum; the deviation is
// reported as 0 for graphs with fewer than two nodes, where it is not
// defined.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes: len(g.Nodes),
		Edges: len(g.Edges),
	}

	if boundary, ok := g.Boundary(); ok {
		s.BoundaryNodes = len(boundary)
	}

	if len(g.Nodes) == 0 {
		return s
	}

	degrees := make([]float64, len(g.Nodes))
	for _, edge := range g.Edges {
		degrees[edge.From]++
	}

	for _, d := range degrees {
		if int(d) > s.MaxOutDegree {
			s.MaxOutDegree = int(d)
		}
	}

	s.MeanOutDegree = stat.Mean(degrees, nil)
	if len(degrees) > 1 {
		s.StdOutDegree = stat.StdDev(degrees, nil)
	}

	return s
}
