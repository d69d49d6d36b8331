package transform

import "github.com/matzehuels/depmap/pkg/dag"

// TransitiveReduction removes redundant edges from the graph and returns how
// many were removed.
//
// An edge (u, v) is redundant when another child of u already reaches v.
// Descendant sets are filled in reverse topological order, so each node is
// visited once and the cost is O(V·E) time and O(V²) space. Metadata on
// surviving edges is kept.
//
// Go rejects import cycles at compile time, so `go list` never produces one.
// A cyclic graph has no topological order and is returned unchanged with a
// count of zero.
func TransitiveReduction(g *dag.DAG) int {
	nodes := g.Nodes()
	order, ok := topoOrder(g, nodes)
	if !ok {
		return 0
	}

	index := dag.NodePosMap(nodes)
	below := make([][]bool, len(nodes))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		set := make([]bool, len(nodes))
		for _, child := range g.Children(id) {
			c := index[child]
			set[c] = true
			for j, reached := range below[c] {
				if reached {
					set[j] = true
				}
			}
		}
		below[index[id]] = set
	}

	var redundant []dag.Edge
	for _, id := range order {
		children := g.Children(id)
		for _, v := range children {
			for _, w := range children {
				if below[index[w]][index[v]] {
					redundant = append(redundant, dag.Edge{From: id, To: v})
					break
				}
			}
		}
	}
	for _, e := range redundant {
		g.RemoveEdge(e.From, e.To)
	}
	return len(redundant)
}

// topoOrder returns node IDs so that every edge points forward, using Kahn's
// algorithm. It reports false when the graph has a cycle.
func topoOrder(g *dag.DAG, nodes []*dag.Node) ([]string, bool) {
	inDegree := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		inDegree[n.ID] = g.InDegree(n.ID)
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, child := range g.Children(id) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return order, len(order) == len(nodes)
}
