package neo4j

import "github.com/matzehuels/depmap/pkg/dag"

// PackageRows returns the UNWIND rows for g's nodes, sorted by import path.
func PackageRows(g *dag.DAG) []map[string]any {
	module, _ := g.Meta()["module"].(string)
	nodes := g.Nodes()
	rows := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, map[string]any{
			"path":   n.ID,
			"class":  n.Class(),
			"module": module,
		})
	}
	return rows
}

// EdgeRows returns the UNWIND rows for g's edges in insertion order.
func EdgeRows(g *dag.DAG) []map[string]any {
	edges := g.Edges()
	rows := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		class, _ := e.Meta[dag.MetaClass].(string)
		rows = append(rows, map[string]any{
			"from":  e.From,
			"to":    e.To,
			"class": class,
		})
	}
	return rows
}

// Batches splits rows into chunks of at most size. A non-positive size
// yields a single chunk. Empty input yields no chunks.
func Batches(rows []map[string]any, size int) [][]map[string]any {
	if len(rows) == 0 {
		return nil
	}
	if size <= 0 || size >= len(rows) {
		return [][]map[string]any{rows}
	}
	var out [][]map[string]any
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		out = append(out, rows[start:end])
	}
	return out
}
