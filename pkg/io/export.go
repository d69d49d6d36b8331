package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/depmap/pkg/dag"
)

type graph struct {
	Module string `json:"module,omitempty"`
	Nodes  []node `json:"nodes"`
	Edges  []edge `json:"edges"`
}

type node struct {
	ID   string       `json:"id"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Class string `json:"class,omitempty"`
}

// WriteJSON encodes a DAG as JSON and writes it to w.
// The graph-level "module" metadata, if present, becomes the top-level
// module field. The output can be re-imported with [ReadJSON].
func WriteJSON(g *dag.DAG, w io.Writer) error {
	nodes, edges := g.Nodes(), g.Edges()
	out := graph{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	if m, ok := g.Meta()["module"].(string); ok {
		out.Module = m
	}

	for i, n := range nodes {
		nd := node{ID: n.ID}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		class, _ := e.Meta[dag.MetaClass].(string)
		out.Edges[i] = edge{From: e.From, To: e.To, Class: class}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
