package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/depmap/pkg/dag"
)

// ReadJSON decodes a JSON graph from r into a DAG.
//
// Each node must have an "id" field and each edge "from" and "to" fields that
// reference node IDs. ReadJSON returns an error if the JSON is malformed, a
// node ID is duplicated, or an edge references an unknown node. Errors are
// wrapped with the offending node or edge; use errors.Is to check for the
// [dag] sentinel errors.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var meta dag.Metadata
	if data.Module != "" {
		meta = dag.Metadata{"module": data.Module}
	}
	g := dag.New(meta)
	for _, n := range data.Nodes {
		if err := g.AddNode(dag.Node{ID: n.ID, Meta: n.Meta}); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		var meta dag.Metadata
		if e.Class != "" {
			meta = dag.Metadata{dag.MetaClass: e.Class}
		}
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To, Meta: meta}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}
