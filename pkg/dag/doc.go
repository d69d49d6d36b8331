// Package dag provides the directed package graph used for exports.
//
// # Overview
//
// depmap classifies dependencies into per-package sets (see
// [github.com/matzehuels/depmap/pkg/depgraph]). Exporters that draw or store
// the graph need plain nodes and edges instead, which is what this package
// holds. Every node and edge carries a [Metadata] map; the "class" key
// ([MetaClass]) records whether a package is internal, stdlib or third-party.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "example.com/mod/cmd"})
//	g.AddNode(dag.Node{ID: "example.com/mod/lib"})
//	g.AddEdge(dag.Edge{From: "example.com/mod/cmd", To: "example.com/mod/lib"})
//
// [DAG.Nodes] returns nodes sorted by ID and [DAG.Edges] returns edges in
// insertion order, so graphs built in a deterministic order export
// deterministically.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
//
// # Related Packages
//
// The [transform] subpackage removes transitive edges so that `go list -deps`
// closures can be drawn as direct import graphs.
//
// [transform]: github.com/matzehuels/depmap/pkg/dag/transform
package dag
