// Package pkg provides the libraries behind depmap, a dependency map
// generator for Go modules.
//
// # Overview
//
// depmap runs `go list -deps -json` over a module, keeps the packages that
// belong to it, and classifies every import as internal, standard library or
// third-party. The result is a markdown map that can be committed next to the
// code and checked in CI.
//
// # Architecture
//
// The data flow through depmap:
//
//	go list -deps -json ./...
//	         ↓
//	    [golist] package (run go list, decode the concatenated JSON stream)
//	         ↓
//	    [depgraph] package (scope to the module, classify imports)
//	         ↓
//	    [report] package (sorted sections, third-party cap)
//	         ↓
//	    markdown / JSON
//
// [pipeline] wires these stages together for the CLI and the report server.
//
// # Quick Start
//
//	runner := golist.Runner{Dir: "."}
//	buf, _ := runner.Run(ctx)
//	records, _ := golist.Decode(buf)
//	g := depgraph.Build(records, "example.com/mod")
//	fmt.Print(report.Render(g, report.DefaultThirdPartyCap))
//
// # Main Packages
//
// ## Core
//
// [golist] - Stream decoder for `go list -json` output and the go list runner.
//
// [depgraph] - Module-scoped package graph and the import classifier.
//
// [report] - Deterministic markdown and JSON rendering.
//
// ## Graph Export
//
// [dag] - Generic directed graph with node and edge metadata.
//
// [dag/transform] - Transitive reduction for readable diagrams.
//
// [io] - JSON node-link export and import.
//
// [render/nodelink] - Graphviz DOT and SVG diagrams.
//
// [render] - SVG to PDF/PNG conversion.
//
// [sink/neo4j] - Batched loading into a Neo4j database.
//
// ## Infrastructure
//
// [pipeline] - load → decode → build → render orchestration.
//
// [config] - `.depmap.toml` project configuration.
//
// [errors] - Structured errors with codes.
//
// [observability] - Metrics hooks for pipeline stages, the server and sinks.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test -run Example ./... # Examples only
//
// [golist]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/golist
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/depgraph
// [report]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/report
// [dag]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/dag/transform
// [io]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/render
// [sink/neo4j]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/sink/neo4j
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/depmap/pkg/buildinfo
package pkg
