// Package depgraph builds module-scoped dependency graphs from go list records.
//
// # Scope
//
// A package is in scope when its import path equals the module path or
// continues it at a "/" boundary. With module "example.com/mod",
// "example.com/mod/a" is in scope but "example.com/mod2/a" is not.
//
// # Classification
//
// Every dependency of an in-scope package falls into exactly one class:
//
//   - [ClassInternal]: the target is in scope.
//   - [ClassThirdParty]: the first path segment contains a dot, as hosted
//     module paths do ("github.com/...", "golang.org/x/...").
//   - [ClassStdLib]: anything else.
//
// The dot rule is a heuristic, not a lookup against the standard library
// manifest. An undotted private path such as "corp/lib" classifies as stdlib.
//
// # Building
//
// [Build] turns decoded records into a [Graph]. Out-of-scope records are
// ignored, self-edges are dropped and repeated dependencies collapse into
// sets. Records sharing an import path merge into one node.
//
//	records, err := golist.Decode(buf)
//	if err != nil {
//	    return err
//	}
//	g := depgraph.Build(records, "example.com/mod")
//	for _, n := range g.Nodes() {
//	    fmt.Println(n.ID, n.Internal.Len(), n.ThirdParty.Len(), n.StdLib.Len())
//	}
//
// A built graph is never mutated; all functions here are safe to call from
// multiple goroutines on independent inputs.
package depgraph
