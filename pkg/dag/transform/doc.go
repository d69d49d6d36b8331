// Package transform simplifies package graphs before they are drawn.
//
// `go list -deps` reports the full transitive closure of every package, so a
// graph built from it contains an edge from each package to everything it
// reaches. [TransitiveReduction] drops every edge that is implied by a longer
// path, leaving only the edges a reader needs to reconstruct reachability:
//
//	Before: cmd→api, api→store, cmd→store
//	After:  cmd→api, api→store
package transform
