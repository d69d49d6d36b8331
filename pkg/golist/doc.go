// Package golist reads package metadata produced by `go list -json`.
//
// # Input Format
//
// `go list -json` streams one JSON object per package with no enclosing array
// and no guaranteed separator between objects:
//
//	{"ImportPath":"example.com/mod/a","Deps":["fmt"]}{"ImportPath":"fmt"}
//
// [Decode] consumes such a buffer value by value, letting the JSON grammar
// decide where each value ends. Only the fields declared on [PackageRecord]
// are kept; everything else go list emits is ignored.
//
// # Errors
//
// A syntactically invalid or truncated value aborts decoding with a
// [*DecodeError] carrying the byte offset where that value starts. No partial
// result is returned alongside the error.
//
// # Running go list
//
// [Runner] executes `go list -deps -json` in a module directory and returns
// its stdout, ready for [Decode]. [ModulePath] reads the module path from the
// directory's go.mod so callers can default the scope prefix.
package golist
