// Package report renders a classified dependency graph as a markdown document.
//
// The document opens with a fixed header followed by one section per
// in-scope package in ascending import-path order:
//
//	## `example.com/mod/a`
//
//	**Internal deps**
//
//	- `example.com/mod/b`
//
//	**Third-party deps**
//
//	- `github.com/x/y`
//
//	**Stdlib deps**
//
//	- 1 packages
//
// Third-party lists longer than the cap are truncated and end with a
// "- ... (N more)" line. Standard library dependencies are only counted.
//
// Rendering is pure: the same graph and cap always produce byte-identical
// output, and nothing is written anywhere.
package report
