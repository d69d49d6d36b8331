// Package io provides JSON import and export for package graphs.
//
// # JSON Format
//
// The format has two required top-level arrays and an optional module field:
//
//	{
//	  "module": "example.com/mod",
//	  "nodes": [
//	    {"id": "example.com/mod/cmd", "meta": {"class": "internal"}},
//	    {"id": "github.com/spf13/cobra", "meta": {"class": "third-party"}}
//	  ],
//	  "edges": [
//	    {"from": "example.com/mod/cmd", "to": "github.com/spf13/cobra", "class": "third-party"}
//	  ]
//	}
//
// Node metadata is written as-is. The edge "class" field mirrors the edge's
// [dag.MetaClass] metadata and is omitted when unset.
//
// [WriteJSON] writes nodes in ID order and edges in insertion order, so a
// graph built deterministically exports byte-identically. [ReadJSON] reverses
// the encoding for tools that post-process exported graphs.
package io
