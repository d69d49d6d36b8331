package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/depmap/pkg/dag"
	"github.com/matzehuels/depmap/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "app"})
	_ = g.AddNode(dag.Node{ID: "lib"})
	_ = g.AddEdge(dag.Edge{From: "app", To: "lib"})

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontname="Helvetica", fontsize=12, margin="0.2,0.1"];
	//   ranksep=0.5;
	//   nodesep=0.3;
	//
	//   "app" [label="app"];
	//   "lib" [label="lib"];
	//
	//   "app" -> "lib";
	// }
}
