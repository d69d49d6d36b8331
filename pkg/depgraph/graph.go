package depgraph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/depmap/pkg/dag"
)

// Set is a set of package import paths.
type Set map[string]struct{}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Has reports whether id is a member.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending byte order. The result is never nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s Set) add(id string) { s[id] = struct{}{} }

// Node is an in-scope package and its classified dependencies.
// The three sets are disjoint and never contain ID itself.
type Node struct {
	ID         string
	Internal   Set
	StdLib     Set
	ThirdParty Set
}

func newNode(id string) *Node {
	return &Node{ID: id, Internal: Set{}, StdLib: Set{}, ThirdParty: Set{}}
}

// Set returns the dependency set for class c.
func (n *Node) Set(c Class) Set {
	switch c {
	case ClassInternal:
		return n.Internal
	case ClassThirdParty:
		return n.ThirdParty
	default:
		return n.StdLib
	}
}

// Graph holds the in-scope packages of one module.
type Graph struct {
	Module string
	nodes  map[string]*Node
}

// New returns an empty graph for module.
func New(module string) *Graph {
	return &Graph{Module: NewClassifier(module).Module(), nodes: make(map[string]*Node)}
}

// Node returns the node for id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return cmp.Compare(a.ID, b.ID) })
	return nodes
}

// IDs returns the sorted node IDs.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NodeCount returns the number of in-scope packages.
func (g *Graph) NodeCount() int { return len(g.nodes) }

func (g *Graph) ensure(id string) *Node {
	n, ok := g.nodes[id]
	if !ok {
		n = newNode(id)
		g.nodes[id] = n
	}
	return n
}

// DAGOptions selects which dependency classes [Graph.ToDAG] includes.
// Internal edges are always included.
type DAGOptions struct {
	ThirdParty bool
	StdLib     bool
}

// ToDAG converts the graph into a [dag.DAG] for export. Every node and edge
// carries its class under [dag.MetaClass]; the graph-level metadata records
// the module path under "module".
//
// Nodes and edges are inserted in sorted order so exports are deterministic.
func (g *Graph) ToDAG(opts DAGOptions) *dag.DAG {
	d := dag.New(dag.Metadata{"module": g.Module})
	add := func(id string, c Class) {
		if _, ok := d.Node(id); !ok {
			_ = d.AddNode(dag.Node{ID: id, Meta: dag.Metadata{dag.MetaClass: c.String()}})
		}
	}

	nodes := g.Nodes()
	for _, n := range nodes {
		add(n.ID, ClassInternal)
	}
	for _, n := range nodes {
		for _, c := range []Class{ClassInternal, ClassThirdParty, ClassStdLib} {
			if (c == ClassThirdParty && !opts.ThirdParty) || (c == ClassStdLib && !opts.StdLib) {
				continue
			}
			for _, to := range n.Set(c).Sorted() {
				add(to, c)
				_ = d.AddEdge(dag.Edge{From: n.ID, To: to, Meta: dag.Metadata{dag.MetaClass: c.String()}})
			}
		}
	}
	return d
}
