package depgraph

import "github.com/matzehuels/depmap/pkg/golist"

// Build constructs the graph of packages in module from records.
//
// Records with an empty or out-of-scope ImportPath are ignored. For each
// in-scope record, every dependency except the package itself is classified
// and added to the matching set.
func Build(records []golist.PackageRecord, module string) *Graph {
	c := NewClassifier(module)
	g := New(c.Module())
	for _, r := range records {
		if !c.InScope(r.ImportPath) {
			continue
		}
		n := g.ensure(r.ImportPath)
		for _, dep := range r.Deps {
			if dep == r.ImportPath {
				continue
			}
			n.Set(c.Classify(dep)).add(dep)
		}
	}
	return g
}
