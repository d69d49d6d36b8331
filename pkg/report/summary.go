package report

import "github.com/matzehuels/depmap/pkg/depgraph"

// Summary holds module-wide totals.
type Summary struct {
	Packages   int `json:"packages"`
	Internal   int `json:"internal"`
	ThirdParty int `json:"third_party"`
	StdLib     int `json:"stdlib"`
	Truncated  int `json:"truncated"`
}

// Summarize counts distinct dependency targets per class across g. Truncated
// is the number of packages whose third-party list exceeds thirdPartyCap.
func Summarize(g *depgraph.Graph, thirdPartyCap int) Summary {
	internal, third, std := depgraph.Set{}, depgraph.Set{}, depgraph.Set{}
	s := Summary{Packages: g.NodeCount()}
	for _, n := range g.Nodes() {
		for id := range n.Internal {
			internal[id] = struct{}{}
		}
		for id := range n.ThirdParty {
			third[id] = struct{}{}
		}
		for id := range n.StdLib {
			std[id] = struct{}{}
		}
		if thirdPartyCap >= 0 && n.ThirdParty.Len() > thirdPartyCap {
			s.Truncated++
		}
	}
	s.Internal, s.ThirdParty, s.StdLib = internal.Len(), third.Len(), std.Len()
	return s
}
