package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/depmap/pkg/depgraph"
)

// DefaultThirdPartyCap is the number of third-party entries listed per
// package before the remainder is summarized.
const DefaultThirdPartyCap = 80

// Header is emitted before any package section.
const Header = "# Dependency Map (Generated)\n" +
	"\n" +
	"This file is generated. Do not edit by hand.\n" +
	"\n" +
	"Regenerate with:\n" +
	"\n" +
	"```bash\n" +
	"make deps\n" +
	"```\n" +
	"\n"

// Section is the render-ready view of one package.
type Section struct {
	Package           string   `json:"package"`
	Internal          []string `json:"internal"`
	ThirdParty        []string `json:"third_party"`
	ThirdPartyOmitted int      `json:"third_party_omitted,omitempty"`
	ThirdPartyTotal   int      `json:"third_party_total"`
	StdLibCount       int      `json:"stdlib_count"`
}

// Report is an ordered list of sections.
type Report struct {
	Module   string    `json:"module"`
	Sections []Section `json:"sections"`
}

// Build prepares a report from g. At most thirdPartyCap third-party entries
// are kept per section; a negative value keeps all of them.
func Build(g *depgraph.Graph, thirdPartyCap int) *Report {
	nodes := g.Nodes()
	r := &Report{Module: g.Module, Sections: make([]Section, 0, len(nodes))}
	for _, n := range nodes {
		third := n.ThirdParty.Sorted()
		s := Section{
			Package:         n.ID,
			Internal:        n.Internal.Sorted(),
			ThirdParty:      third,
			ThirdPartyTotal: len(third),
			StdLibCount:     n.StdLib.Len(),
		}
		if thirdPartyCap >= 0 && len(third) > thirdPartyCap {
			s.ThirdParty = third[:thirdPartyCap]
			s.ThirdPartyOmitted = len(third) - thirdPartyCap
		}
		r.Sections = append(r.Sections, s)
	}
	return r
}

// Section returns the section for pkg.
func (r *Report) Section(pkg string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Package == pkg {
			return s, true
		}
	}
	return Section{}, false
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString(Header)
	for _, s := range r.Sections {
		writeSection(&b, s)
	}
	return b.String()
}

func writeSection(b *strings.Builder, s Section) {
	fmt.Fprintf(b, "## `%s`\n\n", s.Package)

	b.WriteString("**Internal deps**\n\n")
	writeList(b, s.Internal)
	b.WriteString("\n")

	b.WriteString("**Third-party deps**\n\n")
	if s.ThirdPartyTotal == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, d := range s.ThirdParty {
			fmt.Fprintf(b, "- `%s`\n", d)
		}
		if s.ThirdPartyOmitted > 0 {
			fmt.Fprintf(b, "- ... (%d more)\n", s.ThirdPartyOmitted)
		}
	}
	b.WriteString("\n")

	b.WriteString("**Stdlib deps**\n\n")
	fmt.Fprintf(b, "- %d packages\n", s.StdLibCount)
	b.WriteString("\n")
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- (none)\n")
		return
	}
	for _, d := range items {
		fmt.Fprintf(b, "- `%s`\n", d)
	}
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Render is shorthand for Build(g, thirdPartyCap).Markdown().
func Render(g *depgraph.Graph, thirdPartyCap int) string {
	return Build(g, thirdPartyCap).Markdown()
}

// RenderJSON is shorthand for Build(g, thirdPartyCap).JSON().
func RenderJSON(g *depgraph.Graph, thirdPartyCap int) ([]byte, error) {
	return Build(g, thirdPartyCap).JSON()
}
