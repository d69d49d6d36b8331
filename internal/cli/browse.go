package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depmap/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

// browseCommand creates the browse command for exploring the report interactively.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Explore the dependency map interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			result, err := c.execute(cmd, cfg)
			if err != nil {
				return err
			}
			if len(result.Report.Sections) == 0 {
				printWarning("No packages found in %s", result.Module)
				return nil
			}

			p := tea.NewProgram(newBrowseModel(result.Report), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// browseModel - Interactive package browser
// =============================================================================

// browseModel is the bubbletea model for `depmap browse`.
type browseModel struct {
	report *report.Report
	cursor int
	offset int
	height int
	detail bool
}

func newBrowseModel(r *report.Report) browseModel {
	return browseModel{report: r, height: 15}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.report.Sections)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(n-1, 0)
		case "enter", " ":
			m.detail = !m.detail
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Map: " + m.report.Module))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.report.Sections))
	for i := m.offset; i < end; i++ {
		s := m.report.Sections[i]
		counts := listDimStyle.Render(fmt.Sprintf("  %d internal · %d third-party · %d stdlib",
			len(s.Internal), s.ThirdPartyTotal, s.StdLibCount))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ "+s.Package) + counts)
		} else {
			b.WriteString(listNormalStyle.Render("  "+s.Package) + counts)
		}
		b.WriteString("\n")
	}

	if m.detail && len(m.report.Sections) > 0 {
		b.WriteString("\n")
		b.WriteString(detailBoxStyle.Render(sectionDetail(m.report.Sections[m.cursor])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.report.Sections))))
	return b.String()
}

// sectionDetail renders one report section for the detail pane.
func sectionDetail(s report.Section) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(s.Package))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render("Internal"))
	b.WriteString("\n")
	writeDetailList(&b, s.Internal, styleInternal)

	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("Third-party"))
	b.WriteString("\n")
	if len(s.ThirdParty) > 0 || s.ThirdPartyOmitted == 0 {
		writeDetailList(&b, s.ThirdParty, styleThirdParty)
	}
	if s.ThirdPartyOmitted > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  ... (%d more)", s.ThirdPartyOmitted)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("Stdlib"))
	b.WriteString("\n")
	b.WriteString(styleStdLib.Render(fmt.Sprintf("  %d packages", s.StdLibCount)))
	return b.String()
}

func writeDetailList(b *strings.Builder, items []string, style lipgloss.Style) {
	if len(items) == 0 {
		b.WriteString(listDimStyle.Render("  (none)"))
		b.WriteString("\n")
		return
	}
	for _, item := range items {
		b.WriteString(style.Render("  " + item))
		b.WriteString("\n")
	}
}
