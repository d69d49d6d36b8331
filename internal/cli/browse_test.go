package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/depmap/pkg/report"
)

func testReport() *report.Report {
	return &report.Report{
		Module: testModule,
		Sections: []report.Section{
			{Package: "example.com/mod/a", Internal: []string{"example.com/mod/b"}, ThirdParty: []string{"github.com/x/y"}, ThirdPartyTotal: 3, ThirdPartyOmitted: 2, StdLibCount: 4},
			{Package: "example.com/mod/b", Internal: []string{}, ThirdParty: []string{}, StdLibCount: 1},
			{Package: "example.com/mod/c", Internal: []string{}, ThirdParty: []string{}},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(browseModel)
	}
	return m
}

func TestBrowseNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"start", nil, 0},
		{"down", []string{"down"}, 1},
		{"j", []string{"j", "j"}, 2},
		{"clamped at end", []string{"j", "j", "j", "j"}, 2},
		{"clamped at start", []string{"k", "up"}, 0},
		{"end", []string{"G"}, 2},
		{"home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newBrowseModel(testReport()), tt.keys...)
			if m.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.want)
			}
		})
	}
}

func TestBrowseQuit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		_, cmd := newBrowseModel(testReport()).Update(key(k))
		if cmd == nil {
			t.Fatalf("%q should return a command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q should quit", k)
		}
	}
}

func TestBrowseDetailToggle(t *testing.T) {
	m := newBrowseModel(testReport())
	if strings.Contains(m.View(), "... (2 more)") {
		t.Error("detail pane should be hidden initially")
	}

	m = press(m, "enter")
	if !m.detail {
		t.Fatal("enter should open the detail pane")
	}
	view := m.View()
	for _, want := range []string{"github.com/x/y", "... (2 more)", "4 packages"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	m = press(m, "enter")
	if m.detail {
		t.Error("enter should close the detail pane")
	}
}

func TestBrowseScrolling(t *testing.T) {
	m := newBrowseModel(testReport())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 7})
	m = next.(browseModel)
	if m.height != 5 {
		t.Fatalf("height = %d, want minimum of 5", m.height)
	}

	m.height = 2
	m = press(m, "j", "j")
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	view := m.View()
	if strings.Contains(view, "example.com/mod/a ") || !strings.Contains(view, "example.com/mod/c") {
		t.Errorf("view should scroll past the first package:\n%s", view)
	}
	if !strings.Contains(view, "[3/3]") {
		t.Errorf("view should show position, got:\n%s", view)
	}
}

func TestSectionDetailEmpty(t *testing.T) {
	got := sectionDetail(report.Section{Package: "example.com/mod/c"})
	if strings.Count(got, "(none)") != 2 {
		t.Errorf("empty section should list (none) twice:\n%s", got)
	}
	if !strings.Contains(got, "0 packages") {
		t.Errorf("empty section should show 0 stdlib packages:\n%s", got)
	}
}
