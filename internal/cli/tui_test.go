package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphkit/pkg/pipeline"
)

func browseFixture() VertexListModel {
	return NewVertexListModel("deps.json", []pipeline.VertexInfo{
		{ID: "app", Out: 2, Degree: 2, Neighbors: []string{"lib", "log"}},
		{ID: "cli", Out: 1, Degree: 1, Neighbors: []string{"app"}},
		{ID: "lib", In: 1, Degree: 1, Attrs: map[string]string{"license": "MIT"}},
		{ID: "log", In: 1, Degree: 1},
	})
}

func press(m VertexListModel, keys ...tea.KeyMsg) VertexListModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(VertexListModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keySlash = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func currentID(t *testing.T, m VertexListModel) string {
	t.Helper()
	v, ok := m.current()
	if !ok {
		return ""
	}
	return v.ID
}

func TestVertexListNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"start", nil, "app"},
		{"down", []tea.KeyMsg{keyDown, keyDown}, "lib"},
		{"clamped at top", []tea.KeyMsg{keyUp, keyUp}, "app"},
		{"clamped at bottom", []tea.KeyMsg{keyDown, keyDown, keyDown, keyDown, keyDown}, "log"},
		{"follow edge", []tea.KeyMsg{keyDown, keyEnter}, "app"},
		{"follow twice", []tea.KeyMsg{keyDown, keyEnter, keyEnter}, "lib"},
		{"no neighbours", []tea.KeyMsg{keyDown, keyDown, keyDown, keyEnter}, "log"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(browseFixture(), tt.keys...)
			if got := currentID(t, m); got != tt.want {
				t.Errorf("current = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVertexListFilter(t *testing.T) {
	m := press(browseFixture(), keySlash, runes("l"))
	if len(m.visible) != 3 {
		t.Errorf("visible after /l = %d, want 3", len(m.visible))
	}
	m = press(m, runes("o"))
	if len(m.visible) != 1 || currentID(t, m) != "log" {
		t.Errorf("visible after /lo = %v", m.visible)
	}
	m = press(m, keyBack)
	if len(m.visible) != 3 {
		t.Errorf("visible after backspace = %d, want 3", len(m.visible))
	}

	// q is filter text while filtering
	m = press(m, runes("q"))
	if len(m.visible) != 0 || currentID(t, m) != "" {
		t.Errorf("visible after /lq = %v", m.visible)
	}
	m = press(m, keyBack, keyEnter)
	if m.filtering {
		t.Error("enter should leave filter mode")
	}

	// Following into a hidden vertex clears the filter.
	m = press(browseFixture(), keySlash, runes("cli"), keyEnter, keyEnter)
	if m.filter != "" || currentID(t, m) != "app" {
		t.Errorf("filter = %q, current = %q", m.filter, currentID(t, m))
	}
}

func TestVertexListQuit(t *testing.T) {
	_, cmd := browseFixture().Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestVertexListView(t *testing.T) {
	m := press(browseFixture(), keyDown, keyDown)
	view := m.View()
	for _, want := range []string{"deps.json", "Vertex", "lib", "license", "MIT", "[3/4]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = press(browseFixture(), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, runes("zzz"))
	if view := m.View(); !strings.Contains(view, "[0/0]") {
		t.Errorf("empty view:\n%s", view)
	}
}
