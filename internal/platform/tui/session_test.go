package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/outbreak/internal/scenarios"
)

func sendKeys(t *testing.T, m SessionModel, keys ...tea.KeyMsg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SessionModel", next)
		}
		m = sm
	}
	return m, cmd
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(ViewerOptions{Seed: 7}, 80, 24)
	if m.Screen() != "menu" {
		t.Fatalf("session starts on %q, expected menu", m.Screen())
	}

	m, cmd := sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != "viewer" {
		t.Fatalf("after enter, screen = %q, expected viewer", m.Screen())
	}
	if cmd == nil {
		t.Error("opening the viewer should start its tick loop")
	}
	if !strings.Contains(m.View(), "OUTBREAK") {
		t.Error("viewer view is missing its title")
	}

	m, _ = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != "menu" {
		t.Fatalf("after esc, screen = %q, expected menu", m.Screen())
	}

	m, _ = sendKeys(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Screen() != "outcomes" {
		t.Fatalf("after tab, screen = %q, expected outcomes", m.Screen())
	}
	if !strings.Contains(m.View(), "No outcomes recorded yet") {
		t.Error("outcomes board without a store should show the empty message")
	}

	m, _ = sendKeys(t, m, runeKey("b"))
	if m.Screen() != "menu" {
		t.Fatalf("after b, screen = %q, expected menu", m.Screen())
	}

	m, cmd = sendKeys(t, m, runeKey("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit the session")
	}
}

func TestSessionViewerKeepsPerSessionEngine(t *testing.T) {
	a := NewSessionModel(ViewerOptions{Seed: 7}, 80, 24)
	b := NewSessionModel(ViewerOptions{Seed: 7}, 80, 24)

	a, _ = sendKeys(t, a, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	b, _ = sendKeys(t, b, tea.KeyMsg{Type: tea.KeyEnter})

	if a.viewer.Controller() == b.viewer.Controller() {
		t.Fatal("sessions share a controller")
	}
	if a.viewer.Controller().Counts().Infected != 1 {
		t.Errorf("session a infected = %d, expected 1", a.viewer.Controller().Counts().Infected)
	}
	if b.viewer.Controller().Counts().Infected != 0 {
		t.Errorf("session b infected = %d, expected 0", b.viewer.Controller().Counts().Infected)
	}
}
