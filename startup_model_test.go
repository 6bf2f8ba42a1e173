package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/ui"
)

func TestStartupModelSelectionEntersOpeningPhase(t *testing.T) {
	m := newStartupModelWith(t.TempDir(), "", func(string) (ui.Model, error) {
		return ui.Model{}, errBoom{}
	})
	model, cmd := m.Update(ui.BrowserSelectedMsg{Path: "people.yaml"})
	if cmd == nil {
		t.Fatal("expected opening command")
	}

	startup, ok := model.(startupModel)
	if !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
	if startup.phase != phaseOpening {
		t.Fatalf("expected phaseOpening, got %v", startup.phase)
	}
	if startup.path != "people.yaml" {
		t.Fatalf("expected path people.yaml, got %q", startup.path)
	}
}

func TestStartupModelWithPathStartsOpening(t *testing.T) {
	m := newStartupModelWith(t.TempDir(), "people.yaml", nil)
	if m.phase != phaseOpening {
		t.Fatalf("expected phaseOpening, got %v", m.phase)
	}
}

func TestStartupModelErrorReturnsToBrowsePhase(t *testing.T) {
	m := newStartupModelWith(t.TempDir(), "", nil)
	m.phase = phaseOpening

	model, cmd := m.Update(startupResolvedMsg{err: errBoom{}})
	if cmd != nil {
		t.Fatal("expected no command on error return")
	}

	startup := model.(startupModel)
	if startup.phase != phaseBrowse {
		t.Fatalf("expected phaseBrowse, got %v", startup.phase)
	}
	if startup.errMsg == "" {
		t.Fatal("expected error message")
	}
}

func TestStartupModelHandsOverToDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.txt")
	if err := os.WriteFile(path, []byte("Ada, 36\nBo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	deckModel, err := buildDeckModel(path, cfg, nil)
	if err != nil {
		t.Fatalf("buildDeckModel: %v", err)
	}
	if got := deckModel.Deck().Len(); got != 2 {
		t.Fatalf("expected 2 profiles, got %d", got)
	}

	m := newStartupModelWith(dir, "", nil)
	m, _ = updateStartup(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	model, cmd := m.Update(startupResolvedMsg{model: deckModel})
	if cmd == nil {
		t.Fatal("expected init command")
	}
	if _, ok := model.(ui.Model); !ok {
		t.Fatalf("expected ui.Model, got %T", model)
	}
}

func TestBuildDeckModelRejectsUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	if err := os.WriteFile(path, []byte("Ada\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := buildDeckModel(path, config.DefaultConfig(), nil); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestBuildDeckModelRejectsDirectory(t *testing.T) {
	if _, err := buildDeckModel(t.TempDir(), config.DefaultConfig(), nil); err == nil {
		t.Fatal("expected directory error")
	}
}

func updateStartup(t *testing.T, m startupModel, msg tea.Msg) (startupModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	next, ok := model.(startupModel)
	if !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
	return next, cmd
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
