package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestBrowser(t *testing.T) (BrowserModel, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"friends.yaml", "people.txt", "song.mp3", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Ada\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "more.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}
	return NewBrowser(dir), dir
}

func TestBrowserListsDeckFiles(t *testing.T) {
	b, _ := newTestBrowser(t)
	if b.HasError() {
		t.Fatalf("unexpected error: %v", b.Error())
	}

	items := b.list.Items()
	if len(items) != 3 {
		t.Fatalf("expected path entry plus 2 decks, got %d items", len(items))
	}
	if _, ok := items[0].(pathItem); !ok {
		t.Fatalf("expected path entry first, got %T", items[0])
	}
	if got := items[1].(deckItem); got.name != "friends" || got.ext != ".yaml" {
		t.Fatalf("unexpected first deck: %+v", got)
	}
}

func TestBrowserEnterSelectsDeck(t *testing.T) {
	b, dir := newTestBrowser(t)
	b.list.Select(2)

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	msg, ok := cmd().(BrowserSelectedMsg)
	if !ok {
		t.Fatalf("expected BrowserSelectedMsg, got %T", cmd())
	}
	if want := filepath.Join(dir, "people.txt"); msg.Path != want {
		t.Fatalf("expected %q, got %q", want, msg.Path)
	}
}

func TestBrowserPathEntry(t *testing.T) {
	b, _ := newTestBrowser(t)

	model, _ := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	b = model.(BrowserModel)
	if !b.pathMode {
		t.Fatal("expected path entry mode")
	}

	b.input.SetValue("  decks/other.json ")
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}
	if msg := cmd().(BrowserSelectedMsg); msg.Path != "decks/other.json" {
		t.Fatalf("unexpected path %q", msg.Path)
	}

	model, _ = b.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(BrowserModel).pathMode {
		t.Fatal("expected esc to leave path entry")
	}
}

func TestBrowserQuitCancels(t *testing.T) {
	b, _ := newTestBrowser(t)
	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(BrowserCancelledMsg); !ok {
		t.Fatal("expected BrowserCancelledMsg")
	}
}

func TestBrowserMissingDirectory(t *testing.T) {
	b := NewBrowser(filepath.Join(t.TempDir(), "missing"))
	if !b.HasError() {
		t.Fatal("expected error for missing directory")
	}
}
