package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/swipe"
)

const testFrame = 16 * time.Millisecond

func newTestModel(t *testing.T, names ...string) (Model, *clockwork.FakeClock) {
	t.Helper()
	profiles := make([]deck.Profile, len(names))
	for i, n := range names {
		profiles[i] = deck.Profile{ID: n, Name: n, Bio: "likes long walks"}
	}
	clock := clockwork.NewFakeClock()
	m := New(deck.New(profiles), config.DefaultConfig(), clock, nil, "test")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 32})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	return m.handleMsg(msg)
}

// runFrames feeds frame ticks until the model stops ticking.
func runFrames(t *testing.T, m Model, clock *clockwork.FakeClock) Model {
	t.Helper()
	for range 5000 {
		if !m.ticking {
			return m
		}
		clock.Advance(testFrame)
		m, _ = update(t, m, frameMsg(clock.Now()))
	}
	t.Fatal("model never stopped ticking")
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyFlingSwipesHead(t *testing.T) {
	m, clock := newTestModel(t, "ada", "bo", "cy")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected frame tick command")
	}
	if !m.ticking {
		t.Fatal("expected model to start ticking")
	}

	m = runFrames(t, m, clock)

	if m.lastSwipe == nil {
		t.Fatal("expected a swipe")
	}
	if m.lastSwipe.Direction != deck.Accept || m.lastSwipe.Profile.ID != "ada" {
		t.Fatalf("unexpected swipe: %+v", m.lastSwipe)
	}
	if got := m.Deck().Len(); got != 2 {
		t.Fatalf("expected 2 profiles left, got %d", got)
	}
	if m.frame.Top == nil || m.frame.Top.ID != "bo" {
		t.Fatalf("expected bo on top, got %+v", m.frame.Top)
	}

	m, _ = update(t, m, keyRunes("h"))
	m = runFrames(t, m, clock)
	if m.lastSwipe.Direction != deck.Reject || m.lastSwipe.Profile.ID != "bo" {
		t.Fatalf("unexpected swipe: %+v", m.lastSwipe)
	}
	accepted, rejected := m.Deck().Counts()
	if accepted != 1 || rejected != 1 {
		t.Fatalf("expected 1/1, got %d/%d", accepted, rejected)
	}
}

func TestFlingIgnoredWhileBusy(t *testing.T) {
	m, clock := newTestModel(t, "ada", "bo")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	clock.Advance(testFrame)
	m, _ = update(t, m, frameMsg(clock.Now()))
	pending := len(m.script)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if cmd != nil {
		t.Fatal("expected no command while a fling is in progress")
	}
	if len(m.script) != pending {
		t.Fatalf("expected script untouched, got %d samples", len(m.script))
	}

	m = runFrames(t, m, clock)
	if got := m.Deck().Len(); got != 1 {
		t.Fatalf("expected exactly one swipe, %d left", got)
	}
}

func TestMouseDragFollowsPointer(t *testing.T) {
	m, clock := newTestModel(t, "ada")
	cellW := m.cfg.Viewport.CellWidthPt
	cellH := m.cfg.Viewport.CellHeightPt

	m, cmd := update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd == nil {
		t.Fatal("expected frame tick command")
	}
	clock.Advance(testFrame)
	m, _ = update(t, m, tea.MouseMsg{X: 45, Y: 11, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, frameMsg(clock.Now()))

	if m.frame.State != swipe.Dragging {
		t.Fatalf("expected dragging, got %v", m.frame.State)
	}
	if got, want := m.frame.Transform.TranslateX, 5*cellW; got != want {
		t.Fatalf("expected translateX %v, got %v", want, got)
	}
	if got, want := m.frame.Transform.TranslateY, cellH; got != want {
		t.Fatalf("expected translateY %v, got %v", want, got)
	}
	if !m.ticking {
		t.Fatal("expected ticking while the pointer is down")
	}
}

func TestSlowMouseReleaseKeepsCard(t *testing.T) {
	m, clock := newTestModel(t, "ada")

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	clock.Advance(testFrame)
	m, _ = update(t, m, tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	clock.Advance(time.Second)
	m, _ = update(t, m, tea.MouseMsg{X: 50, Y: 10, Action: tea.MouseActionRelease})

	m = runFrames(t, m, clock)
	if m.lastSwipe != nil {
		t.Fatalf("expected no swipe, got %+v", m.lastSwipe)
	}
	if m.Deck().Len() != 1 {
		t.Fatal("expected card to stay in the deck")
	}
	if m.frame.Transform.TranslateX != 0 {
		t.Fatalf("expected card back at center, got %v", m.frame.Transform.TranslateX)
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	m, clock := newTestModel(t, "ada")

	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	clock.Advance(testFrame)
	m, _ = update(t, m, tea.MouseMsg{X: 70, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.quitting {
		t.Fatal("esc during a drag must not quit")
	}
	if m.pointer.active {
		t.Fatal("expected pointer released")
	}

	m = runFrames(t, m, clock)
	if m.lastSwipe != nil {
		t.Fatal("cancelled drag must not swipe")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.quitting {
		t.Fatal("expected esc to quit when idle")
	}
}

func TestEmptyDeckView(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	if !strings.Contains(view, "No more profiles") {
		t.Fatalf("expected empty placeholder, got:\n%s", view)
	}

	m, cmd := update(t, m, keyRunes("l"))
	if cmd != nil || len(m.script) != 0 {
		t.Fatal("expected fling to be ignored on an empty deck")
	}
}

func TestViewShowsTopCard(t *testing.T) {
	m, _ := newTestModel(t, "ada", "bo")
	view := m.View()
	if !strings.Contains(view, "ada") {
		t.Fatalf("expected top card in view, got:\n%s", view)
	}
	if !strings.Contains(view, "2 left") {
		t.Fatalf("expected remaining count in view, got:\n%s", view)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, "ada")
	m, cmd := update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quitting")
	}
}

func TestCueFailureDisablesCues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cues.Enabled = true
	m := New(deck.New([]deck.Profile{{ID: "ada", Name: "ada"}}), cfg, clockwork.NewFakeClock(), nil, "")
	if m.cue == nil {
		t.Fatal("expected cue player")
	}

	m, _ = update(t, m, cueFailedMsg{err: errTest})
	if m.cue != nil {
		t.Fatal("expected cue player dropped after failure")
	}
	if m.cueCmd(deck.Accept) != nil {
		t.Fatal("expected no cue command once disabled")
	}
}

func TestDirectionSummary(t *testing.T) {
	d := deck.New([]deck.Profile{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}})
	now := time.Now()
	d.RemoveHead(deck.Accept, now)
	d.RemoveHead(deck.Reject, now)
	d.RemoveHead(deck.Accept, now)
	d.RemoveHead(deck.Accept, now)

	if got, want := DirectionSummary(d), "3 liked, 1 passed (75% liked)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("no audio device")
