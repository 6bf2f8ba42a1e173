package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/swipe/internal/deck"
)

type frameMsg time.Time

type cueFailedMsg struct {
	err error
}

// BrowserSelectedMsg reports the deck file chosen in the browser.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg reports that the browser was closed without a choice.
type BrowserCancelledMsg struct{}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) cueCmd(dir deck.Direction) tea.Cmd {
	if m.cue == nil {
		return nil
	}
	player := m.cue
	return func() tea.Msg {
		if err := player.Play(dir); err != nil {
			return cueFailedMsg{err: err}
		}
		return nil
	}
}
