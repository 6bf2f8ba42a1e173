package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/swipe/internal/profiles"
)

type deckItem struct {
	name string
	ext  string
}

func (i deckItem) Title() string       { return i.name }
func (i deckItem) Description() string { return i.ext }
func (i deckItem) FilterValue() string { return i.name }

type pathItem struct{}

func (i pathItem) Title() string       { return "Open path..." }
func (i pathItem) Description() string { return "type the path of a deck file" }
func (i pathItem) FilterValue() string { return "path" }

// BrowserModel lists the deck files in a directory. It is embedded in a
// parent model and reports its outcome with BrowserSelectedMsg or
// BrowserCancelledMsg.
type BrowserModel struct {
	dir      string
	list     list.Model
	input    textinput.Model
	pathMode bool
	err      error
}

// NewBrowser creates a browser over the deck files in dir.
func NewBrowser(dir string) BrowserModel {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	items := []list.Item{pathItem{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !profiles.IsDeckExt(ext) {
			continue
		}
		items = append(items, deckItem{
			name: strings.TrimSuffix(e.Name(), ext),
			ext:  ext,
		})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(likeColor)).
		BorderLeftForeground(lipgloss.Color(likeColor))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.Color(likeColor))

	l := list.New(items, delegate, defaultWidth, 20)
	l.Title = "swipe"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "decks/people.yaml"
	ti.CharLimit = 1024
	ti.Width = 60

	return BrowserModel{dir: dir, list: l, input: ti}
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("swipe")
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.pathMode {
		return m.updatePathInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// the list owns every key while filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case pathItem:
				m.pathMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("swipe - open path"))
			case deckItem:
				return m, selected(filepath.Join(m.dir, item.name+item.ext))
			}
		default:
			if isQuit(msg) {
				return m, cancelled
			}
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) updatePathInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if path := strings.TrimSpace(m.input.Value()); path != "" {
				return m, selected(path)
			}
		case "esc":
			m.pathMode = false
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("swipe")
		case "ctrl+c":
			return m, cancelled
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func selected(path string) tea.Cmd {
	return func() tea.Msg { return BrowserSelectedMsg{Path: path} }
}

func cancelled() tea.Msg {
	return BrowserCancelledMsg{}
}

func (m BrowserModel) View() string {
	if m.pathMode {
		var b strings.Builder
		b.WriteString("\n  " + headerStyle.Render("swipe") + "\n\n")
		b.WriteString("  " + statusStyle.Render("Deck path:") + "\n")
		b.WriteString("  " + m.input.View() + "\n\n")
		b.WriteString("  " + helpStyle.Render("enter open  esc back  ctrl+c quit") + "\n")
		return b.String()
	}
	return m.list.View() + "\n  " + helpStyle.Render("decks: "+profiles.SupportedExtsList())
}
