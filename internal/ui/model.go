package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/olivier-w/swipe/internal/config"
	"github.com/olivier-w/swipe/internal/cue"
	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/gesture"
	"github.com/olivier-w/swipe/internal/swipe"
	"github.com/olivier-w/swipe/internal/util"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerRows = 3
	footerRows = 6

	maxCardWidth  = 44
	maxCardHeight = 14

	// cards drawn beneath the top one
	stackDepth = 2
)

// Model is the Bubbletea model for the swipe deck.
type Model struct {
	cfg   config.Config
	ctrl  *swipe.Controller
	clock clockwork.Clock
	log   *zap.Logger
	cue   *cue.Player

	deckName string
	total    int

	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	frame     swipe.Frame
	ticking   bool
	lastFrame time.Time
	pointer   pointer
	script    []gesture.Sample

	lastSwipe *swipe.Outcome
	quitting  bool
}

// New creates a deck Model over d. A nil logger disables logging.
func New(d *deck.Deck, cfg config.Config, clock clockwork.Clock, log *zap.Logger, deckName string) Model {
	if log == nil {
		log = zap.NewNop()
	}

	p := progress.New(
		progress.WithScaledGradient(nopeColor, likeColor),
		progress.WithoutPercentage(),
	)

	m := Model{
		cfg:      cfg,
		clock:    clock,
		log:      log,
		deckName: deckName,
		total:    d.Len(),
		keys:     newKeyMap(),
		help:     help.New(),
		progress: p,
		width:    defaultWidth,
		height:   defaultHeight,
		pointer:  newPointer(cfg.Viewport.CellWidthPt, cfg.Viewport.CellHeightPt),
	}
	if cfg.Cues.Enabled {
		m.cue = cue.New(cfg.Cues.Volume)
	}

	cols, rows := m.stageSize()
	m.ctrl = swipe.NewController(cfg.ToSwipeConfig(cols, rows), d, clock, log)
	m.frame = m.ctrl.Step(0)
	m.resizeProgress()
	return m
}

// Deck returns the deck being swiped.
func (m Model) Deck() *deck.Deck {
	return m.ctrl.Deck()
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(windowTitle(m.deckName, m.ctrl.Deck().Len()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		return m.handleFrame()

	case cueFailedMsg:
		m.log.Warn("audio cue disabled", zap.Error(msg.err))
		m.cue = nil
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cols, rows := m.stageSize()
		sc := m.cfg.ToSwipeConfig(cols, rows)
		m.ctrl.SetViewport(sc.Width, sc.Height)
		m.resizeProgress()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Cancel):
		if m.pointer.active {
			m.ingest(m.pointer.cancel())
			cmd := m.ensureTicking()
			return m, cmd
		}
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Reject):
		return m.fling(-1)

	case key.Matches(msg, m.keys.Accept):
		return m.fling(1)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// fling queues a synthesized drag toward sign, released fast enough to pass
// the decision threshold. It is ignored while the card is busy.
func (m Model) fling(sign float64) (Model, tea.Cmd) {
	if m.pointer.active || len(m.script) > 0 || m.ctrl.Deck().Empty() {
		return m, nil
	}
	if m.frame.State == swipe.Dragging || m.frame.State == swipe.Releasing {
		return m, nil
	}
	cols, _ := m.stageSize()
	distance := float64(cols) * m.cfg.Viewport.CellWidthPt / 4
	velocity := 4*m.cfg.Swipe.VelocityThreshold + distance
	m.script = flingScript(sign*distance, sign*velocity)
	cmd := m.ensureTicking()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.ctrl.Deck().Empty() || len(m.script) > 0 {
		return m, nil
	}
	now := m.clock.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.ingest(m.pointer.press(msg.X, msg.Y, now))
	case tea.MouseActionMotion:
		if !m.pointer.active {
			return m, nil
		}
		m.ingest(m.pointer.move(msg.X, msg.Y, now))
	case tea.MouseActionRelease:
		if !m.pointer.active {
			return m, nil
		}
		m.ingest(m.pointer.release(now))
	default:
		return m, nil
	}
	cmd := m.ensureTicking()
	return m, cmd
}

func (m Model) ingest(s gesture.Sample) {
	if err := m.ctrl.Ingest(s); err != nil && !errors.Is(err, swipe.ErrExhausted) {
		m.log.Debug("gesture sample rejected", zap.Error(err))
	}
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	m.lastFrame = m.clock.Now()
	return frameCmd(m.cfg.FrameInterval())
}

func (m Model) handleFrame() (Model, tea.Cmd) {
	now := m.clock.Now()
	dt := now.Sub(m.lastFrame).Seconds()
	if limit := m.cfg.MaxFrameDt(); limit > 0 && dt > limit {
		dt = limit
	}
	m.lastFrame = now

	if len(m.script) > 0 {
		m.ingest(m.script[0])
		m.script = m.script[1:]
	}
	m.frame = m.ctrl.Step(dt)

	var cmds []tea.Cmd
	if out := m.frame.Swiped; out != nil {
		m.lastSwipe = out
		cmds = append(cmds,
			m.cueCmd(out.Direction),
			tea.SetWindowTitle(windowTitle(m.deckName, m.ctrl.Deck().Len())))
	}

	switch {
	case len(m.script) > 0, m.pointer.active,
		m.frame.State == swipe.Dragging, m.frame.State == swipe.Releasing:
		cmds = append(cmds, frameCmd(m.cfg.FrameInterval()))
	default:
		m.ticking = false
	}
	return m, tea.Batch(cmds...)
}

// stageSize returns the card area in cells.
func (m Model) stageSize() (cols, rows int) {
	cols = m.width
	rows = m.height - headerRows - footerRows
	if cols < 20 {
		cols = 20
	}
	if rows < 6 {
		rows = 6
	}
	return cols, rows
}

func (m *Model) resizeProgress() {
	w := m.width / 3
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	m.progress.Width = w
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(strings.Join(m.renderStage(), "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	d := m.ctrl.Deck()
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(d.Swiped()) / float64(m.total)
	}
	left := "  " + headerStyle.Render("swipe")
	if m.deckName != "" {
		left += "  " + helpStyle.Render(m.deckName)
	}
	right := m.progress.ViewAs(ratio) + " " + statusStyle.Render(fmt.Sprintf("%d left", d.Len())) + "  "
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return "\n" + left + strings.Repeat(" ", gap) + right + "\n"
}

func (m Model) renderStage() []string {
	cols, rows := m.stageSize()
	canvas := blankCanvas(cols, rows)

	if m.frame.Top == nil {
		accepted, rejected := m.ctrl.Deck().Counts()
		msg := lipgloss.JoinVertical(lipgloss.Center,
			nameStyle.Render("No more profiles"),
			"",
			statusStyle.Render(fmt.Sprintf("♥ %d   ✕ %d", accepted, rejected)))
		placed := lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, msg)
		return strings.Split(placed, "\n")
	}

	cardW := min(maxCardWidth, cols-4)
	cardH := min(maxCardHeight, rows-stackDepth)
	left := (cols - cardW) / 2
	top := (rows - cardH - stackDepth) / 2
	cellW, cellH := m.cfg.Viewport.CellWidthPt, m.cfg.Viewport.CellHeightPt

	beneath := m.ctrl.Deck().Peek(stackDepth)
	for i := len(beneath) - 1; i >= 0; i-- {
		lines := renderCard(beneath[i], cardW, cardH, swipe.Opacity{}, underCardStyle)
		placeCard(canvas, lines, left, top+i+1, 0, cellW, cellH)
	}

	t := m.frame.Transform
	lines := renderCard(*m.frame.Top, cardW, cardH, m.frame.Opacity, cardStyle)
	dx := int(math.Round(t.TranslateX / cellW))
	dy := int(math.Round(t.TranslateY / cellH))
	placeCard(canvas, lines, left+dx, top+dy, m.frame.Rotation, cellW, cellH)
	return canvas
}

func (m Model) renderFooter() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		renderButton(deck.Reject.Icon(), nopeColor, m.frame.Opacity.Reject),
		"      ",
		renderButton(deck.Accept.Icon(), likeColor, m.frame.Opacity.Accept))

	status := ""
	if s := m.lastSwipe; s != nil {
		status = statusStyle.Render(fmt.Sprintf("%s %s", s.Direction.Icon(), s.Profile.Name))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, buttons))
	b.WriteString("\n")
	b.WriteString("  " + status + "\n")
	b.WriteString("  " + m.help.View(m.keys) + "\n")
	return b.String()
}

func windowTitle(deckName string, remaining int) string {
	if deckName == "" {
		return fmt.Sprintf("swipe (%d left)", remaining)
	}
	return fmt.Sprintf("%s (%d left) - swipe", deckName, remaining)
}

// DirectionSummary formats accepted/rejected counts for the exit message.
func DirectionSummary(d *deck.Deck) string {
	accepted, rejected := d.Counts()
	total := accepted + rejected
	ratio := 0.0
	if total > 0 {
		ratio = float64(accepted) / float64(total)
	}
	return fmt.Sprintf("%d liked, %d passed (%s liked)", accepted, rejected, util.FormatPercent(ratio))
}
