package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/swipe"
)

// stampVisible is the opacity below which a stamp is not drawn at all.
const stampVisible = 0.05

// renderCard draws a profile as a w x h box. Opacity drives the LIKE/NOPE
// stamps; pass a zero Opacity for cards beneath the top one.
func renderCard(p deck.Profile, w, h int, op swipe.Opacity, style lipgloss.Style) []string {
	inner := w - 4
	if inner < 4 {
		inner = 4
	}

	like := stamp("LIKE", likeColor, op.Accept)
	nope := stamp("NOPE", nopeColor, op.Reject)
	gap := inner - lipgloss.Width(like) - lipgloss.Width(nope)
	if gap < 1 {
		gap = 1
	}

	title := p.Name
	if p.Age > 0 {
		title = fmt.Sprintf("%s, %d", p.Name, p.Age)
	}

	lines := []string{
		like + strings.Repeat(" ", gap) + nope,
		"",
		nameStyle.Render(ansi.Truncate(title, inner, "…")),
	}
	if p.Bio != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(bioStyle.Width(inner).Render(p.Bio), "\n")...)
	}
	if len(p.Tags) > 0 {
		lines = append(lines, "", tagStyle.Render(ansi.Truncate("#"+strings.Join(p.Tags, " #"), inner, "…")))
	}
	if p.Picture != "" {
		lines = append(lines, helpStyle.Render(ansi.Truncate("▣ "+p.Picture, inner, "…")))
	}

	body := h - 2
	if body < 1 {
		body = 1
	}
	if len(lines) > body {
		lines = lines[:body]
	}

	box := style.Width(w - 2).Height(body).Render(strings.Join(lines, "\n"))
	return strings.Split(box, "\n")
}

// stamp renders label in color, blended in from a dim grey as opacity rises.
func stamp(label, color string, opacity float64) string {
	if opacity < stampVisible {
		return strings.Repeat(" ", len(label)+2)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(blend(fadeColor, color, opacity))).
		Render("[" + label + "]")
}

func blend(from, to string, t float64) string {
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

// overlay writes fg over bg starting at column x, clipping to width.
// bg must be exactly width cells wide.
func overlay(bg, fg string, x, width int) string {
	fgW := ansi.StringWidth(fg)
	if fgW == 0 || x >= width || x+fgW <= 0 {
		return bg
	}
	if x < 0 {
		fg = ansi.TruncateLeft(fg, -x, "")
		fgW += x
		x = 0
	}
	if x+fgW > width {
		fg = ansi.Truncate(fg, width-x, "")
		fgW = width - x
	}
	return ansi.Truncate(bg, x, "") + fg + ansi.TruncateLeft(bg, x+fgW, "")
}

// blankCanvas returns rows lines of width spaces.
func blankCanvas(width, rows int) []string {
	canvas := make([]string, rows)
	for i := range canvas {
		canvas[i] = strings.Repeat(" ", width)
	}
	return canvas
}

// placeCard draws lines onto canvas with the top-left corner at (left, top),
// shearing each row horizontally to approximate a rotation of rotation
// degrees about the card's center. cellW/cellH are the cell size in points.
func placeCard(canvas, lines []string, left, top int, rotation, cellW, cellH float64) {
	width := 0
	if len(canvas) > 0 {
		width = ansi.StringWidth(canvas[0])
	}
	sin := math.Sin(rotation * math.Pi / 180)
	mid := float64(len(lines)-1) / 2
	for r, line := range lines {
		y := top + r
		if y < 0 || y >= len(canvas) {
			continue
		}
		dy := (float64(r) - mid) * cellH
		shear := int(math.Round(-dy * sin / cellW))
		canvas[y] = overlay(canvas[y], line, left+shear, width)
	}
}

func renderButton(icon, color string, emphasis float64) string {
	return buttonStyle.
		BorderForeground(lipgloss.Color(blend(fadeColor, color, 0.35+0.65*emphasis))).
		Foreground(lipgloss.Color(color)).
		Render(icon)
}
