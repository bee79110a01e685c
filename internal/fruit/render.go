package fruit

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/fruit-rush/internal/core"
)

// Layout constants
const (
	hudHeight  = 2 // Score line plus separator
	minScreenW = 24
	minScreenH = 10
)

// playerGlyphs holds the two animation frames per facing.
var playerGlyphs = map[Direction][2]rune{
	DirUp:    {'▲', '△'},
	DirDown:  {'▼', '▽'},
	DirLeft:  {'◀', '◁'},
	DirRight: {'▶', '▷'},
}

var fruitGlyphs = [KindCount]rune{
	Apple:  'A',
	Grape:  'G',
	Orange: 'O',
	Pine:   'P',
}

var fruitLabels = [KindCount]string{
	Apple:  "Apple",
	Grape:  "Grape",
	Orange: "Orange",
	Pine:   "Pine",
}

var fruitColors = [KindCount]core.Color{
	Apple:  core.ColorRed,
	Grape:  core.ColorMagenta,
	Orange: core.ColorOrange,
	Pine:   core.ColorYellow,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawText(0, 0, "Window too small")
		return
	}

	g.renderHUD(dst)

	box := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	dst.DrawBox(box)

	status := g.session.Status()
	if status != StatusNotStarted {
		g.renderFruit(dst, box)
		g.renderPlayer(dst, box)
	}

	switch {
	case status == StatusNotStarted && g.showHelp:
		g.renderCard(dst, g.helpLines())
	case status == StatusNotStarted:
		g.renderCard(dst, []string{
			"FRUIT RUSH",
			"",
			"Enter: start   H: help",
			"Q: quit",
		})
	case status == StatusGameOver:
		g.renderCard(dst, g.gameOverLines())
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	p := g.session.Player()
	seconds := g.session.Tick() / uint64(max(1, g.runtime.Gameplay.TicksPerSecond))
	hud := fmt.Sprintf(" Fruit Rush | Score: %d  Speed: %.1f  Time: %ds", g.session.Score(), p.Speed, seconds)
	dst.DrawText(0, 0, hud)

	// Legend with per-fruit counts, right aligned
	legendLen := 0
	for _, k := range Kinds {
		legendLen += len(fmt.Sprintf("%c%d ", fruitGlyphs[k], g.session.Orchard().Count(k)))
	}
	x := dst.Width() - legendLen
	if x > utf8.RuneCountInString(hud)+1 {
		for _, k := range Kinds {
			text := fmt.Sprintf("%c%d ", fruitGlyphs[k], g.session.Orchard().Count(k))
			dst.DrawTextColored(x, 0, text, fruitColors[k])
			x += len(text)
		}
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// toCell maps a field position into the interior of box.
func (g *Game) toCell(box core.Rect, pos core.Vec) (int, int) {
	innerW := box.W - 2
	innerH := box.H - 2
	fw := g.runtime.Field.Width
	fh := g.runtime.Field.Height

	cx := int(pos.X / fw * float64(innerW))
	cy := int(pos.Y / fh * float64(innerH))
	cx = core.Clamp(cx, 0, innerW-1)
	cy = core.Clamp(cy, 0, innerH-1)
	return box.X + 1 + cx, box.Y + 1 + cy
}

func (g *Game) renderFruit(dst *core.Screen, box core.Rect) {
	for _, k := range Kinds {
		pos, placed := g.session.Orchard().Position(k)
		if !placed {
			continue
		}
		x, y := g.toCell(box, pos)
		dst.SetColored(x, y, fruitGlyphs[k], fruitColors[k])
	}
}

func (g *Game) renderPlayer(dst *core.Screen, box core.Rect) {
	p := g.session.Player()
	x, y := g.toCell(box, p.Pos)
	color := core.ColorBrightWhite
	if g.session.Status() == StatusGameOver {
		color = core.ColorGray
	}
	dst.SetColored(x, y, playerGlyphs[p.Dir][p.Phase], color)
}

func (g *Game) helpLines() []string {
	o := g.session.Orchard()
	return []string{
		"HOW TO PLAY",
		"",
		"Steer with the arrow keys or WASD.",
		"Collect fruit, stay inside the field.",
		"You speed up every second.",
		"",
		fmt.Sprintf("Apple %d  Grape %d  Orange %d  Pine %d",
			o.Points(Apple), o.Points(Grape), o.Points(Orange), o.Points(Pine)),
		"",
		"H: back",
	}
}

func (g *Game) gameOverLines() []string {
	lines := []string{"GAME OVER", ""}
	for _, k := range scoreboardOrder {
		lines = append(lines, fmt.Sprintf("%-7s x %d", fruitLabels[k], g.session.Orchard().Count(k)))
	}
	lines = append(lines,
		fmt.Sprintf("%-7s %d", "Total", g.session.Score()),
		"",
		"Enter: restart",
	)
	return lines
}

// renderCard draws a centered box with one line of text per row.
func (g *Game) renderCard(dst *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(l))
	}
	boxW := min(maxLen+4, dst.Width())
	boxH := min(len(lines)+2, dst.Height())
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	card := core.NewRect(boxX, boxY, boxW, boxH)
	dst.FillRect(card, ' ')
	dst.DrawBox(card)

	for i, l := range lines {
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, boxY+1+i, l, core.ColorBrightYellow)
	}
}
