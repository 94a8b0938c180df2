package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dreadhollow/internal/enemy"
	"github.com/samdwyer/dreadhollow/internal/entity"
	"github.com/samdwyer/dreadhollow/internal/level"
	"github.com/samdwyer/dreadhollow/internal/trigger"
	"github.com/samdwyer/dreadhollow/internal/world"
)

// View is everything drawn for a running level.
type View struct {
	Title      string
	Map        *world.Map
	FloorColor tcell.Color
	Player     *entity.Player
	Enemies    []*entity.Enemy
	Triggers   []trigger.Trigger
	// Visible hides cells outside the player's light. Nil shows everything.
	Visible  func(x, y int) bool
	Kind     level.Kind
	HUD      level.HUD
	Lights   bool
	Controls string
}

// MenuItem is one selectable line of a menu.
type MenuItem struct {
	Label    string
	Value    string
	Disabled bool
}

// Menu is a titled list with a cursor.
type Menu struct {
	Title  string
	Items  []MenuItem
	Cursor int
	Footer []string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen     *Screen
	brightness float64
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen, brightness: 1}
}

// SetBrightness scales every foreground color drawn from now on.
func (r *Renderer) SetBrightness(b float64) {
	r.brightness = min(max(b, 0), 1)
}

// Brightness returns the current color scale.
func (r *Renderer) Brightness() float64 { return r.brightness }

// RenderLevel draws the map, the triggers, the actors, the HUD and any
// overlay raised on panels.
func (r *Renderer) RenderLevel(v View, panels *Panels) {
	r.screen.Clear()
	if v.Map == nil {
		r.screen.Show()
		return
	}

	visible := v.Visible
	if visible == nil {
		visible = func(int, int) bool { return true }
	}

	for y := 0; y < v.Map.Height; y++ {
		for x := 0; x < v.Map.Width; x++ {
			if !visible(x, y) {
				continue
			}
			tile := v.Map.GetTile(x, y)
			r.setContent(x, y, tile.Rune(), r.getTileStyle(tile, v.FloorColor))
		}
	}

	for _, t := range v.Triggers {
		r.drawTrigger(t, visible)
	}

	for _, e := range v.Enemies {
		x, y := e.Cell()
		if !visible(x, y) {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.Color())
		switch e.Anim {
		case enemy.AnimAttack:
			style = style.Bold(true).Reverse(true)
		case enemy.AnimRun:
			style = style.Bold(true)
		}
		r.setContent(x, y, e.Symbol, style)
	}

	if v.Player != nil {
		if _, ok := v.Player.Position(); ok {
			x, y := v.Player.Cell()
			playerStyle := tcell.StyleDefault.
				Foreground(tcell.ColorYellow).
				Bold(true)
			r.setContent(x, y, v.Player.Symbol, playerStyle)
		}
	}

	r.drawHUD(v, v.Map.Height)

	if panels != nil {
		r.drawOverlay(panels)
	}
	r.screen.Show()
}

func (r *Renderer) drawTrigger(t trigger.Trigger, visible func(x, y int) bool) {
	switch t := t.(type) {
	case *trigger.Collectible:
		if !t.Taken && visible(t.Cell.X, t.Cell.Y) {
			r.setContent(t.Cell.X, t.Cell.Y, '*', tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true))
		}
	case *trigger.HealPickup:
		if !t.Taken && visible(t.Cell.X, t.Cell.Y) {
			r.setContent(t.Cell.X, t.Cell.Y, '&', tcell.StyleDefault.Foreground(tcell.ColorLime))
		}
	case *trigger.ToxicZone:
		style := tcell.StyleDefault.Foreground(tcell.ColorOlive).Background(tcell.ColorDarkOliveGreen)
		for y := t.Area.Y; y < t.Area.Y+t.Area.Height; y++ {
			for x := t.Area.X; x < t.Area.X+t.Area.Width; x++ {
				if visible(x, y) {
					r.setContent(x, y, '~', style)
				}
			}
		}
	case *trigger.Crack:
		if visible(t.Cell.X, t.Cell.Y) {
			r.setContent(t.Cell.X, t.Cell.Y, '%', tcell.StyleDefault.Foreground(tcell.ColorMaroon))
		}
	case *trigger.Switch:
		if visible(t.Cell.X, t.Cell.Y) {
			color := tcell.ColorSilver
			if t.On {
				color = tcell.ColorYellow
			}
			r.setContent(t.Cell.X, t.Cell.Y, '!', tcell.StyleDefault.Foreground(color))
		}
	}
}

func (r *Renderer) drawHUD(v View, y int) {
	label := "Items"
	if v.Kind == level.KindSurvival {
		label = "Health"
	}
	lights := "off"
	if v.Lights {
		lights = "on"
	}
	hud := fmt.Sprintf("%s  Time %s  %s %s  Lights %s", v.Title, v.HUD.Time, label, v.HUD.Progress, lights)
	r.RenderMessage(hud, y)
	if v.Controls != "" {
		r.RenderMessage(v.Controls, y+1)
	}
}

// drawOverlay draws the pause or result panel centered on the screen.
func (r *Renderer) drawOverlay(p *Panels) {
	if res, ok := p.Result(); ok {
		title := "DEFEAT"
		if res.Outcome == level.OutcomeVictory {
			title = "VICTORY"
		}
		lines := []string{title, ""}
		if res.Kind == level.KindSurvival {
			lines = append(lines, "Health: "+res.Progress)
		} else {
			lines = append(lines, "Collected: "+res.Progress)
		}
		lines = append(lines, "Time: "+res.Elapsed, "", "[enter] continue  [r] retry")
		r.drawBox(lines)
		return
	}
	if p.Paused() {
		r.drawBox([]string{"PAUSED", "", "[p] resume  [m] menu"})
	}
}

func (r *Renderer) drawBox(lines []string) {
	w, h := r.screen.Size()
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2
	x0 := max((w-width)/2, 0)
	y0 := max((h-height)/2, 0)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			r.setContent(x, y, ' ', style)
		}
	}
	for i, l := range lines {
		r.drawText(x0+2, y0+1+i, l, style.Bold(i == 0))
	}
}

// RenderMenu draws a menu with the cursor line highlighted.
func (r *Renderer) RenderMenu(m Menu) {
	r.screen.Clear()
	r.drawText(2, 1, m.Title, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	for i, item := range m.Items {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if item.Disabled {
			style = style.Foreground(tcell.ColorDimGray)
		}
		prefix := "  "
		if i == m.Cursor {
			prefix = "> "
			style = style.Reverse(!item.Disabled)
		}
		line := prefix + item.Label
		if item.Value != "" {
			line += ": " + item.Value
		}
		if item.Disabled {
			line += " (locked)"
		}
		r.drawText(2, 3+i, line, style)
	}
	for i, f := range m.Footer {
		r.drawText(2, 4+len(m.Items)+i, f, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
	r.screen.Show()
}

// RenderText draws a titled page of text.
func (r *Renderer) RenderText(title string, lines []string) {
	r.screen.Clear()
	r.drawText(2, 1, title, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	for i, l := range lines {
		r.drawText(2, 3+i, l, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	r.screen.Show()
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile, floor tcell.Color) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		if floor == tcell.ColorDefault {
			floor = tcell.ColorGray
		}
		return tcell.StyleDefault.Foreground(floor)
	case world.TileDoorClosed, world.TileDoorOpen:
		return tcell.StyleDefault.Foreground(tcell.ColorSandyBrown)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.drawText(0, y, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.setContent(x+i, y, ch, style)
	}
}

func (r *Renderer) setContent(x, y int, ch rune, style tcell.Style) {
	r.screen.SetContent(x, y, ch, r.dim(style))
}

// dim scales the foreground color by the brightness setting.
func (r *Renderer) dim(style tcell.Style) tcell.Style {
	if r.brightness >= 1 {
		return style
	}
	fg, _, _ := style.Decompose()
	if fg == tcell.ColorDefault {
		return style
	}
	cr, cg, cb := fg.RGB()
	if cr < 0 {
		return style
	}
	scale := func(c int32) int32 { return int32(float64(c) * r.brightness) }
	return style.Foreground(tcell.NewRGBColor(scale(cr), scale(cg), scale(cb)))
}
