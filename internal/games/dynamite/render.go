package dynamite

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/sim"
)

// Each map cell is drawn two characters wide so the grid looks square.
const (
	cellW     = 2
	hudHeight = 4
)

type glyph struct {
	r rune
	c core.Color
}

var bombColors = map[sim.BombKind]core.Color{
	sim.BombTimed:   core.ColorBrightRed,
	sim.BombContact: core.ColorOrange,
	sim.BombFreeze:  core.ColorBrightCyan,
	sim.BombRemote:  core.ColorMagenta,
}

var bombLetters = map[sim.BombKind]rune{
	sim.BombTimed:   't',
	sim.BombContact: 'c',
	sim.BombFreeze:  'f',
	sim.BombRemote:  'r',
}

var decorGlyphs = map[sim.DecorKind]glyph{
	sim.DecorTree:     {'♣', core.ColorGreen},
	sim.DecorRock:     {'▲', core.ColorGray},
	sim.DecorBeaver:   {'b', core.ColorBrown},
	sim.DecorBullrush: {'|', core.ColorYellow},
}

var flowArrows = map[sim.Dir]rune{
	sim.DirUp:    '↑',
	sim.DirRight: '→',
	sim.DirDown:  '↓',
	sim.DirLeft:  '←',
}

var facingMarks = map[sim.Dir]rune{
	sim.DirUp:    '^',
	sim.DirRight: '>',
	sim.DirDown:  'v',
	sim.DirLeft:  '<',
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.state == nil {
		msg := "No level loaded"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.renderOverlay(dst, "Level failed to load", msg, "R: retry  Q: quit")
		return
	}

	origin, ok := g.mapOrigin(dst)
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue", "")
		return
	}

	g.renderTerrain(dst, origin)
	g.renderEntities(dst, origin)
	g.renderFlashes(dst, origin)
	g.renderPlayer(dst, origin)
	g.renderStatus(dst, origin)

	switch {
	case g.defect != nil:
		g.renderOverlay(dst, "Simulation halted", g.defect.Error(), "Q: quit")
	case g.finished:
		g.renderOverlay(dst, "The valley is flooded!", "You cleared every level.", "R: replay  Q: quit")
	case g.state.Outcome == sim.Won:
		g.renderOverlay(dst, "Level complete!", fmt.Sprintf("%d bombs, %.1fs", g.bombsUsed, g.state.Now.Seconds()), "N: next level  R: replay")
	case g.state.Outcome == sim.Lost:
		g.renderOverlay(dst, "Level failed", lossMessage(g.state.Loss), "R: restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "", "P: continue")
	}
}

// mapOrigin returns the top-left screen cell of the map, centered below the HUD.
func (g *Game) mapOrigin(dst *core.Screen) (core.Rect, bool) {
	w := g.state.Grid.W * cellW
	h := g.state.Grid.H
	if dst.Width() < w+2 || dst.Height() < hudHeight+h+3 {
		return core.Rect{}, false
	}
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-2)
	return area.Centered(w, h), true
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := " Dynamite Valley"
	if g.level.Name != "" {
		hud += " | " + g.level.DisplayTitle()
	}
	if g.state != nil {
		hud += fmt.Sprintf(" | Dams: %d | Carry: %s | Remote: %d | %.1fs",
			g.state.Dams, carryText(g.state.Player.Carry, g.rules.CarryCapacity), len(g.state.RemoteQueue()), g.state.Now.Seconds())
	}
	dst.DrawTextWithColor(0, 0, hud, core.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', core.ColorGray)
		dst.SetWithColor(x, 3, '─', core.ColorGray)
	}
	dst.DrawTextWithColor(0, 2, " Arrows: move | E: pick up | Space: drop | T: trigger | P: pause | R: restart", core.ColorGray)
}

func carryText(carry []sim.BombKind, capacity int) string {
	if capacity <= 0 {
		capacity = sim.DefaultRules().CarryCapacity
	}
	slots := make([]string, capacity)
	for i := range slots {
		slots[i] = "-"
		if i < len(carry) {
			slots[i] = string(bombLetters[carry[i]])
		}
	}
	return "[" + strings.Join(slots, " ") + "]"
}

func (g *Game) renderTerrain(dst *core.Screen, o core.Rect) {
	grid := g.state.Grid
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			t := grid.Tile(sim.C(x, y))
			var gl glyph
			switch t.Terrain {
			case sim.TerrainLand:
				gl = glyph{'.', core.ColorGreen}
			case sim.TerrainWater:
				gl = glyph{'~', core.ColorBlue}
			case sim.TerrainFlow:
				gl = glyph{flowArrows[t.Flow], core.ColorCyan}
			}
			sx := o.X + x*cellW
			dst.SetWithColor(sx, o.Y+y, gl.r, gl.c)
			dst.SetWithColor(sx+1, o.Y+y, ' ', gl.c)
		}
	}
}

func (g *Game) renderEntities(dst *core.Screen, o core.Rect) {
	for _, e := range g.state.Entities() {
		gl, tail := g.entityGlyph(e)

		sx := o.X + e.Pos.X*cellW
		sy := o.Y + e.Pos.Y
		// Drifting objects slide between cells along horizontal currents.
		if to, frac, ok := g.state.Transit(e.ID); ok && to.Y == e.Pos.Y {
			sx += int(frac*cellW) * (to.X - e.Pos.X)
		}

		dst.SetWithColor(sx, sy, gl.r, gl.c)
		if tail != 0 {
			dst.SetWithColor(sx+1, sy, tail, gl.c)
		}
	}
}

// entityGlyph returns the main rune of an entity and an optional second one.
func (g *Game) entityGlyph(e sim.Entity) (glyph, rune) {
	switch e.Kind {
	case sim.KindBomb:
		return g.bombGlyph(e.Bomb)
	case sim.KindLog:
		return glyph{'=', core.ColorBrown}, '='
	case sim.KindDam:
		return glyph{'▓', core.ColorBrown}, '▓'
	case sim.KindBush:
		return glyph{'♠', core.ColorBrightGreen}, 0
	case sim.KindDecoration:
		return decorGlyphs[e.Decor], 0
	case sim.KindDispenser:
		tail := '∞'
		if e.Supply >= 0 {
			tail = rune('0' + core.Min(e.Supply, 9))
		}
		return glyph{unicodeUpper(bombLetters[e.Dispense]), bombColors[e.Dispense]}, tail
	}
	return glyph{'?', core.ColorWhite}, 0
}

func (g *Game) bombGlyph(b sim.Bomb) (glyph, rune) {
	gl := glyph{'●', bombColors[b.Kind]}
	if !b.Armed {
		return glyph{'○', gl.c}, bombLetters[b.Kind]
	}
	if b.Frozen(g.state.Now) {
		return glyph{'●', core.ColorBrightBlue}, '*'
	}
	if b.HasTimer {
		secs := int((b.Timer + 999_999_999) / 1_000_000_000)
		return gl, rune('0' + core.Clamp(secs, 0, 9))
	}
	return gl, bombLetters[b.Kind]
}

func unicodeUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func (g *Game) renderFlashes(dst *core.Screen, o core.Rect) {
	for _, f := range g.flashes {
		c := core.ColorBrightYellow
		if f.freeze {
			c = core.ColorBrightCyan
		}
		cells := []sim.Coord{f.at}
		for _, d := range sim.Dirs {
			cells = append(cells, f.at.Step(d))
		}
		for _, at := range cells {
			if !g.state.Grid.InBounds(at) {
				continue
			}
			dst.SetWithColor(o.X+at.X*cellW, o.Y+at.Y, '*', c)
			dst.SetWithColor(o.X+at.X*cellW+1, o.Y+at.Y, '*', c)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, o core.Rect) {
	p := g.state.Player
	c := core.ColorBrightWhite
	if g.state.Outcome == sim.Lost {
		c = core.ColorRed
	}
	sx := o.X + p.Pos.X*cellW
	dst.SetWithColor(sx, o.Y+p.Pos.Y, '@', c)
	dst.SetWithColor(sx+1, o.Y+p.Pos.Y, facingMarks[p.Facing], c)
}

func (g *Game) renderStatus(dst *core.Screen, o core.Rect) {
	if g.status == "" {
		return
	}
	dst.DrawTextCentered(o.Bottom()+1, g.status, core.ColorYellow)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, title, body, keys string) {
	w := core.Max(len(title), core.Max(len([]rune(body)), len(keys))) + 4
	w = core.Min(w, dst.Width())
	box := dst.Bounds().Centered(w, 6)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+2, body, core.ColorWhite)
	dst.DrawTextCentered(box.Y+4, keys, core.ColorGray)
}
