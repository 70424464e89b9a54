package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neon-arcade/internal/core"
)

// Glyphs not configurable per kind.
const (
	ParticleGlyph    = '.'
	HostileShotGlyph = '|'
	GroundGlyph      = '_'
	hudRows          = 1
)

// facingGlyphs are indexed by heading octant, starting east, clockwise.
var facingGlyphs = []rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// Render paints the run onto dst. It only reads state. An unready screen
// is left alone; the simulation keeps running regardless.
func (c *Controller) Render(dst *core.Screen) {
	if !dst.Ready() {
		return
	}
	dst.Clear()

	vp := newViewport(c.desc, dst)
	if c.run.Phase != core.PhaseIdle {
		// Layers: background, obstacles, projectiles, characters.
		c.world.Each(VariantParticle, func(e *Entity) {
			vp.point(e.Pos, ParticleGlyph, c.kindColor(e.Kind))
		})
		if c.desc.Player.Motion.impulse() {
			vp.hline(c.desc.Player.Ground, GroundGlyph, core.ColorGray)
		}
		c.world.Each(VariantObstacle, func(e *Entity) { c.drawKind(vp, e) })
		c.world.Each(VariantPickup, func(e *Entity) { c.drawKind(vp, e) })
		c.world.Each(VariantProjectile, func(e *Entity) { c.drawProjectile(vp, e) })
		c.world.Each(VariantOpponent, func(e *Entity) { c.drawKind(vp, e) })
		if p := c.Player(); p != nil {
			c.drawPlayer(vp, p)
		}
	}

	c.renderHUD(dst)
	c.renderOverlay(dst)
}

func (c *Controller) kindColor(name string) core.Color {
	if k := c.desc.Kind(name); k != nil {
		return k.Color
	}
	return core.ColorGray
}

func (c *Controller) drawKind(vp viewport, e *Entity) {
	glyph, color := 'x', core.ColorDefault
	if k := c.desc.Kind(e.Kind); k != nil {
		glyph, color = k.Glyph, k.Color
	}
	vp.shape(e, glyph, color)
}

func (c *Controller) drawProjectile(vp viewport, e *Entity) {
	if e.Friendly {
		pr := c.desc.Player.Projectile
		vp.point(e.Pos, pr.Glyph, pr.Color)
		return
	}
	vp.point(e.Pos, HostileShotGlyph, core.ColorBrightRed)
}

func (c *Controller) drawPlayer(vp viewport, p *Entity) {
	// Blink while invulnerable.
	if p.Timers.Invulnerable > 0 && (p.Timers.Invulnerable/4)%2 == 1 {
		return
	}
	sp := c.desc.Player
	if sp.Motion == MotionThrust || sp.Aim == AimFacing || sp.Aim == AimPointer {
		vp.point(p.Pos, facingGlyph(p.Facing), sp.Color)
		return
	}
	vp.shape(p, sp.Glyph, sp.Color)
}

func facingGlyph(heading float64) rune {
	a := math.Mod(heading, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	octant := int(math.Round(a/(math.Pi/4))) % len(facingGlyphs)
	return facingGlyphs[octant]
}

// renderHUD draws score, health and wave on the top row.
func (c *Controller) renderHUD(dst *core.Screen) {
	r := c.desc.Rules
	s := c.State()

	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", s.Score), core.ColorBrightWhite)

	healthText := fmt.Sprintf("%s: %d/%d", r.HealthLabel, s.Health, s.MaxHealth)
	dst.DrawTextCentered(0, healthText, core.ColorBrightRed)

	waveText := fmt.Sprintf("%s: %d  Best: %d", r.WaveLabel, s.Wave, s.BestScore)
	if r.WinDistance > 0 {
		pct := min(int(c.run.Distance*100/r.WinDistance), 100)
		waveText = fmt.Sprintf("Run: %d%%  %s", pct, waveText)
	}
	dst.DrawTextColor(dst.Width()-len(waveText)-1, 0, waveText, core.ColorBrightYellow)
}

// renderOverlay draws phase messages.
func (c *Controller) renderOverlay(dst *core.Screen) {
	switch c.run.Phase {
	case core.PhaseIdle:
		drawCenteredBox(dst, c.desc.Title, "Press ENTER to start")
	case core.PhaseOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press ENTER to restart", c.run.Score))
	case core.PhaseWon:
		drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Press ENTER to restart", c.run.Score))
	case core.PhaseRunning:
		if c.run.Paused {
			drawCenteredBox(dst, "PAUSED", "Press P to resume")
		}
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorCyan)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
}

// viewport maps logical coordinates onto the cells below the HUD.
type viewport struct {
	dst    *core.Screen
	sx, sy float64
}

func newViewport(d *Descriptor, dst *core.Screen) viewport {
	rows := max(dst.Height()-hudRows, 1)
	return viewport{
		dst: dst,
		sx:  float64(dst.Width()) / d.Width,
		sy:  float64(rows) / d.Height,
	}
}

func (vp viewport) cell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X * vp.sx)), hudRows + int(math.Floor(p.Y*vp.sy))
}

func (vp viewport) visible(x, y int) bool {
	return x >= 0 && x < vp.dst.Width() && y >= hudRows && y < vp.dst.Height()
}

func (vp viewport) point(p core.Vec2, glyph rune, color core.Color) {
	if x, y := vp.cell(p); vp.visible(x, y) {
		vp.dst.SetColor(x, y, glyph, color)
	}
}

// hline draws a full-width line at world height y.
func (vp viewport) hline(y float64, glyph rune, color core.Color) {
	_, row := vp.cell(core.V(0, y))
	for x := range vp.dst.Width() {
		if vp.visible(x, row) {
			vp.dst.SetColor(x, row, glyph, color)
		}
	}
}

// shape fills the cells covered by e. Circles keep only cells whose centre
// lies inside the radius; anything smaller than a cell is drawn as a point.
func (vp viewport) shape(e *Entity, glyph rune, color core.Color) {
	b := e.Box()
	x0, y0 := vp.cell(core.V(b.MinX, b.MinY))
	x1, y1 := vp.cell(core.V(b.MaxX, b.MaxY))
	if x1-x0 <= 1 && y1-y0 <= 1 {
		vp.point(e.Pos, glyph, color)
		return
	}
	r2 := e.Shape.Radius * e.Shape.Radius
	drawn := 0
	for y := y0; y < max(y1, y0+1); y++ {
		for x := x0; x < max(x1, x0+1); x++ {
			if !vp.visible(x, y) {
				continue
			}
			if e.Shape.Kind == ShapeCircle {
				centre := core.V((float64(x)+0.5)/vp.sx, (float64(y-hudRows)+0.5)/vp.sy)
				if centre.DistSq(e.Pos) > r2 {
					continue
				}
			}
			vp.dst.SetColor(x, y, glyph, color)
			drawn++
		}
	}
	if drawn == 0 {
		vp.point(e.Pos, glyph, color)
	}
}
