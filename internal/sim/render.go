package sim

import (
	"fmt"
	"strings"

	"github.com/skyfall-arcade/skyfall/internal/core"
)

// Render draws the current run state into the screen buffer. Rendering reads
// entity state straight out of the pool slots; nothing here mutates the
// simulation.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.drawHUD(dst)
	g.drawEntities(dst)
	g.drawCatcher(dst)
	g.drawOverlay(dst)
}

func (g *Game) drawHUD(dst *core.Screen) {
	hud := fmt.Sprintf("Score %d  Lv %d  Lives %d  Combo x%d",
		g.score, g.level, g.lives, g.combo)
	dst.DrawText(1, 0, hud)

	var right []string
	meter, open := g.Overcharge()
	switch {
	case open:
		right = append(right, "OVERCHARGE")
	case meter >= 100:
		right = append(right, "[O] ready")
	default:
		right = append(right, fmt.Sprintf("OC %d%%", meter))
	}
	if g.shieldCharges > 0 {
		right = append(right, fmt.Sprintf("Shield %d", g.shieldCharges))
	}
	for _, a := range g.ActiveAbilities() {
		right = append(right, a.String())
	}
	if g.chaosActive() {
		right = append(right, "CHAOS")
	}

	line := strings.Join(right, "  ")
	dst.DrawTextColored(core.Max(1, g.rt.ScreenW-len(line)-1), 0, line, core.ColorCyan)

	if frac := g.weapon.chargeFraction(g.tick, g.cfg.Weapon); frac > 0 {
		filled := int(frac * 10)
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", 10-filled) + "]"
		dst.DrawTextColored(1, g.rt.ScreenH-1, bar, core.ColorYellow)
	}
}

func (g *Game) drawEntities(dst *core.Screen) {
	for _, it := range g.items.Active() {
		if it.Visible {
			dst.SetCell(int(it.Pos.X), int(it.Pos.Y), it.Glyph, colorForKind(it.Kind))
		}
	}
	for _, pu := range g.powerups.Active() {
		if pu.Visible {
			dst.SetCell(int(pu.Pos.X), int(pu.Pos.Y), pu.Glyph, core.ColorBrightCyan)
		}
	}
	for _, p := range g.projectiles.Active() {
		if p.Visible {
			dst.SetCell(int(p.Pos.X), int(p.Pos.Y), p.Glyph, core.ColorBrightYellow)
		}
	}
	if g.quality.EffectIntensity > 0 {
		for _, p := range g.particles.Active() {
			if p.Visible {
				dst.SetCell(int(p.Pos.X), int(p.Pos.Y), p.Glyph, p.Color)
			}
		}
	}
}

func (g *Game) drawCatcher(dst *core.Screen) {
	half := g.cfg.Catcher.Width / 2
	y := int(g.catcherY)
	left := int(g.catcherX) - half

	color := core.ColorBrightWhite
	if g.dash.active {
		color = core.ColorBrightCyan
	}
	for i := 0; i < g.cfg.Catcher.Width; i++ {
		r := '═'
		switch i {
		case 0:
			r = '╚'
		case g.cfg.Catcher.Width - 1:
			r = '╝'
		}
		dst.SetCell(left+i, y, r, color)
	}
}

func (g *Game) drawOverlay(dst *core.Screen) {
	mid := g.rt.ScreenH / 2
	switch g.phase {
	case phaseReady:
		dst.DrawTextCentered(mid-1, g.params.title)
		dst.DrawTextCentered(mid+1, "Press SPACE to start")
	case phasePaused:
		dst.DrawTextCentered(mid, "PAUSED - P to resume")
	case phaseGameOver:
		dst.DrawTextCentered(mid-2, "GAME OVER")
		dst.DrawTextCentered(mid, fmt.Sprintf("Score %d  Max combo x%d", g.score, g.maxCombo))
		dst.DrawTextCentered(mid+2, "R to restart, B for menu")
	}
}
