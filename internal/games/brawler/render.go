package brawler

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/games/brawler/sim"
)

// World-to-screen scale.
const (
	colsPerUnit = 4.0
	rowsPerUnit = 2.0
	hudRows     = 3
)

// Glyphs
const (
	GroundChar     = '▀'
	PlayerHead     = '@'
	CorpseChar     = '%'
	PelletChar     = '·'
	BoltChar       = '-'
	EnemyShotChar  = '~'
	HealthPickup   = '+'
	EnergyPickup   = '*'
	BarFull        = '█'
	BarEmpty       = '░'
	BurstChar      = '✶'
	DashTrailChar  = '='
	SwordSwingChar = '/'
)

var enemyHeads = map[sim.EnemyType]rune{
	sim.EnemyNormal: 'E',
	sim.EnemyFast:   'F',
	sim.EnemyHeavy:  'H',
}

var enemyColors = map[sim.EnemyType]core.Color{
	sim.EnemyNormal: core.ColorYellow,
	sim.EnemyFast:   core.ColorBrightCyan,
	sim.EnemyHeavy:  core.ColorMagenta,
}

// view converts world coordinates to screen cells around a camera that
// follows the player.
type view struct {
	w, h    int
	camX    float64
	groundY int
}

func (v view) col(x float64) int {
	return v.w/2 + int(math.Round((x-v.camX)*colsPerUnit))
}

// row maps a height in world units to the screen row of the entity's feet.
func (v view) row(y float64) int {
	return v.groundY - 1 - int(math.Round((y-0.5)*rowsPerUnit))
}

// Render draws the arena, the HUD and any status overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
		return
	}

	st := g.driver.Snapshot()
	if st.Status == sim.StatusMenu {
		g.renderMenu(dst, st)
		return
	}

	v := view{
		w:       dst.Width(),
		h:       dst.Height(),
		camX:    st.Player.Pos.X,
		groundY: dst.Height() - 2,
	}

	g.renderGround(dst, v)
	g.renderPowerUps(dst, v, st)
	g.renderEnemies(dst, v, st)
	g.renderPlayer(dst, v, st)
	g.renderProjectiles(dst, v, st)
	g.renderHUD(dst, st)

	switch st.Status {
	case sim.StatusPaused:
		drawPanel(dst, []string{"PAUSED", "", "P/Enter: Resume", "B: Quit to menu"}, core.ColorBrightWhite)
	case sim.StatusGameOver:
		lines := []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d", st.Score),
			fmt.Sprintf("Reached wave %d", st.CurrentWave),
		}
		if st.Score > 0 && st.Score >= st.HighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		lines = append(lines, "", "R/Enter: Retry  B: Menu")
		drawPanel(dst, lines, core.ColorBrightRed)
	case sim.StatusLevelComplete:
		lines := []string{
			fmt.Sprintf("LEVEL %d CLEAR", st.CurrentLevel),
			"",
			fmt.Sprintf("Score: %d", st.Score),
			"",
		}
		if st.CurrentLevel < len(st.Levels) {
			lines = append(lines, "Enter: Next level  B: Menu")
		} else {
			lines = append(lines, "Campaign complete!", "Enter/B: Menu")
		}
		drawPanel(dst, lines, core.ColorBrightGreen)
	case sim.StatusPlaying:
		g.renderWaveBanner(dst, st)
	}
}

func (g *Game) renderGround(dst *core.Screen, v view) {
	for x := 0; x < v.w; x++ {
		dst.SetColored(x, v.groundY, GroundChar, core.ColorGray)
	}
	// Scrolling ground marks every 5 units make movement visible.
	start := math.Floor((v.camX-float64(v.w)/colsPerUnit)/5) * 5
	for wx := start; ; wx += 5 {
		x := v.col(wx)
		if x >= v.w {
			break
		}
		if x >= 0 {
			dst.SetColored(x, v.groundY+1, '|', core.ColorGray)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v view, st *sim.State) {
	p := st.Player
	x, feet := v.col(p.Pos.X), v.row(p.Pos.Y)
	sign := 1
	if p.Facing == sim.FacingLeft {
		sign = -1
	}

	color := core.ColorBrightCyan
	switch {
	case p.Anim == sim.AnimDeath:
		dst.DrawTextColored(x-1, feet, "x_x", core.ColorRed)
		return
	case p.Anim == sim.AnimDamaged || g.flash > 0:
		color = core.ColorBrightRed
	case p.Invulnerable:
		color = core.ColorBrightWhite
	}

	body := '|'
	switch p.Anim {
	case sim.AnimRun:
		if (st.Now()/150)%2 == 0 {
			body = '/'
		} else {
			body = '\\'
		}
	case sim.AnimAttack:
		body = '>'
		if sign < 0 {
			body = '<'
		}
	case sim.AnimDash:
		for i := 1; i <= 3; i++ {
			dst.SetColored(x-sign*i, feet, DashTrailChar, core.ColorBlue)
		}
	case sim.AnimSpecial:
		r := int(math.Round(g.driver.Config().Special.Radius * colsPerUnit))
		for i := -r; i <= r; i += 2 {
			dst.SetColored(x+i, feet-2, BurstChar, core.ColorBrightYellow)
			dst.SetColored(x+i, feet+0, BurstChar, core.ColorBrightYellow)
		}
	}

	dst.SetColored(x, feet-1, PlayerHead, color)
	dst.SetColored(x, feet, body, color)

	if p.Anim == sim.AnimAttack && g.currentWeapon(st).Kind == sim.WeaponMelee {
		reach := int(sim.AttackRange * colsPerUnit)
		for i := 1; i <= reach; i++ {
			dst.SetColored(x+sign*i, feet-1, SwordSwingChar, core.ColorBrightWhite)
		}
	}
}

func (g *Game) renderEnemies(dst *core.Screen, v view, st *sim.State) {
	now := st.Now()
	for _, e := range st.Enemies {
		x, feet := v.col(e.Pos.X), v.row(e.Pos.Y)
		if x < 0 || x >= v.w {
			continue
		}
		if e.IsDead {
			dst.SetColored(x, feet, CorpseChar, core.ColorGray)
			continue
		}

		color := enemyColors[e.Type]
		body := '#'
		switch e.State {
		case sim.EnemyDamaged:
			color = core.ColorBrightRed
		case sim.EnemyAttack:
			if now-e.LastAttackTime < 150 {
				color = core.ColorBrightWhite
			}
		case sim.EnemyRun:
			body = '%'
			if (now/200)%2 == 0 {
				body = '#'
			}
		}
		if e.Type == sim.EnemyHeavy {
			dst.SetColored(x-1, feet, '[', color)
			dst.SetColored(x+1, feet, ']', color)
		}
		dst.SetColored(x, feet-1, enemyHeads[e.Type], color)
		dst.SetColored(x, feet, body, color)

		// Health pip above wounded enemies.
		if e.Health < e.MaxHealth && e.MaxHealth > 0 {
			dst.DrawTextColored(x-1, feet-2, miniBar(e.Health, e.MaxHealth, 3), core.ColorRed)
		}
	}
}

func (g *Game) renderProjectiles(dst *core.Screen, v view, st *sim.State) {
	for _, p := range st.Projectiles {
		if !p.Active {
			continue
		}
		x, y := v.col(p.Pos.X), v.row(p.Pos.Y)-1
		switch {
		case p.Owner == sim.OwnerEnemy:
			dst.SetColored(x, y, EnemyShotChar, core.ColorRed)
		case p.Weapon == "shotgun":
			dst.SetColored(x, y, PelletChar, core.ColorOrange)
		case p.Damage >= 50:
			dst.SetColored(x, y, 'o', core.ColorBrightMagenta)
		default:
			dst.SetColored(x, y, BoltChar, core.ColorBrightYellow)
		}
	}
}

func (g *Game) renderPowerUps(dst *core.Screen, v view, st *sim.State) {
	for _, pu := range st.PowerUps {
		x, y := v.col(pu.Pos.X), v.row(pu.Pos.Y)
		if pu.Kind == sim.PowerUpEnergy {
			dst.SetColored(x, y, EnergyPickup, core.ColorBrightBlue)
		} else {
			dst.SetColored(x, y, HealthPickup, core.ColorBrightGreen)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, st *sim.State) {
	w := dst.Width()
	p := st.Player
	lvl := st.Level()

	title := fmt.Sprintf("L%d %s", lvl.ID, lvl.Name)
	dst.DrawTextColored(1, 0, title, core.ColorBrightMagenta)
	wave := fmt.Sprintf("Wave %d/%d", st.CurrentWave, lvl.MaxWave)
	dst.DrawTextColored(w/2-len(wave)/2, 0, wave, core.ColorBrightWhite)
	score := fmt.Sprintf("Score %d  Hi %d", st.Score, core.Max(st.HighScore, st.Score))
	dst.DrawTextColored(w-len(score)-1, 0, score, core.ColorBrightYellow)

	hpColor := core.ColorBrightGreen
	switch {
	case g.flash > 0:
		hpColor = core.ColorBrightRed
	case p.Health*4 <= p.MaxHealth:
		hpColor = core.ColorRed
	}
	dst.DrawTextColored(1, 1, "HP", core.ColorWhite)
	dst.DrawTextColored(4, 1, miniBar(p.Health, p.MaxHealth, 10), hpColor)
	dst.DrawTextColored(15, 1, "EN", core.ColorWhite)
	dst.DrawTextColored(18, 1, miniBar(int(p.Energy), int(p.MaxEnergy), 8), core.ColorBrightBlue)

	wpn := g.currentWeapon(st)
	label := wpn.Name
	if last := lastFired(p); !wpn.Ready(last, st.Now()) {
		left := float64(wpn.Cooldown-(st.Now()-last)) / 1000
		label = fmt.Sprintf("%s %.1fs", wpn.Name, left)
	}
	dst.DrawTextColored(28, 1, label, core.ColorOrange)

	prog := fmt.Sprintf("%s %d%%", miniBar(st.Wave.Defeated, st.Wave.Spawned, 6), int(st.WaveProgress()*100))
	dst.DrawTextColored(w-len([]rune(prog))-1, 1, prog, core.ColorCyan)

	dst.DrawHLine(0, hudRows-1, w, '─')
}

func (g *Game) renderWaveBanner(dst *core.Screen, st *sim.State) {
	now := st.Now()
	var msg string
	switch {
	case st.Wave.FirstPending:
		msg = fmt.Sprintf("GET READY  %.1f", float64(st.Wave.FirstAt-now)/1000)
	case st.Wave.Countdown:
		msg = fmt.Sprintf("WAVE %d INCOMING  %.1f", st.CurrentWave+1, float64(st.Wave.CountdownEnd-now)/1000)
	default:
		return
	}
	dst.DrawTextColored(dst.Width()/2-len(msg)/2, hudRows+1, msg, core.ColorBrightRed)
}

func (g *Game) renderMenu(dst *core.Screen, st *sim.State) {
	w, h := dst.Width(), dst.Height()
	title := "N E O N   B R A W L E R"
	dst.DrawTextColored(w/2-len(title)/2, 2, title, core.ColorBrightMagenta)

	y := 5
	for _, l := range st.Levels {
		line := fmt.Sprintf("  %d. %-16s %d waves", l.ID, l.Name, l.MaxWave)
		color := core.ColorWhite
		switch {
		case !l.Unlocked:
			line = fmt.Sprintf("  %d. %-16s locked", l.ID, l.Name)
			color = core.ColorGray
		case l.ID == st.CurrentLevel:
			line = "> " + line[2:]
			color = core.ColorBrightCyan
		}
		if l.Completed {
			line += "  ✓"
		}
		dst.DrawTextColored(w/2-16, y, line, color)
		y++
	}

	if st.HighScore > 0 {
		hi := fmt.Sprintf("High score: %d", st.HighScore)
		dst.DrawTextColored(w/2-len(hi)/2, y+1, hi, core.ColorBrightYellow)
	}

	help := "←/→ select  Enter play  Q quit"
	dst.DrawTextColored(w/2-len([]rune(help))/2, h-2, help, core.ColorGray)
}

func (g *Game) currentWeapon(st *sim.State) sim.Weapon {
	ws := g.driver.Config().Weapons
	if st.Player.Weapon < 0 || st.Player.Weapon >= len(ws) {
		return sim.Weapon{}
	}
	return ws[st.Player.Weapon]
}

func lastFired(p sim.Player) int64 {
	if p.Weapon < 0 || p.Weapon >= len(p.LastFired) {
		return 0
	}
	return p.LastFired[p.Weapon]
}

// miniBar renders value/max as a fixed-width bar.
func miniBar(value, max, width int) string {
	if max <= 0 {
		return strings.Repeat(string(BarEmpty), width)
	}
	filled := core.Clamp(value*width/max, 0, width)
	if value > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat(string(BarFull), filled) + strings.Repeat(string(BarEmpty), width-filled)
}

// drawPanel draws a boxed message in the middle of the screen.
func drawPanel(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	width += 4
	height := len(lines) + 2
	x := (dst.Width() - width) / 2
	y := (dst.Height() - height) / 2

	r := core.NewRect(x, y, width, height)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, l := range lines {
		lx := x + (width-len([]rune(l)))/2
		dst.DrawTextColored(lx, y+1+i, l, c)
	}
}
