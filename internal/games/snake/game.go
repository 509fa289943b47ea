// Package snake is the Snake mini-game bundled with the brawler.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-brawler/internal/config"
	"github.com/vovakirdan/tui-brawler/internal/core"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a cell on the board.
type Point struct {
	X, Y int
}

// Visual characters for rendering
const (
	HeadChar = 'O'
	BodyChar = 'o'
	FoodChar = '*'
)

const hudHeight = 2

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game implements the Snake game.
type Game struct {
	cfg config.SnakeConfig
	rng *rand.Rand

	elapsed  time.Duration // total play time
	interval time.Duration // current move interval
	pending  time.Duration // time accumulated towards the next move
	moves    uint64

	score     int
	best      int
	foodEaten int

	// Snake state
	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for next move
	growing   bool      // If true, don't remove tail on next move
	food      Point

	// Board placement on screen
	mapOffsetX int
	mapOffsetY int
	screenW    int
	screenH    int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	sc, err := config.LoadSnake(configPath)
	if err != nil {
		sc = config.DefaultSnakeConfig()
	}
	config.ApplySnakePreset(&sc, difficultyPreset)
	if err := sc.Validate(); err != nil {
		sc = config.DefaultSnakeConfig()
		config.ApplySnakePreset(&sc, difficultyPreset)
	}
	g.cfg = sc

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.elapsed = 0
	g.pending = 0
	g.moves = 0
	g.interval = time.Duration(sc.Speed.InitialMS) * time.Millisecond
	g.score = 0
	g.foodEaten = 0
	g.gameOver = false
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	g.snake = []Point{{X: sc.Board.StartX, Y: sc.Board.StartY}}
	g.direction = DirRight
	g.nextDir = DirRight
	g.growing = false
	g.food = Point{X: sc.Board.FoodX, Y: sc.Board.FoodY}
}

// Resize re-centers the board for a new screen size.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height

	// Board plus its border and the HUD must fit.
	requiredW := g.cfg.Board.Width + 2
	requiredH := g.cfg.Board.Height + hudHeight + 2
	g.tooSmall = width < requiredW || height < requiredH
	g.mapOffsetX = (width - g.cfg.Board.Width) / 2
	g.mapOffsetY = hudHeight + 1
}

// SeedHighScore sets the best score shown in the HUD.
func (g *Game) SeedHighScore(score int) {
	g.best = max(g.best, score)
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood() {
	var emptyCells []Point
	for y := 0; y < g.cfg.Board.Height; y++ {
		for x := 0; x < g.cfg.Board.Width; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		// Board is full.
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step handles input and moves the snake once per elapsed interval.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Process direction input (buffer for next move)
	g.processInput(input)

	g.elapsed += input.Elapsed
	g.pending += input.Elapsed
	for g.pending >= g.interval && !g.gameOver {
		g.pending -= g.interval
		g.moveSnake()
	}

	return core.StepResult{State: g.State()}
}

// processInput handles direction changes.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	// Prevent instant reversal
	if !isOpposite(newDir, g.direction) {
		g.nextDir = newDir
	}
}

// isOpposite checks if two directions are opposite.
func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// moveSnake moves the snake one cell in the current direction.
func (g *Game) moveSnake() {
	if len(g.snake) == 0 {
		return
	}
	g.moves++

	// Apply buffered direction
	g.direction = g.nextDir

	head := g.snake[0]
	var newHead Point
	switch g.direction {
	case DirUp:
		newHead = Point{X: head.X, Y: head.Y - 1}
	case DirDown:
		newHead = Point{X: head.X, Y: head.Y + 1}
	case DirLeft:
		newHead = Point{X: head.X - 1, Y: head.Y}
	case DirRight:
		newHead = Point{X: head.X + 1, Y: head.Y}
	}

	// Check wall collision
	if newHead.X < 0 || newHead.X >= g.cfg.Board.Width ||
		newHead.Y < 0 || newHead.Y >= g.cfg.Board.Height {
		g.gameOver = true
		return
	}

	// Check self collision (excluding tail if not growing, since it will move)
	checkLen := len(g.snake)
	if !g.growing && checkLen > 0 {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score += g.cfg.Scoring.PerFood
		g.best = max(g.best, g.score)
		g.foodEaten++
		g.growing = true // Don't remove tail this move
		g.speedUp()
		g.spawnFood()
	}

	// Remove tail unless growing
	if g.growing {
		g.growing = false
	} else if len(g.snake) > 1 {
		g.snake = g.snake[:len(g.snake)-1]
	}
}

// speedUp shortens the move interval after a food, down to the minimum.
func (g *Game) speedUp() {
	minInterval := time.Duration(g.cfg.Speed.MinMS) * time.Millisecond
	if g.interval > minInterval {
		g.interval = max(minInterval, g.interval-time.Duration(g.cfg.Speed.StepMS)*time.Millisecond)
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderSnake(dst)

	if g.food.X >= 0 && g.food.Y >= 0 {
		dst.SetColored(g.mapOffsetX+g.food.X, g.mapOffsetY+g.food.Y, FoodChar, core.ColorBrightRed)
	}

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R to restart", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Length: %d  Speed: %dms",
		g.score, g.best, len(g.snake), g.interval.Milliseconds())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightGreen)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderBoard draws the border around the playfield.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(core.NewRect(g.mapOffsetX-1, g.mapOffsetY-1, g.cfg.Board.Width+2, g.cfg.Board.Height+2))
}

// renderSnake draws the snake.
func (g *Game) renderSnake(dst *core.Screen) {
	for i, seg := range g.snake {
		sx := g.mapOffsetX + seg.X
		sy := g.mapOffsetY + seg.Y
		if i == 0 {
			dst.SetColored(sx, sy, HeadChar, core.ColorBrightGreen)
		} else {
			dst.SetColored(sx, sy, BodyChar, core.ColorGreen)
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	r := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawText((w-len(line1))/2, r.Y+1, line1)
	dst.DrawText((w-len(line2))/2, r.Y+3, line2)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Idle:     g.gameOver || g.paused || g.tooSmall,
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
