package brawler

// Snapshot captures the observable game state for determinism testing.
type Snapshot struct {
	ElapsedMS   int64
	Status      string
	Level       int
	Wave        int
	Score       int
	HighScore   int
	Health      int
	Energy      float64
	PlayerX     float64
	Facing      string
	Weapon      int
	Enemies     int
	Alive       int
	Projectiles int
	PowerUps    int
	Kills       int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.driver.Snapshot()
	return Snapshot{
		ElapsedMS:   st.Now(),
		Status:      st.Status.String(),
		Level:       st.CurrentLevel,
		Wave:        st.CurrentWave,
		Score:       st.Score,
		HighScore:   st.HighScore,
		Health:      st.Player.Health,
		Energy:      st.Player.Energy,
		PlayerX:     st.Player.Pos.X,
		Facing:      st.Player.Facing.String(),
		Weapon:      st.Player.Weapon,
		Enemies:     len(st.Enemies),
		Alive:       st.Alive(),
		Projectiles: len(st.Projectiles),
		PowerUps:    len(st.PowerUps),
		Kills:       g.kills,
	}
}
