package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreStartsInMenu(t *testing.T) {
	s := NewStore(DefaultConfig())
	st := s.Snapshot()

	assert.Equal(t, StatusMenu, st.Status)
	assert.Equal(t, 1, st.CurrentLevel)
	require.Len(t, st.Levels, 3)
	assert.True(t, st.Levels[0].Unlocked)
	assert.False(t, st.Levels[1].Unlocked)
	assert.Equal(t, 100, st.Player.Health)
}

func TestInvalidTransitionsAreNoops(t *testing.T) {
	s := NewStore(DefaultConfig())
	epoch := s.Snapshot().Epoch

	assert.False(t, s.PauseGame())
	assert.False(t, s.ResumeGame())
	assert.False(t, s.TogglePause())
	assert.False(t, s.NextLevel())
	assert.False(t, s.ResetGame())
	assert.False(t, s.SelectLevel(2), "locked level")
	assert.False(t, s.SelectLevel(9))
	assert.False(t, s.MovePlayer(MoveRight))
	assert.False(t, s.TriggerAttack())

	st := s.Snapshot()
	assert.Equal(t, StatusMenu, st.Status)
	assert.Equal(t, epoch, st.Epoch)

	require.True(t, s.StartGame())
	assert.False(t, s.StartGame(), "already playing")
	assert.False(t, s.SelectLevel(1), "not in menu")
}

func TestStatusChangesBumpEpoch(t *testing.T) {
	s := NewStore(DefaultConfig())
	e0 := s.Snapshot().Epoch

	require.True(t, s.StartGame())
	e1 := s.Snapshot().Epoch
	assert.Greater(t, e1, e0)

	require.True(t, s.PauseGame())
	e2 := s.Snapshot().Epoch
	assert.Greater(t, e2, e1)

	require.True(t, s.ResumeGame())
	assert.Greater(t, s.Snapshot().Epoch, e2)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s := NewStore(DefaultConfig())
	require.True(t, s.StartGame())

	before := s.Snapshot()
	require.True(t, s.MovePlayer(MoveLeft))
	require.True(t, s.TriggerAttack())

	assert.Equal(t, MoveNone, before.Player.MoveDir)
	assert.False(t, before.Player.AttackQueued)
	assert.Equal(t, MoveLeft, s.Snapshot().Player.MoveDir)
	assert.True(t, s.Snapshot().Player.AttackQueued)
}

func TestHighScoreIsMonotonic(t *testing.T) {
	s := NewStore(DefaultConfig())
	s.SetHighScore(500)
	s.SetHighScore(200)
	assert.Equal(t, 500, s.Snapshot().HighScore)
}

func TestResetCommitsHighScore(t *testing.T) {
	s := NewStore(DefaultConfig())
	require.True(t, s.StartGame())
	s.update(func(st *State) bool {
		st.Score = 1200
		return true
	})

	require.True(t, s.ResetGame())
	st := s.Snapshot()
	assert.Equal(t, StatusMenu, st.Status)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 1200, st.HighScore)
}

func TestStartGameResetsRun(t *testing.T) {
	s := NewStore(DefaultConfig())
	require.True(t, s.StartGame())
	s.update(func(st *State) bool {
		st.Score = 300
		st.Player.Health = 10
		st.Enemies = []Enemy{{ID: "x"}}
		gameOver(st)
		return true
	})
	require.Equal(t, StatusGameOver, s.Snapshot().Status)
	assert.Equal(t, 300, s.Snapshot().HighScore)

	require.True(t, s.StartGame())
	st := s.Snapshot()
	assert.Equal(t, StatusPlaying, st.Status)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 100, st.Player.Health)
	assert.Empty(t, st.Enemies)
	assert.True(t, st.Wave.FirstPending)
	assert.Equal(t, 1, st.CurrentWave)
}

func TestUnlockThrough(t *testing.T) {
	s := NewStore(DefaultConfig())
	require.True(t, s.UnlockThrough(2))
	assert.True(t, s.Snapshot().Levels[1].Unlocked)
	assert.False(t, s.Snapshot().Levels[2].Unlocked)
	assert.False(t, s.UnlockThrough(2), "nothing new")
	assert.True(t, s.SelectLevel(2))
}
