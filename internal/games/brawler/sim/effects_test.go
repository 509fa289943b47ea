package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectQueueOrdersByTime(t *testing.T) {
	var q EffectQueue
	q.Schedule(Effect{FireAt: 300, Token: 1, Kind: EffectSpawnWave})
	q.Schedule(Effect{FireAt: 100, Token: 1, Kind: EffectRevertAnim, Anim: AnimAttack})
	q.Schedule(Effect{FireAt: 100, Token: 1, Kind: EffectEndInvulnerable})
	require.Equal(t, 3, q.Len())

	due := q.Due(100, 1)
	require.Len(t, due, 2)
	assert.Equal(t, EffectRevertAnim, due[0].Kind)
	assert.Equal(t, EffectEndInvulnerable, due[1].Kind)
	assert.Equal(t, 1, q.Len())

	assert.Empty(t, q.Due(299, 1))
	assert.Len(t, q.Due(300, 1), 1)
	assert.Zero(t, q.Len())
}

func TestEffectQueueDropsStaleTokens(t *testing.T) {
	var q EffectQueue
	q.Schedule(Effect{FireAt: 10, Token: 1, Kind: EffectSpawnWave})
	q.Schedule(Effect{FireAt: 10, Token: 2, Kind: EffectRevertAnim})

	assert.True(t, q.Pending(EffectSpawnWave, 1))
	assert.False(t, q.Pending(EffectSpawnWave, 2))

	due := q.Due(10, 2)
	require.Len(t, due, 1)
	assert.Equal(t, EffectRevertAnim, due[0].Kind)
	assert.Zero(t, q.Len())
}

func TestEffectQueueCancel(t *testing.T) {
	var q EffectQueue
	q.Schedule(Effect{FireAt: 10})
	q.Schedule(Effect{FireAt: 20})

	assert.Equal(t, 2, q.Cancel())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Due(100, 0))
}
