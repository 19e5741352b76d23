package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqIntn returns the scripted values modulo n.
type seqIntn struct {
	values []int
	i      int
}

func (s *seqIntn) Intn(n int) int {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v % n
}

func TestNew_SpawnsAwayFromStart(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		m := New(DefaultSettings(), rng)
		mons := m.Monsters()
		require.Len(t, mons, 3)
		for _, mon := range mons {
			far := abs(mon.Position.X-5) > 1 || abs(mon.Position.Y-5) > 1
			assert.True(t, far, "monster spawned next to start: %+v", mon.Position)
			assert.True(t, mon.Position.X >= 0 && mon.Position.X < 10)
			assert.True(t, mon.Position.Y >= 0 && mon.Position.Y < 10)
			assert.Contains(t, Sprites, mon.Sprite)
		}
		assert.Equal(t, Position{X: 5, Y: 5}, m.Player())
	}
}

func TestMove_BoundsAndAggro(t *testing.T) {
	// first candidate (5,5) is rejected, then monster at (0,0) sprite 0,
	// (9,9) sprite 1, (0,9) sprite 0
	rng := &seqIntn{values: []int{5, 5, 0, 0, 0, 9, 9, 1, 0, 9, 0}}
	m := New(DefaultSettings(), rng)
	mons := m.Monsters()
	require.Len(t, mons, 3)
	assert.Equal(t, Position{X: 0, Y: 0}, mons[0].Position)
	assert.Equal(t, Position{X: 9, Y: 9}, mons[1].Position)

	moved, met := m.Move(Left)
	assert.True(t, moved)
	assert.Nil(t, met)
	moved, met = m.Move(Up)
	assert.True(t, moved)
	assert.Nil(t, met)
	for _, d := range []Direction{Left, Up, Left} {
		_, met = m.Move(d)
		require.Nil(t, met)
	}
	assert.Equal(t, Position{X: 2, Y: 3}, m.Player())
	moved, met = m.Move(Up)
	require.True(t, moved)
	require.NotNil(t, met)
	assert.Equal(t, mons[0].ID, met.ID)
	assert.Equal(t, Position{X: 2, Y: 2}, m.Player())
}

func TestMove_IgnoresOutOfBounds(t *testing.T) {
	s := DefaultSettings()
	s.MonsterCount = 0
	s.Start = Position{X: 0, Y: 0}
	m := New(s, rand.New(rand.NewSource(1)))
	moved, met := m.Move(Left)
	assert.False(t, moved)
	assert.Nil(t, met)
	moved, _ = m.Move(Up)
	assert.False(t, moved)
	assert.Equal(t, Position{}, m.Player())
	moved, _ = m.Move(Down)
	assert.True(t, moved)
}

func TestRemove(t *testing.T) {
	m := New(DefaultSettings(), rand.New(rand.NewSource(9)))
	id := m.Monsters()[1].ID
	assert.True(t, m.Remove(id))
	assert.False(t, m.Remove(id))
	assert.Len(t, m.Monsters(), 2)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection(" UP ")
	require.NoError(t, err)
	assert.Equal(t, Up, d)
	_, err = ParseDirection("north")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
