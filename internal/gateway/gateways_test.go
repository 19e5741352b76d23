package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mu       sync.Mutex
	prefs    map[string]int
	history  []game.ScoreRecord
	high     map[string]game.HighScore
	fail     bool
	blockFor time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{prefs: map[string]int{}, high: map[string]game.HighScore{}}
}

func (m *mockStore) SetPreferenceInt(owner, key string, value int) error {
	time.Sleep(m.blockFor)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("disk full")
	}
	m.prefs[owner+"/"+key] = value
	return nil
}

func (m *mockStore) AddScore(rec *game.ScoreRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *rec)
	return nil
}

func (m *mockStore) SaveHighScoreIfGreater(hs *game.HighScore) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.high[hs.Email]; ok && cur.Gold >= hs.Gold {
		return false, nil
	}
	m.high[hs.Email] = *hs
	return true, nil
}

func TestCurrency_WritesInOrder(t *testing.T) {
	store := newMockStore()
	d := NewDispatcher(4, 64)
	d.Start(context.Background())
	c := NewCurrency(store, d, "a@e.com")
	for i := 1; i <= 50; i++ {
		c.SetCurrency(i)
	}
	require.NoError(t, d.Close())
	assert.Equal(t, 50, store.prefs["a@e.com/"+constants.PrefKeyGold])
}

func TestCurrency_DoesNotBlockCaller(t *testing.T) {
	store := newMockStore()
	store.blockFor = 200 * time.Millisecond
	d := NewDispatcher(1, 8)
	d.Start(context.Background())
	c := NewCurrency(store, d, "guest:1")

	start := time.Now()
	c.SetCurrency(3)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	require.NoError(t, d.Close())
	assert.Equal(t, 3, store.prefs["guest:1/"+constants.PrefKeyGold])
}

func TestCurrency_FailureIsSwallowed(t *testing.T) {
	store := newMockStore()
	store.fail = true
	d := NewDispatcher(1, 8)
	d.Start(context.Background())
	NewCurrency(store, d, "a@e.com").SetCurrency(1)
	assert.NoError(t, d.Close())
	assert.Empty(t, store.prefs)
}

func TestScores_SkipWithoutIdentity(t *testing.T) {
	store := newMockStore()
	d := NewDispatcher(1, 8)
	d.Start(context.Background())
	s := NewScores(store, d, "")
	s.SaveScore(5, game.CharacterStats{})
	s.SaveHighScore(5, game.CharacterStats{})
	require.NoError(t, d.Close())
	assert.Empty(t, store.history)
	assert.Empty(t, store.high)
}

func TestScores_HighScoreOnlyWhenGreater(t *testing.T) {
	store := newMockStore()
	d := NewDispatcher(2, 8)
	d.Start(context.Background())
	s := NewScores(store, d, "a@e.com")
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	s.SaveHighScore(7, game.CharacterStats{Strength: 1})
	s.SaveHighScore(3, game.CharacterStats{Strength: 2})
	s.SaveScore(3, game.CharacterStats{Strength: 2})
	require.NoError(t, d.Close())

	assert.Equal(t, 7, store.high["a@e.com"].Gold)
	assert.Equal(t, 1, store.high["a@e.com"].Strength)
	require.Len(t, store.history, 1)
	assert.Equal(t, "01-05-2026 12:00:00", store.history[0].Date)
}

func TestDispatcher_DropsWhenFullOrClosed(t *testing.T) {
	d := NewDispatcher(1, 1)
	// not started: the single slot fills and the next submit is dropped
	noop := Task{Name: "noop", Run: func(context.Context) error { return nil }}
	assert.True(t, d.Submit("k", noop))
	assert.False(t, d.Submit("k", noop))
	require.NoError(t, d.Close())
	assert.False(t, d.Submit("k", noop))
}
