package gateway

import (
	"context"
	"time"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/logging"
)

// PreferenceStore is the key-value side of the repository.
type PreferenceStore interface {
	SetPreferenceInt(owner, key string, value int) error
}

// ScoreStore is the score side of the repository.
type ScoreStore interface {
	AddScore(rec *game.ScoreRecord) error
	SaveHighScoreIfGreater(hs *game.HighScore) (bool, error)
}

// Currency persists an owner's gold through the dispatcher.
type Currency struct {
	store PreferenceStore
	d     *Dispatcher
	owner string
}

func NewCurrency(store PreferenceStore, d *Dispatcher, owner string) *Currency {
	return &Currency{store: store, d: d, owner: owner}
}

// SetCurrency queues the write and returns immediately.
func (c *Currency) SetCurrency(gold int) {
	owner := c.owner
	c.d.Submit(owner, Task{
		Name:   "set_currency",
		Fields: logging.Fields{constants.LogFieldOwner: owner, constants.LogFieldGold: gold},
		Run: func(ctx context.Context) error {
			return c.store.SetPreferenceInt(owner, constants.PrefKeyGold, gold)
		},
	})
}

// Scores reports runs for a signed-in player. With an empty email every
// call is a no-op.
type Scores struct {
	store ScoreStore
	d     *Dispatcher
	email string
	now   func() time.Time
}

func NewScores(store ScoreStore, d *Dispatcher, email string) *Scores {
	return &Scores{store: store, d: d, email: email, now: time.Now}
}

// SaveScore appends the run to the player's history.
func (s *Scores) SaveScore(gold int, stats game.CharacterStats) {
	if s.email == "" {
		return
	}
	rec := game.NewScoreRecord(s.email, gold, stats, s.now())
	s.d.Submit(s.email, Task{
		Name:   "save_score",
		Fields: logging.Fields{constants.LogFieldEmail: s.email, constants.LogFieldGold: gold},
		Run: func(ctx context.Context) error {
			return s.store.AddScore(&rec)
		},
	})
}

// SaveHighScore replaces the stored high score only when gold beats it.
func (s *Scores) SaveHighScore(gold int, stats game.CharacterStats) {
	if s.email == "" {
		return
	}
	hs := game.NewHighScore(s.email, gold, stats, s.now())
	email := s.email
	s.d.Submit(email, Task{
		Name:   "save_high_score",
		Fields: logging.Fields{constants.LogFieldEmail: email, constants.LogFieldGold: gold},
		Run: func(ctx context.Context) error {
			written, err := s.store.SaveHighScoreIfGreater(&hs)
			if err != nil {
				return err
			}
			if written {
				logging.Info("new high score", logging.Fields{constants.LogFieldEmail: email, constants.LogFieldGold: gold})
			}
			return nil
		},
	})
}
