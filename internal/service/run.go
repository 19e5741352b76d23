package service

import (
	"fmt"

	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/world"
)

// StartRun begins a fresh run for the chosen character, replacing any run
// in progress. Stats start at zero. Gold carries over from the owner's
// previous run in this process, or is loaded from the store.
func (g *Game) StartRun(id Identity, character string) (RunView, error) {
	class, ok := game.FindCharacter(g.opts.Characters, character)
	if !ok {
		return RunView{}, ErrUnknownCharacter
	}
	var out RunView
	var gold int
	err := g.sessions.open(id.Owner, func(sess *session) error {
		gold = sess.gold
		if !sess.goldKnown {
			stored, _, err := g.repo.GetPreferenceInt(id.Owner, constants.PrefKeyGold)
			if err != nil {
				return fmt.Errorf("load gold: %w", err)
			}
			gold = stored
		}
		rng := g.opts.NewRand()
		run := &Run{Map: world.New(g.opts.Map, rng)}
		run.Stats.Reset(class)
		run.Stats.Gold = gold
		sess.run = run
		out = run.view()
		return nil
	})
	if err != nil {
		return RunView{}, err
	}
	logging.Info("run started", logging.Fields{constants.LogFieldOwner: id.Owner, constants.LogFieldGold: gold, "character": class})
	return out, nil
}

// GetRun returns the current run.
func (g *Game) GetRun(id Identity) (RunView, error) {
	var out RunView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		if sess.run == nil {
			return ErrNoRun
		}
		out = sess.run.view()
		return nil
	})
	return out, err
}

// SaveAndExit reports the high score and the run history entry, then
// ends the run.
func (g *Game) SaveAndExit(id Identity) (game.CharacterStats, error) {
	var stats game.CharacterStats
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run := sess.run
		switch {
		case run == nil:
			return ErrNoRun
		case run.Defeated:
			return ErrRunDefeated
		case run.Encounter != nil:
			return ErrEncounterActive
		}
		stats = run.Stats
		sc := g.scores(id)
		sc.SaveHighScore(stats.Gold, stats)
		sc.SaveScore(stats.Gold, stats)
		sess.run = nil
		return nil
	})
	return stats, err
}

// AcknowledgeDefeat closes a defeated run. The high score was already
// reported when the encounter was lost.
func (g *Game) AcknowledgeDefeat(id Identity) error {
	return g.sessions.with(id.Owner, func(sess *session) error {
		if sess.run == nil {
			return ErrNoRun
		}
		if !sess.run.Defeated {
			return ErrRunNotDefeated
		}
		sess.run = nil
		return nil
	})
}
