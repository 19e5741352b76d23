package service

import (
	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/engine"
	"github.com/ericogr/giera/internal/logging"
	"github.com/ericogr/giera/internal/world"
)

// Move steps the player on the map. Reaching a monster starts an
// encounter scaled to the player's current gold.
func (g *Game) Move(id Identity, dir world.Direction) (RunView, error) {
	var out RunView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		if run.Encounter != nil {
			return ErrEncounterActive
		}
		_, met := run.Map.Move(dir)
		if met != nil {
			run.Monster = met
			run.Encounter = engine.NewEncounter(&run.Stats, engine.Deps{
				Source:   g.opts.NewRand(),
				Currency: g.currency(id),
				Scores:   g.scores(id),
			})
			run.Last = nil
		}
		out = run.view()
		return nil
	})
	return out, err
}

// Encounter returns the active encounter.
func (g *Game) Encounter(id Identity) (EncounterView, error) {
	var out EncounterView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		if run.Encounter == nil {
			return ErrNoEncounter
		}
		out = *encounterView(run.Encounter.Snapshot(), *run.Monster, run.Stats)
		return nil
	})
	return out, err
}

// Act resolves one combat action. When the encounter ends the run goes
// back to the map: a beaten monster leaves it, a lost fight marks the run
// defeated.
func (g *Game) Act(id Identity, kind engine.ActionKind) (ActionResult, error) {
	if !kind.Valid() {
		return ActionResult{}, ErrInvalidAction
	}
	var out ActionResult
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		if run.Encounter == nil {
			return ErrNoEncounter
		}
		turn, err := run.Encounter.ResolveAction(kind)
		if err != nil {
			return err
		}
		out.Turn = turn
		switch turn.Snapshot.State {
		case engine.StateVictory:
			run.Map.Remove(run.Monster.ID)
			g.finishEncounter(id, run, turn.Snapshot)
		case engine.StateDefeat:
			run.Defeated = true
			g.finishEncounter(id, run, turn.Snapshot)
		}
		out.Run = run.view()
		return nil
	})
	return out, err
}

// Flee abandons the encounter. Nothing is persisted and the player
// returns to a newly generated map.
func (g *Game) Flee(id Identity) (RunView, error) {
	var out RunView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		if run.Encounter == nil {
			return ErrNoEncounter
		}
		snap, err := run.Encounter.ResolveFlee()
		if err != nil {
			return err
		}
		g.finishEncounter(id, run, snap)
		run.Map = world.New(g.opts.Map, g.opts.NewRand())
		out = run.view()
		return nil
	})
	return out, err
}

func (g *Game) finishEncounter(id Identity, run *Run, snap engine.Snapshot) {
	run.Last = encounterView(snap, *run.Monster, run.Stats)
	run.Encounter = nil
	run.Monster = nil
	logging.Info("encounter finished", logging.Fields{
		constants.LogFieldOwner:   id.Owner,
		constants.LogFieldOutcome: string(snap.State),
		constants.LogFieldGold:    run.Stats.Gold,
	})
}

func activeRun(sess *session) (*Run, error) {
	if sess.run == nil {
		return nil, ErrNoRun
	}
	if sess.run.Defeated {
		return nil, ErrRunDefeated
	}
	return sess.run, nil
}
