package service

import (
	"github.com/ericogr/giera/internal/constants"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/logging"
)

// Shop returns the upgrade offer for the current run.
func (g *Game) Shop(id Identity) (ShopView, error) {
	var out ShopView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		out = ShopView{Stats: run.Stats, Cost: g.opts.UpgradeCost, CanAfford: run.Stats.Gold >= g.opts.UpgradeCost}
		return nil
	})
	return out, err
}

// Upgrade buys one point of stat. The new gold is persisted and the run
// state is added to the score history.
func (g *Game) Upgrade(id Identity, stat game.Stat) (ShopView, error) {
	if !stat.Valid() {
		return ShopView{}, ErrInvalidStat
	}
	var out ShopView
	err := g.sessions.with(id.Owner, func(sess *session) error {
		run, err := activeRun(sess)
		if err != nil {
			return err
		}
		if run.Encounter != nil {
			return ErrEncounterActive
		}
		cost := g.opts.UpgradeCost
		if run.Stats.Gold < cost {
			return ErrInsufficientGold
		}
		run.Stats.Increment(stat)
		run.Stats.Gold -= cost
		g.currency(id).SetCurrency(run.Stats.Gold)
		g.scores(id).SaveScore(run.Stats.Gold, run.Stats)
		logging.Info("stat upgraded", logging.Fields{constants.LogFieldOwner: id.Owner, constants.LogFieldStat: string(stat), constants.LogFieldGold: run.Stats.Gold})
		out = ShopView{Stats: run.Stats, Cost: cost, CanAfford: run.Stats.Gold >= cost}
		return nil
	})
	return out, err
}
