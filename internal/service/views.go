package service

import (
	"github.com/ericogr/giera/internal/engine"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/world"
)

// EncounterView is an encounter snapshot plus what a client needs to
// label the action buttons.
type EncounterView struct {
	engine.Snapshot
	Monster     world.Monster `json:"monster"`
	MeleeDamage int           `json:"melee_damage"`
	MagicDamage int           `json:"magic_damage"`
	RangedMin   int           `json:"ranged_min"`
	RangedMax   int           `json:"ranged_max"`
}

// RunView is the full state of a run returned by every run operation.
type RunView struct {
	Stats         game.CharacterStats `json:"stats"`
	Defeated      bool                `json:"defeated"`
	MapSize       int                 `json:"map_size"`
	Player        world.Position      `json:"player"`
	Monsters      []world.Monster     `json:"monsters"`
	Encounter     *EncounterView      `json:"encounter,omitempty"`
	LastEncounter *EncounterView      `json:"last_encounter,omitempty"`
}

// ActionResult is returned after resolving a combat action.
type ActionResult struct {
	Turn engine.Turn `json:"turn"`
	Run  RunView     `json:"run"`
}

// ShopView lists the upgrade prices and the current stats.
type ShopView struct {
	Stats game.CharacterStats `json:"stats"`
	Cost  int                 `json:"cost"`
	// CanAfford is true when at least one upgrade can be bought.
	CanAfford bool `json:"can_afford"`
}

func encounterView(snap engine.Snapshot, mon world.Monster, stats game.CharacterStats) *EncounterView {
	lo, hi := engine.RangedDamageRange(stats)
	return &EncounterView{
		Snapshot:    snap,
		Monster:     mon,
		MeleeDamage: engine.MeleeDamage(stats),
		MagicDamage: engine.MagicDamage(stats),
		RangedMin:   lo,
		RangedMax:   hi,
	}
}

func (r *Run) view() RunView {
	v := RunView{
		Stats:         r.Stats,
		Defeated:      r.Defeated,
		MapSize:       r.Map.Size(),
		Player:        r.Map.Player(),
		Monsters:      r.Map.Monsters(),
		LastEncounter: r.Last,
	}
	if r.Encounter != nil {
		v.Encounter = encounterView(r.Encounter.Snapshot(), *r.Monster, r.Stats)
	}
	return v
}
