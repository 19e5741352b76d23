package engine

import (
	"errors"

	"github.com/ericogr/giera/internal/game"
)

var (
	ErrEncounterOver = errors.New("encounter is over")
	ErrUnknownAction = errors.New("unknown action")
)

// State is the lifecycle position of an encounter.
type State string

const (
	StateActive  State = "active"
	StateVictory State = "victory"
	StateDefeat  State = "defeat"
	StateFled    State = "fled"
)

// Terminal reports whether no further action can be resolved.
func (s State) Terminal() bool { return s != StateActive }

// ActionKind is a player's combat choice.
type ActionKind string

const (
	ActionMelee  ActionKind = "melee"
	ActionMagic  ActionKind = "magic"
	ActionRanged ActionKind = "ranged"
)

// Valid reports whether k is a resolvable action.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionMelee, ActionMagic, ActionRanged:
		return true
	}
	return false
}

// CurrencyStore persists the player's gold. SetCurrency must not block on
// the write; failures are the implementation's to log.
type CurrencyStore interface {
	SetCurrency(gold int)
}

// ScoreReporter records finished runs remotely. Both calls must return
// without waiting for the write.
type ScoreReporter interface {
	SaveScore(gold int, stats game.CharacterStats)
	SaveHighScore(gold int, stats game.CharacterStats)
}

// Deps are the collaborators of an encounter. Nil fields fall back to a
// time-seeded source and no-op gateways.
type Deps struct {
	Source   Source
	Currency CurrencyStore
	Scores   ScoreReporter
}

// Snapshot is the read-only view of an encounter after a call. Health
// values are clamped for display.
type Snapshot struct {
	State            State  `json:"state"`
	PlayerHealth     int    `json:"player_health"`
	PlayerMaxHealth  int    `json:"player_max_health"`
	MonsterHealth    int    `json:"monster_health"`
	MonsterMaxHealth int    `json:"monster_max_health"`
	CooldownCounter  int    `json:"cooldown_counter"`
	MagicReady       bool   `json:"magic_ready"`
	LastMessage      string `json:"last_message"`
}

// Turn describes what one ResolveAction call did.
type Turn struct {
	Action        ActionKind `json:"action"`
	Rejected      bool       `json:"rejected"`
	PlayerDamage  int        `json:"player_damage"`
	MonsterActed  bool       `json:"monster_acted"`
	MonsterDamage int        `json:"monster_damage"`
	Snapshot      Snapshot   `json:"snapshot"`
}

// Encounter resolves one fight between the player and a monster. It is
// not safe for concurrent use; callers serialize actions.
type Encounter struct {
	stats    *game.CharacterStats
	src      Source
	currency CurrencyStore
	scores   ScoreReporter

	playerHealth     int
	monsterHealth    int
	monsterMaxHealth int
	cooldown         int
	state            State
	log              actionLog
	lastMessage      string
}

// NewEncounter starts a fight scaled to the current gold in stats.
func NewEncounter(stats *game.CharacterStats, deps Deps) *Encounter {
	if deps.Source == nil {
		deps.Source = NewSource()
	}
	if deps.Currency == nil {
		deps.Currency = nopCurrency{}
	}
	if deps.Scores == nil {
		deps.Scores = nopScores{}
	}
	maxHP := MonsterMaxHealth(stats.Gold)
	return &Encounter{
		stats:            stats,
		src:              deps.Source,
		currency:         deps.Currency,
		scores:           deps.Scores,
		playerHealth:     PlayerMaxHealth,
		monsterHealth:    maxHP,
		monsterMaxHealth: maxHP,
		state:            StateActive,
	}
}

// State returns the current lifecycle state.
func (e *Encounter) State() State { return e.state }

// Snapshot returns the display view of the encounter.
func (e *Encounter) Snapshot() Snapshot {
	return Snapshot{
		State:            e.state,
		PlayerHealth:     clamp(e.playerHealth, 0, PlayerMaxHealth),
		PlayerMaxHealth:  PlayerMaxHealth,
		MonsterHealth:    clamp(e.monsterHealth, 0, e.monsterMaxHealth),
		MonsterMaxHealth: e.monsterMaxHealth,
		CooldownCounter:  e.cooldown,
		MagicReady:       e.cooldown >= MagicCooldownTurns,
		LastMessage:      e.lastMessage,
	}
}

// ResolveAction applies the player's action, the monster's counter-turn
// and the end-of-fight check, in that order.
func (e *Encounter) ResolveAction(kind ActionKind) (Turn, error) {
	if !kind.Valid() {
		return Turn{}, ErrUnknownAction
	}
	if e.state.Terminal() {
		return Turn{}, ErrEncounterOver
	}
	turn := Turn{Action: kind}
	e.log.reset()

	if kind == ActionMagic && e.cooldown < MagicCooldownTurns {
		// guarded: nothing changes but the message
		e.lastMessage = cooldownMessage(MagicCooldownTurns - e.cooldown)
		turn.Rejected = true
		turn.Snapshot = e.Snapshot()
		return turn, nil
	}

	dmg := playerDamage(kind, *e.stats, e.src)
	e.monsterHealth -= dmg
	turn.PlayerDamage = dmg
	e.log.add("%s", strikeMessage(kind, dmg))
	if kind == ActionMagic {
		e.cooldown = 0
	}

	if e.monsterHealth > 0 {
		mdmg := rollMonsterDamage(e.src)
		e.playerHealth -= mdmg
		e.cooldown++
		turn.MonsterActed = true
		turn.MonsterDamage = mdmg
		e.log.add("The monster dealt %d damage!", mdmg)
	}

	e.checkEnd()
	e.lastMessage = e.log.joined()
	turn.Snapshot = e.Snapshot()
	return turn, nil
}

// ResolveFlee abandons the fight without any persistence.
func (e *Encounter) ResolveFlee() (Snapshot, error) {
	if e.state.Terminal() {
		return e.Snapshot(), ErrEncounterOver
	}
	e.state = StateFled
	e.lastMessage = "You fled from the monster."
	return e.Snapshot(), nil
}

// checkEnd decides victory before defeat and hands the reports to the
// gateways.
func (e *Encounter) checkEnd() {
	switch {
	case e.monsterHealth <= 0:
		e.state = StateVictory
		e.stats.Gold += VictoryReward
		e.log.add("The monster is defeated! +%d gold", VictoryReward)
		e.currency.SetCurrency(e.stats.Gold)
		e.scores.SaveScore(e.stats.Gold, *e.stats)
	case e.playerHealth <= 0:
		e.state = StateDefeat
		e.log.add("You have been defeated!")
		e.scores.SaveHighScore(e.stats.Gold, *e.stats)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type nopCurrency struct{}

func (nopCurrency) SetCurrency(int) {}

type nopScores struct{}

func (nopScores) SaveScore(int, game.CharacterStats)     {}
func (nopScores) SaveHighScore(int, game.CharacterStats) {}
