package engine

import "github.com/ericogr/giera/internal/game"

const (
	PlayerMaxHealth      = 20
	MonsterBaseHealth    = 20
	MonsterGoldStep      = 20
	MonsterHealthPerStep = 10
	MagicCooldownTurns   = 3
	VictoryReward        = 1

	meleeBaseDamage = 1
	magicBaseDamage = 2
	rangedMinBase   = 1
	rangedMaxBase   = 3
)

// MonsterMaxHealth scales the monster with the player's gold: +10 HP for
// every full 20 gold.
func MonsterMaxHealth(gold int) int {
	if gold < 0 {
		gold = 0
	}
	return MonsterBaseHealth + (gold/MonsterGoldStep)*MonsterHealthPerStep
}

// MeleeDamage is the fixed sword damage.
func MeleeDamage(stats game.CharacterStats) int { return meleeBaseDamage + stats.Strength }

// MagicDamage is the fixed spell damage.
func MagicDamage(stats game.CharacterStats) int { return magicBaseDamage + stats.Intelligence }

// RangedDamageRange is the inclusive bow damage range shown to the player.
func RangedDamageRange(stats game.CharacterStats) (int, int) {
	return rangedMinBase + stats.Dexterity, rangedMaxBase + stats.Dexterity
}

// playerDamage computes the damage of an action. Only ranged attacks
// consume randomness.
func playerDamage(kind ActionKind, stats game.CharacterStats, src Source) int {
	switch kind {
	case ActionMelee:
		return MeleeDamage(stats)
	case ActionMagic:
		return MagicDamage(stats)
	case ActionRanged:
		return rollRangedBase(src) + stats.Dexterity
	}
	return 0
}
