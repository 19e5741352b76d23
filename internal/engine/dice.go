package engine

import (
	"math/rand"
	"time"
)

// Source yields uniform values in [0, 1). *rand.Rand satisfies it.
// An encounter owns its source; implementations need not be safe for
// concurrent use.
type Source interface {
	Float64() float64
}

// NewSource returns a time-seeded source for live encounters.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededSource returns a reproducible source.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// percent draws a value in [0, 100).
func percent(src Source) float64 {
	return src.Float64() * 100
}

// rollRangedBase draws the bow's base damage: 3 (20%), 2 (40%), 1 (40%).
func rollRangedBase(src Source) int {
	chance := percent(src)
	switch {
	case chance < 20:
		return 3
	case chance < 60:
		return 2
	default:
		return 1
	}
}

// rollMonsterDamage draws retaliation damage: 1 (60%), 2 (40%).
func rollMonsterDamage(src Source) int {
	if percent(src) < 60 {
		return 1
	}
	return 2
}
