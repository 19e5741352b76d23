package game

import (
	"time"

	"gorm.io/gorm"
)

// CharacterStats are the player's upgradable damage modifiers and gold.
// A single value is owned by one run and passed by pointer to the combat
// resolver and to the upgrade shop; nothing else mutates it.
type CharacterStats struct {
	Character    string `json:"character"`
	Strength     int    `json:"strength"`
	Intelligence int    `json:"intelligence"`
	Dexterity    int    `json:"dexterity"`
	Gold         int    `json:"gold"`
}

// Stat names one of the upgradable modifiers.
type Stat string

const (
	StatStrength     Stat = "strength"
	StatIntelligence Stat = "intelligence"
	StatDexterity    Stat = "dexterity"
)

// Valid reports whether s is one of the upgradable stats.
func (s Stat) Valid() bool {
	switch s {
	case StatStrength, StatIntelligence, StatDexterity:
		return true
	}
	return false
}

// Increment raises the given stat by one. Unknown stats are ignored and
// reported as false.
func (cs *CharacterStats) Increment(s Stat) bool {
	switch s {
	case StatStrength:
		cs.Strength++
	case StatIntelligence:
		cs.Intelligence++
	case StatDexterity:
		cs.Dexterity++
	default:
		return false
	}
	return true
}

// Reset restores the fresh-run values for the given character class.
func (cs *CharacterStats) Reset(character string) {
	*cs = CharacterStats{Character: character}
}

// Preference is one integer entry of the per-owner key-value store. The
// owner is an email for signed-in players and a guest key otherwise.
type Preference struct {
	gorm.Model
	OwnerKey string `gorm:"uniqueIndex:idx_preferences_owner_key;size:128"`
	Key      string `gorm:"column:pref_key;uniqueIndex:idx_preferences_owner_key;size:64"`
	IntValue int
}

func (Preference) TableName() string { return "preferences" }

// ScoreRecord is one row of a player's run history.
type ScoreRecord struct {
	gorm.Model
	Email        string    `json:"email" gorm:"index"`
	Gold         int       `json:"gold"`
	Date         string    `json:"date"`
	PlayedAt     time.Time `json:"-" gorm:"index"`
	Character    string    `json:"character"`
	Strength     int       `json:"strength"`
	Intelligence int       `json:"intelligence"`
	Dexterity    int       `json:"dexterity"`
}

func (ScoreRecord) TableName() string { return "score_history" }

// HighScore keeps the best gold total ever reported for an email.
type HighScore struct {
	gorm.Model
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Gold         int       `json:"gold" gorm:"index"`
	Date         string    `json:"date"`
	PlayedAt     time.Time `json:"-"`
	Character    string    `json:"character"`
	Strength     int       `json:"strength"`
	Intelligence int       `json:"intelligence"`
	Dexterity    int       `json:"dexterity"`
}

func (HighScore) TableName() string { return "high_scores" }

// DateLayout is the display format stored alongside score rows.
const DateLayout = "02-01-2006 15:04:05"

// NewScoreRecord builds a history row from the stats at the time of the report.
func NewScoreRecord(email string, gold int, stats CharacterStats, at time.Time) ScoreRecord {
	return ScoreRecord{
		Email:        email,
		Gold:         gold,
		Date:         at.Format(DateLayout),
		PlayedAt:     at,
		Character:    stats.Character,
		Strength:     stats.Strength,
		Intelligence: stats.Intelligence,
		Dexterity:    stats.Dexterity,
	}
}

// NewHighScore builds a high score candidate from the stats at the time of the report.
func NewHighScore(email string, gold int, stats CharacterStats, at time.Time) HighScore {
	return HighScore{
		Email:        email,
		Gold:         gold,
		Date:         at.Format(DateLayout),
		PlayedAt:     at,
		Character:    stats.Character,
		Strength:     stats.Strength,
		Intelligence: stats.Intelligence,
		Dexterity:    stats.Dexterity,
	}
}
