package storage

import "github.com/ericogr/giera/internal/game"

type Repository interface {
	// GetPreferenceInt returns the stored value and whether it exists.
	GetPreferenceInt(owner, key string) (int, bool, error)
	SetPreferenceInt(owner, key string, value int) error

	// Run history
	AddScore(rec *game.ScoreRecord) error
	GetScoresByEmail(email string, limit int) ([]game.ScoreRecord, error)

	// SaveHighScoreIfGreater stores hs only when the email has no high
	// score yet or hs.Gold is strictly greater. It reports whether a
	// write happened.
	SaveHighScoreIfGreater(hs *game.HighScore) (bool, error)
	GetHighScore(email string) (*game.HighScore, error)
	// Leaderboard
	GetTopHighScores(limit int) ([]game.HighScore, error)
}
