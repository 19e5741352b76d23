package service

import (
	"strconv"

	"github.com/ericogr/giera/internal/game"
)

const maxListLimit = 100

func (g *Game) clampLimit(limit int) int {
	if limit <= 0 {
		return g.opts.LeaderboardLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// Leaderboard returns the best high scores. Concurrent requests for the
// same limit share one query.
func (g *Game) Leaderboard(limit int) ([]game.HighScore, error) {
	limit = g.clampLimit(limit)
	return g.reads.Do("leaderboard:"+strconv.Itoa(limit), func() ([]game.HighScore, error) {
		return g.repo.GetTopHighScores(limit)
	})
}

// History returns the signed-in player's recent runs, newest first.
func (g *Game) History(email string, limit int) ([]game.ScoreRecord, error) {
	return g.repo.GetScoresByEmail(email, g.clampLimit(limit))
}
