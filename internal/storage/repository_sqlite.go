package storage

import (
	"errors"

	"github.com/ericogr/giera/internal/game"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 10

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetPreferenceInt(owner, key string) (int, bool, error) {
	var p game.Preference
	err := r.db.Where("owner_key = ? AND pref_key = ?", owner, key).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return p.IntValue, true, nil
}

func (r *sqliteRepository) SetPreferenceInt(owner, key string, value int) error {
	p := game.Preference{OwnerKey: owner, Key: key, IntValue: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_key"}, {Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"int_value", "updated_at"}),
	}).Create(&p).Error
}

func (r *sqliteRepository) AddScore(rec *game.ScoreRecord) error {
	return r.db.Create(rec).Error
}

// GetScoresByEmail returns the most recent runs first.
func (r *sqliteRepository) GetScoresByEmail(email string, limit int) ([]game.ScoreRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []game.ScoreRecord
	if err := r.db.Where("email = ?", email).
		Order("played_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sqliteRepository) SaveHighScoreIfGreater(hs *game.HighScore) (bool, error) {
	written := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cur game.HighScore
		err := tx.Where("email = ?", hs.Email).First(&cur).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			written = true
			return tx.Create(hs).Error
		}
		if err != nil {
			return err
		}
		if cur.Gold >= hs.Gold {
			return nil
		}
		hs.ID = cur.ID
		hs.CreatedAt = cur.CreatedAt
		written = true
		return tx.Save(hs).Error
	})
	if err != nil {
		return false, err
	}
	return written, nil
}

func (r *sqliteRepository) GetHighScore(email string) (*game.HighScore, error) {
	var hs game.HighScore
	if err := r.db.Where("email = ?", email).First(&hs).Error; err != nil {
		return nil, err
	}
	return &hs, nil
}

// GetTopHighScores returns top N players ordered by gold desc, earliest first on ties.
func (r *sqliteRepository) GetTopHighScores(limit int) ([]game.HighScore, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []game.HighScore
	if err := r.db.Model(&game.HighScore{}).
		Order("gold DESC").
		Order("played_at ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
