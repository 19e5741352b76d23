package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/ericogr/giera/internal/dedupe"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/gateway"
	"github.com/ericogr/giera/internal/storage"
	"github.com/ericogr/giera/internal/world"
)

var (
	ErrNoRun            = errors.New("no run in progress")
	ErrUnknownCharacter = errors.New("unknown character")
	ErrRunDefeated      = errors.New("run was defeated")
	ErrRunNotDefeated   = errors.New("run is not defeated")
	ErrNoEncounter      = errors.New("no encounter in progress")
	ErrEncounterActive  = errors.New("not allowed during an encounter")
	ErrInvalidAction    = errors.New("invalid action")
	ErrInvalidStat      = errors.New("invalid stat")
	ErrInsufficientGold = errors.New("not enough gold")
)

// Rand is the randomness a run draws from for map spawns and combat rolls.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Options are the tunables of the game service.
type Options struct {
	Characters       []string
	Map              world.Settings
	UpgradeCost      int
	LeaderboardLimit int
	// NewRand builds the randomness for a new run; nil means time-seeded.
	NewRand func() Rand
}

// Game is the application service behind the HTTP API. It owns the
// in-memory runs and wires each encounter to the background gateways.
type Game struct {
	repo     storage.Repository
	d        *gateway.Dispatcher
	opts     Options
	sessions *Sessions
	// reads collapses concurrent leaderboard queries for the same limit.
	reads dedupe.Group[[]game.HighScore]
}

// New builds the service. The dispatcher must be started by the caller.
func New(repo storage.Repository, d *gateway.Dispatcher, opts Options) *Game {
	if opts.NewRand == nil {
		opts.NewRand = func() Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
	}
	if opts.LeaderboardLimit <= 0 {
		opts.LeaderboardLimit = 10
	}
	return &Game{repo: repo, d: d, opts: opts, sessions: NewSessions()}
}

// Characters lists the playable classes; the first is the default.
func (g *Game) Characters() []string {
	return append([]string(nil), g.opts.Characters...)
}

// SweepIdle forgets runs untouched for longer than idle.
func (g *Game) SweepIdle(idle time.Duration) int {
	return g.sessions.Sweep(idle)
}

func (g *Game) currency(id Identity) *gateway.Currency {
	return gateway.NewCurrency(g.repo, g.d, id.Owner)
}

func (g *Game) scores(id Identity) *gateway.Scores {
	return gateway.NewScores(g.repo, g.d, id.Email)
}
