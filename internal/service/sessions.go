package service

import (
	"sync"
	"time"

	"github.com/ericogr/giera/internal/engine"
	"github.com/ericogr/giera/internal/game"
	"github.com/ericogr/giera/internal/world"
)

// Identity is who a request plays as. Owner keys the run and the gold
// store; Email is empty for guests, which disables score reporting.
type Identity struct {
	Owner string
	Email string
}

// Run is one play-through from character choice to save-and-exit or
// acknowledged defeat.
type Run struct {
	Stats     game.CharacterStats
	Map       *world.Map
	Encounter *engine.Encounter
	// Monster is the map monster behind the active encounter.
	Monster  *world.Monster
	Defeated bool
	// Last is the final view of the most recently finished encounter.
	Last *EncounterView
}

type session struct {
	mu        sync.Mutex
	run       *Run
	lastSeen  time.Time
	// gold is the owner's last known balance. It outlives the run and is
	// newer than the store while currency writes are still queued.
	gold      int
	goldKnown bool
}

func (sess *session) rememberGold() {
	if sess.run != nil {
		sess.gold = sess.run.Stats.Gold
		sess.goldKnown = true
	}
}

// Sessions holds at most one run per owner. Every operation on a run
// happens under that session's mutex, which keeps encounter resolution
// strictly sequential per player.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*session
	now  func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*session{}, now: time.Now}
}

// with runs fn while holding the owner's session lock. Owners without a
// session get ErrNoRun and nothing is allocated for them.
func (s *Sessions) with(owner string, fn func(sess *session) error) error {
	s.mu.Lock()
	sess, ok := s.byID[owner]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return ErrNoRun
	}
	return sess.locked(fn)
}

// open is like with but creates the session on first use.
func (s *Sessions) open(owner string, fn func(sess *session) error) error {
	s.mu.Lock()
	sess, ok := s.byID[owner]
	if !ok {
		sess = &session{}
		s.byID[owner] = sess
	}
	sess.lastSeen = s.now()
	s.mu.Unlock()
	return sess.locked(fn)
}

func (sess *session) locked(fn func(sess *session) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	err := fn(sess)
	sess.rememberGold()
	return err
}

// Sweep drops sessions idle for longer than idle. Runs in progress are
// abandoned without any score report. It returns the number removed.
func (s *Sessions) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for owner, sess := range s.byID {
		if sess.lastSeen.Before(cutoff) {
			delete(s.byID, owner)
			n++
		}
	}
	return n
}

// Len reports the number of tracked sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
