// Package world holds the grid map a run explores: the player's position,
// the monsters waiting on it and the proximity rule that starts a fight.
package world

import (
	"errors"
	"strings"
)

var ErrInvalidDirection = errors.New("invalid direction")

// Intner is the randomness used for spawning. *rand.Rand satisfies it.
type Intner interface {
	Intn(n int) int
}

// Direction is one of the four moves.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// ParseDirection normalizes user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Up, Down, Left, Right:
		return d, nil
	}
	return "", ErrInvalidDirection
}

func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Position is a cell on the grid; (0,0) is the top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Monster is a spawned enemy waiting on the map.
type Monster struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
	Sprite   string   `json:"sprite"`
}

// Sprites are the monster image variants a client can draw.
var Sprites = []string{"monster1", "monster2"}

// Settings shape a generated map.
type Settings struct {
	Size         int
	MonsterCount int
	AggroRadius  int
	Start        Position
}

// DefaultSettings mirror the classic 10x10 field with three monsters.
func DefaultSettings() Settings {
	return Settings{Size: 10, MonsterCount: 3, AggroRadius: 2, Start: Position{X: 5, Y: 5}}
}

// Map is a run's field. It is not safe for concurrent use.
type Map struct {
	settings Settings
	player   Position
	monsters []Monster
}

// New generates a field with monsters placed at random cells that are
// not adjacent to the start cell.
func New(settings Settings, rng Intner) *Map {
	m := &Map{settings: settings, player: settings.Start}
	m.monsters = spawn(settings, rng)
	return m
}

func spawn(s Settings, rng Intner) []Monster {
	out := make([]Monster, 0, s.MonsterCount)
	// bounded so a tiny misconfigured map cannot spin forever
	for attempts := 0; len(out) < s.MonsterCount && attempts < s.MonsterCount*1000; attempts++ {
		x := rng.Intn(s.Size)
		y := rng.Intn(s.Size)
		if abs(x-s.Start.X) <= 1 && abs(y-s.Start.Y) <= 1 {
			continue
		}
		out = append(out, Monster{
			ID:       len(out) + 1,
			Position: Position{X: x, Y: y},
			Sprite:   Sprites[rng.Intn(len(Sprites))],
		})
	}
	return out
}

// Size is the side length of the square grid.
func (m *Map) Size() int { return m.settings.Size }

// Player returns the player's cell.
func (m *Map) Player() Position { return m.player }

// Monsters returns a copy of the monsters still on the map.
func (m *Map) Monsters() []Monster {
	out := make([]Monster, len(m.monsters))
	copy(out, m.monsters)
	return out
}

// Move steps the player one cell. Moves off the grid are ignored and
// report moved=false. After a move, the first monster within the aggro
// radius on both axes is returned.
func (m *Map) Move(d Direction) (moved bool, met *Monster) {
	dx, dy := d.delta()
	next := Position{X: m.player.X + dx, Y: m.player.Y + dy}
	if (dx == 0 && dy == 0) || !m.inBounds(next) {
		return false, nil
	}
	m.player = next
	r := m.settings.AggroRadius
	for i := range m.monsters {
		mon := m.monsters[i]
		if abs(mon.Position.X-next.X) <= r && abs(mon.Position.Y-next.Y) <= r {
			return true, &mon
		}
	}
	return true, nil
}

// Remove deletes a beaten monster from the map.
func (m *Map) Remove(id int) bool {
	for i := range m.monsters {
		if m.monsters[i].ID == id {
			m.monsters = append(m.monsters[:i], m.monsters[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) inBounds(p Position) bool {
	return p.X >= 0 && p.X < m.settings.Size && p.Y >= 0 && p.Y < m.settings.Size
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
