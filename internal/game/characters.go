package game

import "strings"

// Built-in character classes. The configuration file may list others.
const (
	CharacterScout       = "Scout"
	CharacterWhiteKnight = "White Knight"
)

// DefaultCharacters is used when the configuration does not list any class.
var DefaultCharacters = []string{CharacterScout, CharacterWhiteKnight}

// FindCharacter returns the configured class matching name
// (case-insensitive). An empty name selects the first class.
func FindCharacter(classes []string, name string) (string, bool) {
	if len(classes) == 0 {
		return "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return classes[0], true
	}
	for _, c := range classes {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}
