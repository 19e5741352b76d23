package engine

import (
	"fmt"
	"strings"
)

// actionLog collects the lines produced while resolving one action.
type actionLog struct {
	lines []string
}

func (l *actionLog) reset() { l.lines = l.lines[:0] }

func (l *actionLog) add(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// joined returns the accumulated lines as a single message.
func (l *actionLog) joined() string {
	return strings.Join(l.lines, "\n")
}

func strikeMessage(kind ActionKind, dmg int) string {
	switch kind {
	case ActionMelee:
		return fmt.Sprintf("You dealt %d damage with your sword!", dmg)
	case ActionMagic:
		return fmt.Sprintf("You dealt %d damage with magic!", dmg)
	case ActionRanged:
		return fmt.Sprintf("You dealt %d damage with your bow!", dmg)
	}
	return ""
}

func cooldownMessage(turns int) string {
	if turns == 1 {
		return "You must wait 1 more turn to use magic!"
	}
	return fmt.Sprintf("You must wait %d more turns to use magic!", turns)
}
