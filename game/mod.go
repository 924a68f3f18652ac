package game

import (
	"fmt"

	"rps/searcher"
)

type AgentID = searcher.AgentID

// AgentType is the hand an agent plays. Each type converts exactly one other
// type.
type AgentType int

const (
	Rock AgentType = iota
	Paper
	Scissors
)

var AgentTypes = []AgentType{Rock, Paper, Scissors}

// Prey is the type this type converts.
func (t AgentType) Prey() AgentType {
	switch t {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	default:
		return Paper
	}
}

func (t AgentType) String() string {
	switch t {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("AgentType(%d)", int(t))
	}
}

func ParseAgentType(s string) (AgentType, error) {
	for _, t := range AgentTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return Rock, fmt.Errorf("unknown agent type %q", s)
}

func (t AgentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *AgentType) UnmarshalText(text []byte) error {
	parsed, err := ParseAgentType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Coord is a map cell. The y axis points down.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) Step(d Direction) Coord {
	switch d {
	case Up:
		return Coord{c.X, c.Y - 1}
	case Down:
		return Coord{c.X, c.Y + 1}
	case Left:
		return Coord{c.X - 1, c.Y}
	case Right:
		return Coord{c.X + 1, c.Y}
	default:
		return c
	}
}

func (c Coord) Manhattan(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type Direction int

const (
	Up Direction = iota
	Left
	Right
	Down
)

// Directions is the canonical order in which moves are enumerated.
var Directions = []Direction{Up, Left, Right, Down}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
