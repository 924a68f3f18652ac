package view

import (
	"fmt"
	"io"
	"strings"

	"rps/game"

	"github.com/charmbracelet/lipgloss"
)

// View draws the grid as text, one character per cell. A lowercase letter is
// a single agent, an uppercase letter marks agents sharing a cell and shows
// the type of the lowest id among them.
type View struct {
	empty lipgloss.Style
	types map[game.AgentType]lipgloss.Style
}

// New styles the output for w, so colors are dropped when w is not a
// terminal.
func New(w io.Writer) *View {
	r := lipgloss.NewRenderer(w)
	return &View{
		empty: r.NewStyle().Foreground(lipgloss.Color("241")),
		types: map[game.AgentType]lipgloss.Style{
			game.Rock:     r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			game.Paper:    r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
			game.Scissors: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		},
	}
}

func (v *View) Render(tick uint64, state *game.GlobalState) string {
	type cell struct {
		first game.AgentType
		count int
	}
	cells := make(map[game.Coord]*cell)
	for _, id := range state.IDs() {
		agent := state.Agents[id]
		if c, ok := cells[agent.Location]; ok {
			c.count++
			continue
		}
		cells[agent.Location] = &cell{first: agent.Type, count: 1}
	}

	var b strings.Builder
	counts := state.Counts()
	fmt.Fprintf(&b, "tick %d  rock %d  paper %d  scissors %d\n", tick, counts[game.Rock], counts[game.Paper], counts[game.Scissors])
	for y := 0; y < state.Map.Height; y++ {
		row := make([]string, state.Map.Width)
		for x := 0; x < state.Map.Width; x++ {
			c, ok := cells[game.Coord{X: x, Y: y}]
			if !ok {
				row[x] = v.empty.Render(".")
				continue
			}
			letter := c.first.String()[:1]
			if c.count > 1 {
				letter = strings.ToUpper(letter)
			}
			row[x] = v.types[c.first].Render(letter)
		}
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
