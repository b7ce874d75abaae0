package gridworld

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
)

// Greedy returns the greedy action in a state
type Greedy interface {
	Argmax(state int) (int, error)
}

var arrows = [numActions]string{
	Left:  "<",
	Right: ">",
	Up:    "^",
	Down:  "v",
}

// Render writes the greedy action of each cell to w, with the top row
// of the grid printed first. The agent's position is marked with an A
// and goals with a G. If colour is true, ANSI colour codes are written.
func (g *WindyGridWorld) Render(w io.Writer, greedy Greedy,
	colour bool) error {
	au := aurora.NewAurora(colour)

	for y := g.rows - 1; y >= 0; y-- {
		for x := 0; x < g.cols; x++ {
			state := cToInd(x, y, g.cols)

			var cell aurora.Value
			switch {
			case state == g.position:
				cell = au.Green(fmt.Sprintf(" %s ", "A"))
			case g.AtGoal(state):
				cell = au.Yellow(fmt.Sprintf(" %s ", "G"))
			default:
				action, err := greedy.Argmax(state)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				cell = au.Blue(fmt.Sprintf(" %s ", arrows[action]))
			}

			if _, err := fmt.Fprintf(w, "%s%s", cell, au.White("|")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for x := 0; x < g.cols; x++ {
		if _, err := fmt.Fprintf(w, "%s ",
			au.Cyan(fmt.Sprintf(" %d ", g.wind[x]))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
