// Package netview draws the six faces of a cube as an unfolded sticker net
// for the terminal.
package netview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/rubik/pkg/types"
)

// Stickers holds the face color showing at each slot, faces in types.Faces
// order (U L F R B D).
type Stickers = [6][9]types.Layer

var colors = map[types.Layer]lipgloss.Color{
	types.LayerU: lipgloss.Color("15"),  // white
	types.LayerL: lipgloss.Color("208"), // orange
	types.LayerF: lipgloss.Color("34"),  // green
	types.LayerR: lipgloss.Color("160"), // red
	types.LayerB: lipgloss.Color("27"),  // blue
	types.LayerD: lipgloss.Color("226"), // yellow
}

var unknownColor = lipgloss.Color("240")

// Face indices into Stickers.
const (
	faceU = iota
	faceL
	faceF
	faceR
	faceB
	faceD
)

// Render draws the net with colored blocks:
//
//	      U
//	L  F  R  B
//	      D
func Render(s Stickers) string {
	return layout(s, func(l types.Layer) string {
		c, ok := colors[l]
		if !ok {
			c = unknownColor
		}
		return lipgloss.NewStyle().Background(c).Render("  ")
	}, 2)
}

// Letters draws the net with one face letter per sticker.
func Letters(s Stickers) string {
	return layout(s, func(l types.Layer) string {
		if l == "" {
			return "?"
		}
		return string(l)
	}, 1)
}

func layout(s Stickers, cell func(types.Layer) string, width int) string {
	block := func(face int) string {
		rows := make([]string, 3)
		for r := 0; r < 3; r++ {
			var b strings.Builder
			for c := 0; c < 3; c++ {
				b.WriteString(cell(s[face][r*3+c]))
			}
			rows[r] = b.String()
		}
		return strings.Join(rows, "\n")
	}

	gap := strings.Repeat(" ", width*3+1)
	spacer := lipgloss.NewStyle().Width(1).Render(" ")
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		block(faceL), spacer, block(faceF), spacer, block(faceR), spacer, block(faceB))

	indent := func(b string) string {
		lines := strings.Split(b, "\n")
		for i := range lines {
			lines[i] = gap + lines[i]
		}
		return strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, indent(block(faceU)), middle, indent(block(faceD)))
}
