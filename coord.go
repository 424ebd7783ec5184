package bifid

import (
	"fmt"
	"strings"
)

// Coord is a (row, column) cell position, both in [0,Side).
type Coord struct {
	Row int
	Col int
}

// Index is the row-major cell number of c.
func (c Coord) Index() int {
	return c.Row*Side + c.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row+1, c.Col+1)
}

// Annotated is a normalized letter together with its place in the table.
type Annotated struct {
	Letter byte
	Coord
}

func coords(seq []Annotated) []Coord {
	ret := make([]Coord, len(seq))
	for i, a := range seq {
		ret[i] = a.Coord
	}
	return ret
}

func letters(seq []Annotated) string {
	b := make([]byte, len(seq))
	for i, a := range seq {
		b[i] = a.Letter
	}
	return string(b)
}

// DefaultOrder shows the letter line first, then rows, then columns.
const DefaultOrder = "LRC"

// RenderAnnotated lays seq out as three aligned lines with 1-indexed
// coordinates. order picks the lines and their order: 'L' for the letters,
// 'R' for rows and 'C' for columns, so "RCL" puts the coordinates above the
// letters they spell. An empty order means DefaultOrder. Any other code
// panics.
func RenderAnnotated(seq []Annotated, order string) string {
	if order == "" {
		order = DefaultOrder
	}

	lines := make([]string, 0, len(order))
	for i := 0; i < len(order); i++ {
		var sb strings.Builder
		switch order[i] {
		case 'L':
			sb.WriteString("Letter:")
			for _, a := range seq {
				fmt.Fprintf(&sb, " %c", a.Letter)
			}
		case 'R':
			sb.WriteString("Row:   ")
			for _, a := range seq {
				fmt.Fprintf(&sb, " %d", a.Row+1)
			}
		case 'C':
			sb.WriteString("Column:")
			for _, a := range seq {
				fmt.Fprintf(&sb, " %d", a.Col+1)
			}
		default:
			panic(fmt.Sprintf("bifid: bad render order %q", order))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
