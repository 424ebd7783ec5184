package bifid

import (
	"fmt"
	"strings"
)

const (
	// Side is the number of rows and columns in the square.
	Side      = 5
	TableSize = Side * Side
)

// Table is the keyed 5x5 square, stored row major.
type Table struct {
	cells    [TableSize]byte
	alphabet Alphabet
}

// NewTable builds the square for key. Key letters are placed first, in the
// order they appear and without repeats, then the rest of the alphabet
// fills the remaining cells.
func NewTable(key string, a Alphabet) (*Table, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	t := &Table{alphabet: a}
	var placed [91]bool
	n := 0

	place := func(letters []byte) {
		for _, c := range letters {
			if placed[c] || n >= TableSize {
				continue
			}
			placed[c] = true
			t.cells[n] = c
			n++
		}
	}
	place(a.Normalize(key))
	place(a.Letters())

	if err := t.check(); err != nil {
		return nil, err
	}
	return t, nil
}

// check verifies the cells are a permutation of the merged alphabet.
func (t *Table) check() error {
	var seen [91]bool
	for i, c := range t.cells {
		if !isUpper(c) || c == t.alphabet.Merge {
			return invariantf("table", "cell %d holds %q", i, c)
		}
		if seen[c] {
			return invariantf("table", "letter %c appears twice", c)
		}
		seen[c] = true
	}
	return nil
}

// Alphabet returns the alphabet the table was built from.
func (t *Table) Alphabet() Alphabet {
	return t.alphabet
}

// Key returns the 25 cells as a string.
func (t *Table) Key() string {
	return string(t.cells[:])
}

// Rows returns the table as five strings of five letters.
func (t *Table) Rows() []string {
	ret := make([]string, Side)
	for r := range ret {
		ret[r] = string(t.cells[r*Side : (r+1)*Side])
	}
	return ret
}

// CoordOf finds letter in the table. The letter must already be normalized;
// anything else is an invariant violation.
func (t *Table) CoordOf(letter byte) (Coord, error) {
	for i, c := range t.cells {
		if c == letter {
			return Coord{Row: i / Side, Col: i % Side}, nil
		}
	}
	return Coord{}, invariantf("lookup", "letter %q is not in the table", letter)
}

// LetterAt reads the cell at c. c must be in range.
func (t *Table) LetterAt(c Coord) byte {
	return t.cells[c.Index()]
}

// Annotate pairs each normalized letter with its coordinate.
func (t *Table) Annotate(letters []byte) ([]Annotated, error) {
	ret := make([]Annotated, 0, len(letters))
	for _, l := range letters {
		c, err := t.CoordOf(l)
		if err != nil {
			return nil, err
		}
		ret = append(ret, Annotated{Letter: l, Coord: c})
	}
	return ret, nil
}

// String renders the grid with 1-indexed row and column headers:
//
//	  1 2 3 4 5
//	1 M O N A R
//	2 C H Y B D
//	...
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for c := 1; c <= Side; c++ {
		fmt.Fprintf(&sb, " %d", c)
	}
	for r, row := range t.Rows() {
		fmt.Fprintf(&sb, "\n%d", r+1)
		for i := 0; i < len(row); i++ {
			fmt.Fprintf(&sb, " %c", row[i])
		}
	}
	return sb.String()
}
