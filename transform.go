package bifid

import (
	"fmt"
	"strings"
)

// Mode selects the direction of the transform.
type Mode int

const (
	Encrypt Mode = iota
	Decrypt
)

func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts encrypt/enc/e and decrypt/dec/d, in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e":
		return Encrypt, nil
	case "decrypt", "dec", "d":
		return Decrypt, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Transform reshapes a coordinate sequence.
//
// Encrypt writes all the rows followed by all the columns and reads the
// result back two at a time as new (row, column) pairs. Decrypt writes the
// pairs back out row, column, row, column and splits the result in half,
// the first half being the rows and the second the columns. Each undoes the
// other for any length, including zero.
func Transform(mode Mode, in []Coord) []Coord {
	n := len(in)
	out := make([]Coord, n)
	flat := make([]int, 0, 2*n)

	switch mode {
	case Encrypt:
		for _, c := range in {
			flat = append(flat, c.Row)
		}
		for _, c := range in {
			flat = append(flat, c.Col)
		}
		for k := range out {
			out[k] = Coord{Row: flat[2*k], Col: flat[2*k+1]}
		}
	case Decrypt:
		for _, c := range in {
			flat = append(flat, c.Row, c.Col)
		}
		for k := range out {
			out[k] = Coord{Row: flat[k], Col: flat[n+k]}
		}
	default:
		panic("bifid: bad mode " + mode.String())
	}

	return out
}

// TransformPeriod runs Transform over consecutive blocks of period
// coordinates; the last block may be short. A period of zero or less treats
// the whole sequence as one block.
func TransformPeriod(mode Mode, in []Coord, period int) []Coord {
	if period <= 0 || period >= len(in) {
		return Transform(mode, in)
	}

	out := make([]Coord, 0, len(in))
	for i := 0; i < len(in); i += period {
		end := i + period
		if end > len(in) {
			end = len(in)
		}
		out = append(out, Transform(mode, in[i:end])...)
	}
	return out
}
