package bifid

import (
	"bytes"
	"fmt"
	"regexp"
)

var validLetter [256]bool

func init() {
	for x := 'A'; x <= 'Z'; x++ {
		validLetter[x] = true
		validLetter[x+'a'-'A'] = true
	}
}

// Alphabet is the 26 letter alphabet reduced to 25 by folding Merge into
// Into wherever it appears.
type Alphabet struct {
	Merge byte
	Into  byte
}

// DefaultAlphabet is the traditional I/J square.
var DefaultAlphabet = Alphabet{Merge: 'J', Into: 'I'}

var rxMerge = regexp.MustCompile(`^\s*([A-Z])\s*=\s*([A-Z])\s*$`)

// ParseAlphabet parses a merge spec such as "J=I" (the letter on the left is
// rewritten to the one on the right).
func ParseAlphabet(spec string) (Alphabet, error) {
	m := rxMerge.FindSubmatch(bytes.ToUpper([]byte(spec)))
	if m == nil {
		return Alphabet{}, fmt.Errorf("invalid merge %q: want LETTER=LETTER", spec)
	}

	a := Alphabet{Merge: m[1][0], Into: m[2][0]}
	if a.Merge == a.Into {
		return Alphabet{}, fmt.Errorf("invalid merge %q: a letter cannot merge into itself", spec)
	}
	return a, nil
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// Validate reports a malformed alphabet as an invariant violation. Callers
// that build an Alphabet from user input should go through ParseAlphabet.
func (a Alphabet) Validate() error {
	if !isUpper(a.Merge) || !isUpper(a.Into) || a.Merge == a.Into {
		return invariantf("alphabet", "bad merge %q into %q", a.Merge, a.Into)
	}
	return nil
}

// Letters returns the fill order used for the table: A through Z with the
// merged letter left out.
func (a Alphabet) Letters() []byte {
	ret := make([]byte, 0, TableSize)
	for c := byte('A'); c <= 'Z'; c++ {
		if c != a.Merge {
			ret = append(ret, c)
		}
	}
	return ret
}

// Normalize filters text down to the letters the table can hold. Anything
// that is not an ASCII letter is dropped, the rest is upper cased and the
// merged letter is rewritten.
func (a Alphabet) Normalize(text string) []byte {
	ret := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !validLetter[c] {
			continue
		}
		if c >= 'a' {
			c -= 'a' - 'A'
		}
		if c == a.Merge {
			c = a.Into
		}
		ret = append(ret, c)
	}
	return ret
}

func (a Alphabet) String() string {
	return fmt.Sprintf("%c=%c", a.Merge, a.Into)
}
