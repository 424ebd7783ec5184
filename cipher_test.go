package bifid

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_Monarchy(t *testing.T) {
	c, err := New("MONARCHY")
	require.NoError(t, err)

	enc, err := c.Encrypt("hello")
	require.NoError(t, err)
	assert.Equal(t, "YSOMO", enc)

	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", dec)
}

func TestCipher_MergedLetter(t *testing.T) {
	c, err := New("MONARCHY")
	require.NoError(t, err)

	enc, err := c.Encrypt("Jumping jacks")
	require.NoError(t, err)
	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "IUMPINGIACKS", dec)
	assert.NotContains(t, enc, "J")

	tr, err := c.Trace(Encrypt, "j")
	require.NoError(t, err)
	require.Len(t, tr.Input, 1)
	assert.Equal(t, byte('I'), tr.Input[0].Letter)
	assert.Equal(t, Coord{Row: 2, Col: 3}, tr.Input[0].Coord)
}

func TestCipher_Empty(t *testing.T) {
	for _, key := range []string{"", "MONARCHY", "!!"} {
		c, err := New(key)
		require.NoError(t, err)
		for _, text := range []string{"", "1234 ,.;", "ñ"} {
			enc, err := c.Encrypt(text)
			require.NoError(t, err)
			assert.Empty(t, enc)
			dec, err := c.Decrypt(text)
			require.NoError(t, err)
			assert.Empty(t, dec)
		}
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	letters := DefaultAlphabet.Letters()
	randText := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = letters[r.Intn(len(letters))]
		}
		return string(b)
	}

	for i := 0; i < 50; i++ {
		key := randText(r.Intn(12))
		c, err := New(key, WithPeriod(r.Intn(8)))
		require.NoError(t, err)

		text := randText(r.Intn(60))
		enc, err := c.Encrypt(text)
		require.NoError(t, err)
		require.Len(t, enc, len(text))
		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, text, dec, "key %q period %d", key, c.Period())

		dec, err = c.Decrypt(text)
		require.NoError(t, err)
		enc, err = c.Encrypt(dec)
		require.NoError(t, err)
		assert.Equal(t, text, enc, "key %q period %d", key, c.Period())
	}
}

func TestCipher_Deterministic(t *testing.T) {
	text := "Attack at dawn, then retreat before noon."
	a, err := New("fortification")
	require.NoError(t, err)
	b, err := New("fortification")
	require.NoError(t, err)

	ea, err := a.Encrypt(text)
	require.NoError(t, err)
	eb, err := b.Encrypt(text)
	require.NoError(t, err)
	assert.Equal(t, ea, eb)
	assert.Equal(t, a.Table().Key(), b.Table().Key())
}

func TestCipher_OutputShape(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)

	text := "Mixed CASE, digits 123 and punctuation!"
	enc, err := c.Encrypt(text)
	require.NoError(t, err)
	assert.Len(t, enc, len(DefaultAlphabet.Normalize(text)))
	assert.Equal(t, strings.ToUpper(enc), enc)
	assert.NotContains(t, enc, " ")
}

func TestCipher_Options(t *testing.T) {
	a := Alphabet{Merge: 'Q', Into: 'K'}
	c, err := New("queen", WithAlphabet(a), WithPeriod(4))
	require.NoError(t, err)
	assert.Equal(t, a, c.Table().Alphabet())
	assert.Equal(t, 4, c.Period())
	assert.Equal(t, "KUENA", c.Table().Rows()[0])

	enc, err := c.Encrypt("quick quiz")
	require.NoError(t, err)
	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "KUICKKUIZ", dec)

	_, err = New("x", WithAlphabet(Alphabet{Merge: 'A', Into: 'A'}))
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestCipher_Trace(t *testing.T) {
	c, err := New("MONARCHY")
	require.NoError(t, err)

	tr, err := c.Trace(Encrypt, "he")
	require.NoError(t, err)
	assert.Equal(t, Encrypt, tr.Mode)
	assert.Equal(t, "HE", letters(tr.Input))
	assert.Equal(t, "YC", tr.Result())
	for _, a := range tr.Output {
		assert.Equal(t, a.Letter, c.Table().LetterAt(a.Coord))
	}
}
