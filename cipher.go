package bifid

// Cipher encrypts and decrypts against one keyed table.
type Cipher struct {
	table  *Table
	period int
}

type options struct {
	alphabet Alphabet
	period   int
}

// Option configures New.
type Option func(*options)

// WithAlphabet selects the merged letter pair. The default is J into I.
func WithAlphabet(a Alphabet) Option {
	return func(o *options) { o.alphabet = a }
}

// WithPeriod splits messages into blocks of n letters before transforming.
// Zero, the default, transforms the whole message at once.
func WithPeriod(n int) Option {
	return func(o *options) { o.period = n }
}

// New builds the table for key.
func New(key string, opts ...Option) (*Cipher, error) {
	o := options{alphabet: DefaultAlphabet}
	for _, opt := range opts {
		opt(&o)
	}

	t, err := NewTable(key, o.alphabet)
	if err != nil {
		return nil, err
	}
	return &Cipher{table: t, period: o.period}, nil
}

// Table returns the keyed square.
func (c *Cipher) Table() *Table {
	return c.table
}

// Period returns the block length, 0 when the whole message is one block.
func (c *Cipher) Period() int {
	return c.period
}

// Trace records each stage of one run, for diagnostic output.
type Trace struct {
	Mode   Mode
	Input  []Annotated
	Output []Annotated
}

// Result is the output text.
func (tr Trace) Result() string {
	return letters(tr.Output)
}

// Trace runs text through the cipher and keeps the intermediate sequences.
func (c *Cipher) Trace(mode Mode, text string) (Trace, error) {
	in, err := c.table.Annotate(c.table.alphabet.Normalize(text))
	if err != nil {
		return Trace{}, err
	}

	moved := TransformPeriod(mode, coords(in), c.period)
	out := make([]Annotated, len(moved))
	for i, co := range moved {
		out[i] = Annotated{Letter: c.table.LetterAt(co), Coord: co}
	}

	return Trace{Mode: mode, Input: in, Output: out}, nil
}

// Apply runs text through the cipher in the given direction. The result
// holds only upper case letters, one per letter of normalized input.
func (c *Cipher) Apply(mode Mode, text string) (string, error) {
	tr, err := c.Trace(mode, text)
	if err != nil {
		return "", err
	}
	return tr.Result(), nil
}

// Encrypt is Apply(Encrypt, text).
func (c *Cipher) Encrypt(text string) (string, error) {
	return c.Apply(Encrypt, text)
}

// Decrypt is Apply(Decrypt, text).
func (c *Cipher) Decrypt(text string) (string, error) {
	return c.Apply(Decrypt, text)
}
