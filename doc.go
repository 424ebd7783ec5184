// Package bifid implements the Bifid cipher: a keyed 5x5 Polybius square
// combined with a transform that spreads each letter's row and column across
// the message.
//
// A Table is built once from a key. Text is normalized to the 25 letters the
// table holds, each letter is looked up to a Coord, the coordinate sequence
// is reshaped by Transform and every resulting Coord is read back out of the
// table. Encrypt and Decrypt are exact inverses of each other.
//
// This is a historical cipher and offers no real security.
package bifid
