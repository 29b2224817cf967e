// core/seqio/dna4.go
package seqio

import (
	"github.com/pkg/errors"
)

// ErrInvalidBase is returned for letters outside the IUPAC nucleotide codes.
var ErrInvalidBase = errors.New("invalid nucleotide")

// Ranks of the dna4 alphabet.
const (
	RankA byte = iota
	RankC
	RankG
	RankT
)

const invalid = 0xff

// rank maps a letter to its dna4 rank. U counts as T; every other IUPAC
// ambiguity code (and N) collapses to A.
var rank = func() (t [256]byte) {
	for i := range t {
		t[i] = invalid
	}
	for _, c := range []byte("ACGTURYSWKMBDHVN") {
		lc := c | 0x20
		var r byte
		switch c {
		case 'C':
			r = RankC
		case 'G':
			r = RankG
		case 'T', 'U':
			r = RankT
		default:
			r = RankA
		}
		t[c], t[lc] = r, r
	}
	return t
}()

var letter = [4]byte{'A', 'C', 'G', 'T'}

// ToDNA4 converts nucleotide letters to dna4 ranks in a new slice.
func ToDNA4(s []byte) ([]byte, error) {
	out := make([]byte, len(s))
	for i, c := range s {
		r := rank[c]
		if r == invalid {
			return nil, errors.Wrapf(ErrInvalidBase, "%q at position %d", c, i)
		}
		out[i] = r
	}
	return out, nil
}

// MustDNA4 is ToDNA4 for literals; it panics on invalid input.
func MustDNA4(s string) []byte {
	out, err := ToDNA4([]byte(s))
	if err != nil {
		panic(err)
	}
	return out
}

// Letters renders dna4 ranks back to ACGT.
func Letters(ranks []byte) []byte {
	out := make([]byte, len(ranks))
	for i, r := range ranks {
		out[i] = letter[r&3]
	}
	return out
}
