// core/kmer/scheme.go
package kmer

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
)

// DefaultSeed is XORed into canonical k-mer codes before minimizer selection
// so that low-complexity k-mers (poly-A) do not always win.
const DefaultSeed uint64 = 0x8F3F73B5CF1C9ADE

// MaxK is the longest k-mer that fits a 64-bit code.
const MaxK = 32

var ErrInvalidScheme = errors.New("invalid hash scheme")

// Scheme produces the hash values of one dna4 sequence. The returned
// sequence may be ranged any number of times.
type Scheme interface {
	Hashes(seq []byte) iter.Seq[uint64]
	fmt.Stringer
}

// ExactKmer hashes every k-length substring.
type ExactKmer struct {
	K int
}

// Minimizer keeps one canonical k-mer hash per window of W bases.
type Minimizer struct {
	K, W int
	Seed uint64
}

// NewScheme validates k and w and returns the configured scheme.
func NewScheme(k, w int, disableMinimizers bool) (Scheme, error) {
	if disableMinimizers {
		s := ExactKmer{K: k}
		return s, s.Validate()
	}
	s := Minimizer{K: k, W: w, Seed: DefaultSeed}
	return s, s.Validate()
}

func validK(k int) error {
	if k < 1 || k > MaxK {
		return errors.Wrapf(ErrInvalidScheme, "k=%d outside [1,%d]", k, MaxK)
	}
	return nil
}

// Validate reports whether K is usable.
func (s ExactKmer) Validate() error { return validK(s.K) }

// Validate reports whether K and W are usable.
func (s Minimizer) Validate() error {
	if err := validK(s.K); err != nil {
		return err
	}
	if s.W < s.K {
		return errors.Wrapf(ErrInvalidScheme, "window %d shorter than k=%d", s.W, s.K)
	}
	return nil
}

func (s ExactKmer) String() string { return fmt.Sprintf("kmer(k=%d)", s.K) }
func (s Minimizer) String() string { return fmt.Sprintf("minimizer(k=%d,w=%d)", s.K, s.W) }

func mask(k int) uint64 {
	if k >= MaxK {
		return ^uint64(0)
	}
	return 1<<(2*uint(k)) - 1
}
