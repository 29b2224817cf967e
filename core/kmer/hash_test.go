package kmer

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/shenwei356/kmers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chopper/core/seqio"
)

func randomSeq(rng *rand.Rand, n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = byte(rng.Intn(4))
	}
	return s
}

// referenceKmers encodes every k-mer from its letters with an independent encoder.
func referenceKmers(t *testing.T, seq []byte, k int) []uint64 {
	t.Helper()
	letters := seqio.Letters(seq)
	var out []uint64
	for i := 0; i+k <= len(letters); i++ {
		out = append(out, mustEncode(t, letters[i:i+k]))
	}
	return out
}

// mustEncode is the independent 2-bit reference code of one k-mer.
func mustEncode(t *testing.T, kmer []byte) uint64 {
	t.Helper()
	code, err := kmers.Encode(kmer)
	require.NoError(t, err, "encode %s", kmer)
	return code
}

func revComp(seq []byte) []byte {
	rc := make([]byte, len(seq))
	for i, r := range seq {
		rc[len(seq)-1-i] = 3 - r
	}
	return rc
}

// referenceMinimizers recomputes every window minimum by brute force.
func referenceMinimizers(t *testing.T, seq []byte, k, w int, seed uint64) []uint64 {
	t.Helper()
	codes := referenceKmers(t, seq, k)
	canon := make([]uint64, len(codes))
	for i, c := range codes {
		r := mustEncode(t, seqio.Letters(revComp(seq[i : i+k])))
		canon[i] = min(c^seed, r^seed)
	}
	span := w - k + 1
	var out []uint64
	for p := 0; p+span <= len(canon); p++ {
		out = append(out, slices.Min(canon[p:p+span]))
	}
	return out
}

func TestExactKmer_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, k := range []int{1, 2, 5, 19, 31, 32} {
		seq := randomSeq(rng, 200)
		got := slices.Collect(ExactKmer{K: k}.Hashes(seq))
		assert.Equal(t, referenceKmers(t, seq, k), got, "k=%d", k)
	}
}

func TestExactKmer_KnownCodes(t *testing.T) {
	got := slices.Collect(ExactKmer{K: 2}.Hashes(seqio.MustDNA4("ACGT")))
	// AC=0b0001 CG=0b0110 GT=0b1011
	assert.Equal(t, []uint64{1, 6, 11}, got)
}

func TestMinimizer_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cases := []struct{ k, w int }{
		{1, 1}, {3, 3}, {3, 7}, {5, 12}, {15, 25}, {19, 50}, {32, 40},
	}
	for _, tc := range cases {
		seq := randomSeq(rng, 300)
		m := Minimizer{K: tc.k, W: tc.w, Seed: DefaultSeed}
		got := slices.Collect(m.Hashes(seq))
		assert.Equal(t, referenceMinimizers(t, seq, tc.k, tc.w, DefaultSeed), got, "k=%d w=%d", tc.k, tc.w)
	}
}

func TestMinimizer_StrandIndependent(t *testing.T) {
	fwd := seqio.MustDNA4("ACGTTGCAAGGCTTACCGATAGGCTA")
	rc := revComp(fwd)
	m := Minimizer{K: 5, W: 9, Seed: DefaultSeed}
	assert.Equal(t, DistinctSet([][]byte{fwd}, m), DistinctSet([][]byte{rc}, m))
}

func TestHashes_ShortSequences(t *testing.T) {
	seq := seqio.MustDNA4("ACG")
	assert.Empty(t, slices.Collect(ExactKmer{K: 4}.Hashes(seq)))
	assert.Empty(t, slices.Collect(Minimizer{K: 2, W: 4, Seed: DefaultSeed}.Hashes(seq)))
	assert.Empty(t, slices.Collect(ExactKmer{K: 1}.Hashes(nil)))
}

func TestHashes_Restartable(t *testing.T) {
	seq := randomSeq(rand.New(rand.NewSource(3)), 64)
	for _, s := range []Scheme{ExactKmer{K: 7}, Minimizer{K: 5, W: 11, Seed: DefaultSeed}} {
		hs := s.Hashes(seq)
		first := slices.Collect(hs)
		second := slices.Collect(hs)
		require.NotEmpty(t, first, s.String())
		assert.Equal(t, first, second, s.String())
	}
}

func TestHashes_EarlyStop(t *testing.T) {
	seq := randomSeq(rand.New(rand.NewSource(5)), 64)
	n := 0
	for range (Minimizer{K: 3, W: 6, Seed: DefaultSeed}).Hashes(seq) {
		n++
		if n == 4 {
			break
		}
	}
	assert.Equal(t, 4, n)
}
