// core/kmer/hash.go
package kmer

import "iter"

// Hashes yields the 2-bit big-endian code of every k-mer of seq.
func (s ExactKmer) Hashes(seq []byte) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		k := s.K
		if k < 1 || len(seq) < k {
			return
		}
		m := mask(k)
		var code uint64
		for i, r := range seq {
			code = (code<<2 | uint64(r&3)) & m
			if i >= k-1 && !yield(code) {
				return
			}
		}
	}
}

type windowEntry struct {
	pos int
	val uint64
}

// Hashes yields the minimum seeded canonical k-mer hash of every window of
// W bases. Equal values resolve to the leftmost k-mer of the window.
func (s Minimizer) Hashes(seq []byte) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		k, w := s.K, s.W
		if k < 1 || w < k || len(seq) < w {
			return
		}
		span := w - k + 1
		m := mask(k)
		shift := 2 * uint(k-1)

		// Monotonic deque over the current window, kept in a ring.
		ring := make([]windowEntry, span)
		head, size := 0, 0

		var fwd, rev uint64
		for i, r := range seq {
			b := uint64(r & 3)
			fwd = (fwd<<2 | b) & m
			rev = rev>>2 | (3-b)<<shift
			if i < k-1 {
				continue
			}
			pos := i - k + 1
			val := fwd ^ s.Seed
			if rc := rev ^ s.Seed; rc < val {
				val = rc
			}

			if size > 0 && ring[head].pos <= pos-span {
				head = (head + 1) % span
				size--
			}
			for size > 0 && ring[(head+size-1)%span].val > val {
				size--
			}
			ring[(head+size)%span] = windowEntry{pos: pos, val: val}
			size++

			if pos >= span-1 && !yield(ring[head].val) {
				return
			}
		}
	}
}
