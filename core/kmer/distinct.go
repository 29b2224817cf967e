// core/kmer/distinct.go
package kmer

// DistinctSet collects the union of hash values over all sequences.
func DistinctSet[S Scheme](seqs [][]byte, s S) map[uint64]struct{} {
	set := make(map[uint64]struct{}, 1<<10)
	for _, seq := range seqs {
		for h := range s.Hashes(seq) {
			set[h] = struct{}{}
		}
	}
	return set
}

// DistinctCount is the number of distinct hash values over all sequences.
func DistinctCount[S Scheme](seqs [][]byte, s S) int {
	return len(DistinctSet(seqs, s))
}

// Counter returns a counting function specialized for the concrete scheme,
// so workers do not go through the interface per hash value.
func Counter(s Scheme) func(seqs [][]byte) int {
	switch s := s.(type) {
	case ExactKmer:
		return func(seqs [][]byte) int { return DistinctCount(seqs, s) }
	case Minimizer:
		return func(seqs [][]byte) int { return DistinctCount(seqs, s) }
	default:
		return func(seqs [][]byte) int { return DistinctCount(seqs, s) }
	}
}
