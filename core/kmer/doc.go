// Package kmer turns dna4 rank sequences into hash values and counts the
// distinct values of a cluster.
//
// Two schemes exist. ExactKmer hashes every k-mer with its 2-bit code.
// Minimizer hashes every k-mer canonically (minimum of the forward and
// reverse complement codes, each XORed with a seed) and keeps the smallest
// value of every window of W bases.
package kmer
