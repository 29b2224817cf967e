// Package njtree builds rooted, weighted binary guide trees from symmetric
// distance matrices with the neighbour-joining algorithm.
//
// Matrices are one contiguous row-major buffer. The builder works on a
// private copy; edge weights are rounded to five significant digits when
// stored and never before.
package njtree
