// Package pipeline delivers materialized clusters from a single read stage
// to a fixed pool of compute workers through a bounded buffer.
//
// The read stage loads clusters in input order while the workers hash the
// clusters loaded before, so I/O overlaps compute. A full buffer blocks the
// read stage; an empty one blocks the workers. Each loaded cluster goes to
// exactly one worker.
package pipeline
