// Package writers serializes results.
//
// Design:
//   - Sink owns the count record formats (TSV, JSONL) and the one lock that
//     keeps concurrent workers from interleaving records.
//   - Tree output (Newick, JSON) is a one-shot write from the layout command.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
