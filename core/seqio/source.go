// core/seqio/source.go
package seqio

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Source yields the decoded sequences behind one source identifier, in file
// order. emit receives a fresh dna4 slice it may keep. Returning an error
// from emit stops the scan.
type Source interface {
	Sequences(ctx context.Context, id string, emit func([]byte) error) error
}

// FileSource reads FASTA or FASTQ files, plain or gzip-compressed.
// The identifier "-" reads stdin.
type FileSource struct{}

// Sequences implements Source.
func (FileSource) Sequences(ctx context.Context, path string, emit func([]byte) error) error {
	r, err := fastx.NewReader(seq.DNAredundant, path, "")
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer r.Close()

	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrapf(err, "%s: read record %d", path, n)
		}
		ranks, err := ToDNA4(rec.Seq.Seq)
		if err != nil {
			return errors.Wrapf(err, "%s: record %s", path, rec.ID)
		}
		if err := emit(ranks); err != nil {
			return err
		}
	}
}

// ReadAll materializes every sequence of every id, in order.
func ReadAll(ctx context.Context, src Source, ids []string) ([][]byte, error) {
	var out [][]byte
	for _, id := range ids {
		err := src.Sequences(ctx, id, func(s []byte) error {
			out = append(out, s)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
