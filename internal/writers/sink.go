// internal/writers/sink.go
package writers

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"chopper/pkg/api"
)

// Count record formats.
const (
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
)

// Record is the result for one cluster.
type Record struct {
	ClusterID string
	Sources   []string
	Distinct  int
}

// Sink writes one record per cluster. Emit is safe for concurrent use; a
// record is always written whole.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	encode func(*bytes.Buffer, Record) error
	buf    bytes.Buffer
	n      int
}

// NewSink returns a sink writing format to w.
func NewSink(w io.Writer, format string) (*Sink, error) {
	s := &Sink{w: w}
	switch format {
	case FormatTSV, "":
		s.encode = encodeTSV
	case FormatJSONL:
		s.encode = encodeJSONL
	default:
		return nil, errors.Errorf("unknown output format %q", format)
	}
	return s, nil
}

// Emit writes r.
func (s *Sink) Emit(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
	if err := s.encode(&s.buf, r); err != nil {
		return err
	}
	if _, err := s.w.Write(s.buf.Bytes()); err != nil {
		return err
	}
	s.n++
	return nil
}

// Count is the number of records written so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// encodeTSV writes `src1[;src2...]\t<distinct>\t<cluster id>\n`.
func encodeTSV(b *bytes.Buffer, r Record) error {
	if len(r.Sources) == 0 {
		return errors.Errorf("cluster %q: record without sources", r.ClusterID)
	}
	b.WriteString(strings.Join(r.Sources, ";"))
	b.WriteByte('\t')
	b.WriteString(strconv.Itoa(r.Distinct))
	b.WriteByte('\t')
	b.WriteString(r.ClusterID)
	b.WriteByte('\n')
	return nil
}

func encodeJSONL(b *bytes.Buffer, r Record) error {
	raw, err := json.Marshal(ToAPICount(r))
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	b.Write(raw)
	b.WriteByte('\n')
	return nil
}

// ToAPICount converts a record to its wire form.
func ToAPICount(r Record) api.ClusterCountV1 {
	return api.ClusterCountV1{ClusterID: r.ClusterID, Sources: r.Sources, Distinct: r.Distinct}
}
