package cmdutil

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chopper/internal/cluster"
	"chopper/internal/pipeline"
)

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	log = NewLogger(&buf, false, true)
	log.Debug().Msg("dbg")
	assert.Contains(t, buf.String(), "dbg")

	buf.Reset()
	log = NewLogger(&buf, true, true)
	Warnf(log, "w %d", 1)
	log.Error().Msg("boom")
	assert.NotContains(t, buf.String(), "w 1")
	assert.Contains(t, buf.String(), "boom")
	assert.Equal(t, zerolog.ErrorLevel, log.GetLevel())
}

func TestProgress_DisabledIsNoop(t *testing.T) {
	var buf bytes.Buffer
	p := StartProgress(&buf, 10, false)
	p.Increment()
	p.Finish()
	assert.Zero(t, buf.Len())

	var nilp *Progress
	nilp.Increment()
	nilp.Finish()
}

type memLoader map[string][][]byte

func (m memLoader) Load(_ context.Context, c cluster.Cluster) ([][]byte, error) {
	var out [][]byte
	for _, s := range c.Sources {
		seqs, ok := m[s]
		if !ok {
			return nil, errors.Errorf("no source %s", s)
		}
		out = append(out, seqs...)
	}
	return out, nil
}

func TestRunStream(t *testing.T) {
	loader := memLoader{"a": {{0, 1}}, "b": {{2}, {3}}}
	clusters := []cluster.Cluster{
		{ID: "x", Sources: []string{"a"}},
		{ID: "y", Sources: []string{"a", "b"}},
		{ID: "z", Sources: []string{"missing"}},
	}
	var (
		mu  sync.Mutex
		got []string
	)
	stats, err := RunStream(context.Background(), pipeline.Config{Workers: 2}, clusters, loader,
		func(b pipeline.Batch) (string, error) {
			return b.Cluster.ID, nil
		},
		func(id string) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, id)
			return nil
		})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, 2, stats.Delivered)
	require.Len(t, stats.Failed, 1)
	assert.Equal(t, "z", stats.Failed[0].ClusterID)
}

func TestRunStream_VisitErrorStops(t *testing.T) {
	loader := memLoader{"a": {{0}}}
	clusters := []cluster.Cluster{{ID: "x", Sources: []string{"a"}}}
	boom := errors.New("boom")
	_, err := RunStream(context.Background(), pipeline.Config{Workers: 1}, clusters, loader,
		func(pipeline.Batch) (int, error) { return 0, boom },
		func(int) error { return nil })
	assert.True(t, errors.Is(err, boom))
}
