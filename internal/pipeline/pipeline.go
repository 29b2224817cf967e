// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chopper/internal/cluster"
)

// ErrNoWorkers is returned when Config.Workers < 1.
var ErrNoWorkers = errors.New("pipeline needs at least one worker")

// Config controls the scheduler.
type Config struct {
	Workers int // compute goroutines (>=1)
	Depth   int // clusters buffered between read stage and workers; 0 = Workers
	Logger  zerolog.Logger
}

// Batch is one cluster with all of its sequences loaded.
type Batch struct {
	Cluster cluster.Cluster
	Seqs    [][]byte
}

// ClusterError records a cluster that could not be loaded.
type ClusterError struct {
	ClusterID string
	Err       error
}

func (e *ClusterError) Error() string { return fmt.Sprintf("cluster %s: %v", e.ClusterID, e.Err) }
func (e *ClusterError) Unwrap() error { return e.Err }

// Stats summarizes a run.
type Stats struct {
	Delivered int             // batches handed to work without error
	Failed    []*ClusterError // load failures, input order
}

// ForEachCluster loads clusters in order and calls work for each loaded
// cluster on one of cfg.Workers goroutines.
//
// A cluster that fails to load is recorded in Stats.Failed and the run
// continues. The first error returned by work stops the run: intake stops,
// buffered clusters are discarded, and that error is returned. Cancelling
// ctx stops intake; clusters already buffered are still handed to work and
// ctx.Err() is returned. A cancel that arrives after every cluster was read
// does not fail the run.
func ForEachCluster(
	ctx context.Context,
	cfg Config,
	clusters []cluster.Cluster,
	loader Loader,
	work func(context.Context, Batch) error,
) (Stats, error) {
	var stats Stats
	if cfg.Workers < 1 {
		return stats, errors.Wrapf(ErrNoWorkers, "workers=%d", cfg.Workers)
	}
	depth := cfg.Depth
	if depth <= 0 {
		depth = cfg.Workers
	}
	log := cfg.Logger

	jobs := make(chan Batch, depth)
	intakeStopped := false
	g, gctx := errgroup.WithContext(ctx)

	// Read stage. Only this goroutine appends to stats.Failed and sets
	// intakeStopped; both are read after g.Wait.
	g.Go(func() error {
		defer close(jobs)
		for _, c := range clusters {
			if gctx.Err() != nil {
				intakeStopped = true
				return nil
			}
			seqs, err := load(gctx, loader, c)
			if err != nil {
				if gctx.Err() != nil {
					intakeStopped = true
					return nil
				}
				log.Error().Err(err).Str("cluster", c.ID).Msg("skipping cluster")
				stats.Failed = append(stats.Failed, &ClusterError{ClusterID: c.ID, Err: err})
				continue
			}
			log.Debug().Str("cluster", c.ID).Int("sequences", len(seqs)).Msg("loaded")
			select {
			case jobs <- Batch{Cluster: c, Seqs: seqs}:
			case <-gctx.Done():
				intakeStopped = true
				return nil
			}
		}
		return nil
	})

	// Workers
	var (
		halted    atomic.Bool
		delivered atomic.Int64
	)
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for b := range jobs {
				if halted.Load() {
					continue
				}
				if err := work(ctx, b); err != nil {
					halted.Store(true)
					return errors.Wrapf(err, "cluster %s", b.Cluster.ID)
				}
				delivered.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	stats.Delivered = int(delivered.Load())
	if err != nil {
		return stats, err
	}
	if intakeStopped && ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

func load(ctx context.Context, loader Loader, c cluster.Cluster) ([][]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return loader.Load(ctx, c)
}
