// internal/pipeline/loader.go
package pipeline

import (
	"context"

	"chopper/core/seqio"
	"chopper/internal/cluster"
)

// Loader materializes every sequence of a cluster, in source order.
// Tests substitute in-memory loaders.
type Loader interface {
	Load(ctx context.Context, c cluster.Cluster) ([][]byte, error)
}

// SourceLoader reads clusters through a seqio.Source.
type SourceLoader struct {
	Source seqio.Source
}

// Load implements Loader.
func (l SourceLoader) Load(ctx context.Context, c cluster.Cluster) ([][]byte, error) {
	return seqio.ReadAll(ctx, l.Source, c.Sources)
}
