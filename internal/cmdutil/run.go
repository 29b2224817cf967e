package cmdutil

import (
	"context"

	"chopper/internal/cluster"
	"chopper/internal/pipeline"
)

// RunStream runs the cluster pipeline, applies visit to every loaded
// cluster, and streams the results via send. It returns the pipeline stats
// and the first fatal error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	clusters []cluster.Cluster,
	loader pipeline.Loader,
	visit func(pipeline.Batch) (T, error),
	send func(T) error,
) (pipeline.Stats, error) {
	return pipeline.ForEachCluster(ctx, cfg, clusters, loader, func(_ context.Context, b pipeline.Batch) error {
		out, err := visit(b)
		if err != nil {
			return err
		}
		return send(out)
	})
}
