// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"chopper/core/kmer"
	"chopper/core/njtree"
	"chopper/core/seqio"
	"chopper/internal/cli"
	"chopper/internal/cluster"
	"chopper/internal/cmdutil"
	"chopper/internal/distfile"
	"chopper/internal/pipeline"
	"chopper/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// RunCount executes `chopper count` with fully resolved options.
func RunCount(parent context.Context, stdout, stderr io.Writer, o cli.CountOptions) int {
	log := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)
	return runCount(parent, stdout, stderr, o, seqio.FileSource{}, log)
}

func runCount(parent context.Context, stdout, stderr io.Writer, o cli.CountOptions, src seqio.Source, log zerolog.Logger) int {
	if err := o.Validate(); err != nil {
		log.Error().Msg(err.Error())
		return ExitUsage
	}
	scheme, err := kmer.NewScheme(o.KmerSize, o.WindowSize, o.DisableMinimizers)
	if err != nil {
		log.Error().Err(err).Msg("hash scheme")
		return ExitUsage
	}
	clusters, err := cluster.LoadTSV(o.DataFile)
	if err != nil {
		log.Error().Err(err).Msg("data file")
		return ExitUsage
	}
	workers := cli.EffectiveWorkers(o.Threads)
	log.Debug().
		Stringer("scheme", scheme).
		Int("clusters", len(clusters)).
		Int("workers", workers).
		Msg("counting")

	outw := bufio.NewWriter(stdout)
	sink, err := writers.NewSink(outw, o.Output)
	if err != nil {
		log.Error().Err(err).Msg("output")
		return ExitUsage
	}

	bar := cmdutil.StartProgress(stderr, len(clusters), o.Progress)
	count := kmer.Counter(scheme)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	stats, perr := cmdutil.RunStream(
		ctx,
		pipeline.Config{Workers: workers, Logger: log},
		clusters,
		pipeline.SourceLoader{Source: src},
		func(b pipeline.Batch) (writers.Record, error) {
			return writers.Record{
				ClusterID: b.Cluster.ID,
				Sources:   b.Cluster.Sources,
				Distinct:  count(b.Seqs),
			}, nil
		},
		func(r writers.Record) error {
			if err := sink.Emit(r); err != nil {
				return err
			}
			bar.Increment()
			return nil
		},
	)
	bar.Finish()

	ferr := outw.Flush()
	if writers.IsBrokenPipe(perr) || writers.IsBrokenPipe(ferr) {
		return ExitOK
	}
	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return ExitCanceled
		}
		log.Error().Err(perr).Msg("count failed")
		return ExitRuntime
	}
	if ferr != nil {
		log.Error().Err(ferr).Msg("write output")
		return ExitRuntime
	}

	log.Info().Msgf("counted %s clusters (%s failed)",
		humanize.Comma(int64(sink.Count())), humanize.Comma(int64(len(stats.Failed))))
	if len(stats.Failed) > 0 {
		ids := make([]string, len(stats.Failed))
		for i, f := range stats.Failed {
			ids[i] = f.ClusterID
		}
		cmdutil.Warnf(log, "clusters not counted: %s", strings.Join(ids, ", "))
		return ExitRuntime
	}
	return ExitOK
}

// RunLayout executes `chopper layout`.
func RunLayout(parent context.Context, stdout, stderr io.Writer, o cli.LayoutOptions) int {
	log := cmdutil.NewLogger(stderr, o.Quiet, o.Verbose)
	if err := o.Validate(); err != nil {
		log.Error().Msg(err.Error())
		return ExitUsage
	}
	if parent.Err() != nil {
		return ExitCanceled
	}

	m, err := distfile.Load(o.Matrix)
	if err != nil {
		log.Error().Err(err).Msg("distance matrix")
		return ExitUsage
	}
	var names []string
	if o.Names != "" {
		if names, err = distfile.LoadNames(o.Names); err != nil {
			log.Error().Err(err).Msg("names")
			return ExitUsage
		}
		if len(names) != m.Len() {
			log.Error().Msgf("%d names for a %d×%d matrix", len(names), m.Len(), m.Len())
			return ExitUsage
		}
	}

	t, err := njtree.Builder{Logger: log}.Build(m)
	if err != nil {
		log.Error().Err(err).Msg("neighbour joining")
		return ExitUsage
	}
	log.Debug().Int("leaves", t.Leaves()).Float64("length", t.TotalLength()).Msg("tree built")

	outw := bufio.NewWriter(stdout)
	werr := writers.WriteTree(outw, o.Format, t, names)
	if werr == nil {
		werr = outw.Flush()
	}
	if writers.IsBrokenPipe(werr) {
		return ExitOK
	}
	if werr != nil {
		log.Error().Err(werr).Msg("write tree")
		return ExitRuntime
	}
	return ExitOK
}
