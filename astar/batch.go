package astar

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/forest"
)

// Batch runs one Search per pair on a pool of Workers goroutines and
// returns the paths in pair order. The first failing search cancels the
// searches that have not started yet; a search already running always
// completes. ctx is checked between searches only.
func Batch(ctx context.Context, g *distgraph.Graph, f forest.ApproximateForest, pairs []Pair, opts ...Option) ([]Path, error) {
	cfg := buildOptions(opts)
	out := make([]Path, len(pairs))
	start := time.Now()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, pr := range pairs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Search(g, f, pr.Source, pr.Target, WithMetrics(cfg.Metrics))
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	cfg.Logger.WithFields(logrus.Fields{
		"pairs":   len(pairs),
		"workers": cfg.Workers,
		"elapsed": time.Since(start),
	}).Debug("batch finished")

	return out, nil
}
