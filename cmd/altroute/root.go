package main

import (
	"context"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/travellermap/altroute/builder"
	"github.com/travellermap/altroute/config"
	"github.com/travellermap/altroute/distgraph"
	"github.com/travellermap/altroute/forest"
	"github.com/travellermap/altroute/landmarks"
	"github.com/travellermap/altroute/metrics"
	"github.com/travellermap/altroute/stargraph"
)

// Input holds the flags shared by every sub-command.
type Input struct {
	configPath string
	graphPath  string
	demoRadius int
	demoJump   int
	demoSeed   int64
	scheme     string
	logLevel   string
	jsonLogs   bool
	dumpStats  bool
}

func createRootCommand(ctx context.Context, input *Input, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "altroute",
		Short:             "Pick ALT landmarks on a star map and answer distance bounds and routes",
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: input.setupLogging,
	}
	rootCmd.PersistentFlags().StringVarP(&input.configPath, "config", "c", "", "path to engine configuration YAML")
	rootCmd.PersistentFlags().StringVarP(&input.graphPath, "graph", "g", "", "path to star graph YAML; a demo hex field is generated when empty")
	rootCmd.PersistentFlags().IntVar(&input.demoRadius, "demo-radius", 8, "radius of the generated demo field")
	rootCmd.PersistentFlags().IntVar(&input.demoJump, "demo-jump", 2, "longest jump of the generated demo field")
	rootCmd.PersistentFlags().Int64Var(&input.demoSeed, "demo-seed", 1, "seed of the generated demo field")
	rootCmd.PersistentFlags().StringVarP(&input.scheme, "scheme", "s", "", "landmark scheme, overrides the configuration")
	rootCmd.PersistentFlags().StringVar(&input.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&input.jsonLogs, "json", false, "log as JSON")
	rootCmd.PersistentFlags().BoolVar(&input.dumpStats, "metrics", false, "print Prometheus metrics after the command")

	rootCmd.AddCommand(
		newLandmarksCommand(input),
		newBoundCommand(input),
		newRouteCommand(ctx, input),
	)
	return rootCmd
}

func (i *Input) setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(i.logLevel)
	if err != nil {
		return errors.Wrap(err, "log-level")
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())
	if i.jsonLogs {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// engine is everything a sub-command works on.
type engine struct {
	cfg     config.Config
	sg      *stargraph.Graph
	dg      *distgraph.Graph
	btn     []landmarks.BTNEdge
	metrics *metrics.Collector
	logger  log.FieldLogger
}

func (i *Input) loadEngine() (*engine, error) {
	cfg := config.Default()
	if i.configPath != "" {
		var err error
		if cfg, err = config.Load(i.configPath); err != nil {
			return nil, err
		}
	}
	if i.scheme != "" {
		cfg.Scheme = strings.ToLower(i.scheme)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	e := &engine{
		cfg:     cfg,
		metrics: metrics.NewCollector("altroute"),
		logger:  log.StandardLogger(),
	}
	var err error
	if i.graphPath != "" {
		e.sg, e.btn, err = loadGraph(i.graphPath)
	} else {
		e.sg, err = builder.BuildGraph(nil,
			[]builder.BuilderOption{
				builder.WithSeed(i.demoSeed),
				builder.WithUniformWeight(1, 4),
				builder.WithCentralWTN(float64(i.demoRadius), 0),
			},
			builder.HexField(i.demoRadius, i.demoJump),
		)
	}
	if err != nil {
		return nil, err
	}
	if e.dg, err = distgraph.FromStarGraph(e.sg); err != nil {
		return nil, err
	}

	e.logger.WithFields(log.Fields{
		"stars":  e.sg.Len(),
		"edges":  e.sg.EdgeCount(),
		"scheme": cfg.Scheme,
	}).Info("graph loaded")

	return e, nil
}

// loadGraph reads a graph file and collects its high-traffic edges, busiest
// first.
func loadGraph(path string) (*stargraph.Graph, []landmarks.BTNEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "graph")
	}
	defer f.Close()

	doc, err := stargraph.Decode(f)
	if err != nil {
		return nil, nil, err
	}
	g, err := stargraph.FromDocument(doc)
	if err != nil {
		return nil, nil, err
	}

	var btn []landmarks.BTNEdge
	for _, ed := range doc.Edges {
		if ed.BTN > 0 {
			btn = append(btn, landmarks.BTNEdge{Source: ed.U, Neighbor: ed.V, BTN: ed.BTN})
		}
	}
	slices.SortStableFunc(btn, func(a, b landmarks.BTNEdge) int {
		switch {
		case a.BTN > b.BTN:
			return -1
		case a.BTN < b.BTN:
			return 1
		}
		return 0
	})

	return g, btn, nil
}

func (e *engine) selectLandmarks() (*landmarks.Result, error) {
	opts, err := e.cfg.LandmarkOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		landmarks.WithBTN(e.btn),
		landmarks.WithLogger(e.logger),
		landmarks.WithMetrics(e.metrics),
	)
	scheme, err := landmarks.New(e.cfg.Scheme, e.sg, e.dg, opts...)
	if err != nil {
		return nil, err
	}
	return scheme.Landmarks()
}

func (e *engine) buildForest(res *landmarks.Result) (forest.ApproximateForest, error) {
	b, err := e.cfg.ForestBackend()
	if err != nil {
		return nil, err
	}
	opts := append(e.cfg.ForestOptions(), forest.WithLogger(e.logger), forest.WithMetrics(e.metrics))
	return forest.NewWithBackend(b, e.dg, e.sg.Components(), res.Slots, opts...)
}

// star resolves a star given by index or by name.
func (e *engine) star(ref string) (int, error) {
	if idx, err := strconv.Atoi(ref); err == nil {
		if _, err := e.sg.Star(idx); err != nil {
			return 0, err
		}
		return idx, nil
	}
	for _, s := range e.sg.Stars() {
		if s.Name == ref {
			return s.Index, nil
		}
	}
	return 0, errors.Wrapf(stargraph.ErrStarNotFound, "%q", ref)
}

func (i *Input) finish(cmd *cobra.Command, e *engine) error {
	if !i.dumpStats {
		return nil
	}
	return e.metrics.WriteText(cmd.OutOrStdout())
}
