package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/travellermap/altroute/astar"
)

func newRouteCommand(ctx context.Context, input *Input) *cobra.Command {
	var commit bool
	cmd := &cobra.Command{
		Use:   "route SOURCE TARGET [SOURCE TARGET]...",
		Short: "Find shortest routes between pairs of stars",
		Long: "Routes are searched in parallel with A* guided by the landmark forest. " +
			"With --commit every found route is discounted on the graph, in argument " +
			"order, and the forest is repaired after each one.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return errors.New("route needs SOURCE TARGET pairs")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := input.loadEngine()
			if err != nil {
				return err
			}
			pairs := make([]astar.Pair, 0, len(args)/2)
			for k := 0; k < len(args); k += 2 {
				s, err := e.star(args[k])
				if err != nil {
					return err
				}
				t, err := e.star(args[k+1])
				if err != nil {
					return err
				}
				pairs = append(pairs, astar.Pair{Source: s, Target: t})
			}

			res, err := e.selectLandmarks()
			if err != nil {
				return err
			}
			f, err := e.buildForest(res)
			if err != nil {
				return err
			}

			paths, err := astar.Batch(ctx, e.dg, f, pairs,
				astar.WithWorkers(e.cfg.Workers),
				astar.WithLogger(e.logger),
				astar.WithMetrics(e.metrics),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range paths {
				if !p.Found() {
					fmt.Fprintf(out, "%d → %d\tunreachable\n", p.Source, p.Target)
					continue
				}
				fmt.Fprintf(out, "%d → %d\t%g\t%d jumps\t%d expanded\t%s\n",
					p.Source, p.Target, p.Distance, len(p.Nodes)-1, p.Expanded, e.describe(p.Nodes))
			}

			if commit {
				for _, p := range paths {
					if err := astar.Commit(e.dg, f, p, e.cfg.Discount); err != nil {
						return err
					}
				}
				e.logger.WithFields(log.Fields{
					"routes":   len(paths),
					"discount": e.cfg.Discount,
				}).Info("routes committed")
			}

			return input.finish(cmd, e)
		},
	}
	cmd.Flags().BoolVar(&commit, "commit", false, "discount the found routes and repair the forest")
	return cmd
}

// describe joins the star names along a route.
func (e *engine) describe(nodes []int) string {
	names := make([]string, len(nodes))
	for k, v := range nodes {
		s, err := e.sg.Star(v)
		if err != nil || s.Name == "" {
			names[k] = fmt.Sprint(v)
			continue
		}
		names[k] = s.Name
	}
	return strings.Join(names, " > ")
}
