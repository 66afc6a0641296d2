package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBoundCommand(input *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "bound SOURCE TARGET...",
		Short: "Print the landmark lower bound from SOURCE to each TARGET",
		Long: "Stars are given by index or by name. Stars in different components, " +
			"or unreachable from a landmark, report +Inf.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := input.loadEngine()
			if err != nil {
				return err
			}
			source, err := e.star(args[0])
			if err != nil {
				return err
			}
			targets := make([]int, 0, len(args)-1)
			for _, ref := range args[1:] {
				t, err := e.star(ref)
				if err != nil {
					return err
				}
				targets = append(targets, t)
			}

			res, err := e.selectLandmarks()
			if err != nil {
				return err
			}
			f, err := e.buildForest(res)
			if err != nil {
				return err
			}

			// bounds are symmetric, so one bulk sweep towards source covers every target
			bounds := f.LowerBoundBulk(targets, source)
			for k := range targets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%g\n", args[0], args[k+1], bounds[k])
			}
			e.logger.WithField("trees", f.NumTrees()).Debug("bounds answered")

			return input.finish(cmd, e)
		},
	}
}
