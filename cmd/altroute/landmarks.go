package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/travellermap/altroute/stargraph"
)

func newLandmarksCommand(input *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "landmarks",
		Short: "Select landmarks and list them per slot and component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := input.loadEngine()
			if err != nil {
				return err
			}
			res, err := e.selectLandmarks()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLOT\tCOMPONENT\tSTAR\tNAME\tQ\tR\tWTN")
			for slot, seeds := range res.Slots {
				for _, c := range stargraph.SortedKeys(seeds) {
					s, err := e.sg.Star(seeds[c])
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%d\t%d\t%g\n", slot, c, s.Index, s.Name, s.Hex.Q, s.Hex.R, s.WTN)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d landmarks in %d slots, max %d per component\n",
				res.Count(), len(res.Slots), e.cfg.MaxSlots())

			return input.finish(cmd, e)
		},
	}
}
