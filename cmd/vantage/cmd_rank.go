package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/vantage/internal/fixture"
	"github.com/JaimeStill/vantage/pkg/ranking"
)

func newRankCmd() *cobra.Command {
	var flags struct {
		file   string
		asJSON bool
	}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the ranking computed from a fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := fixture.Load(flags.file)
			if err != nil {
				return err
			}

			if err := ranking.Validate(fx.Items, fx.Decisions); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d malformed records skipped\n", len(problems(err)))
			}

			ranked := ranking.CalculateRanking(fx.Items, fx.Decisions)

			out := cmd.OutOrStdout()
			if flags.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(ranked)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tID\tSCORE\tCONFIDENCE\tWINS\tCOMPARISONS")
			for _, r := range ranked {
				fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.2f\t%d\t%d\n",
					r.RankPosition, r.ID, r.ImpactScore, r.Confidence, r.Wins, r.Comparisons)
			}
			return tw.Flush()
		},
	}

	fixtureFlag(cmd, &flags.file)
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
