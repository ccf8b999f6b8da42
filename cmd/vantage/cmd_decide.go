package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/vantage/internal/fixture"
	"github.com/JaimeStill/vantage/pkg/ranking"
)

func newDecideCmd() *cobra.Command {
	var flags struct {
		file     string
		winner   string
		selector ranking.Selector
	}

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Record the winner of the next pair in the fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := fixture.Load(flags.file)
			if err != nil {
				return err
			}

			pair, ok := flags.selector.Next(fx.Items, fx.Decisions)
			if !ok {
				return fmt.Errorf("comparisons complete, nothing to decide")
			}
			if flags.winner != pair.ItemA.ID && flags.winner != pair.ItemB.ID {
				return fmt.Errorf("winner %q is not in the current pair (%s, %s)",
					flags.winner, pair.ItemA.ID, pair.ItemB.ID)
			}

			fx.Record(ranking.Decision{
				ItemAID:   pair.ItemA.ID,
				ItemBID:   pair.ItemB.ID,
				WinnerID:  flags.winner,
				DecidedAt: time.Now().UTC().Truncate(time.Second),
			})

			var buf bytes.Buffer
			if err := fx.Write(&buf); err != nil {
				return fmt.Errorf("encode fixture: %w", err)
			}
			if err := os.WriteFile(flags.file, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("rewrite fixture: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recorded: %s beat %s\n", flags.winner, loser(pair, flags.winner))
			return nil
		},
	}

	fixtureFlag(cmd, &flags.file)
	selectorFlags(cmd, &flags.selector)
	cmd.Flags().StringVar(&flags.winner, "winner", "", "id of the winning item (required)")
	_ = cmd.MarkFlagRequired("winner")
	return cmd
}

func loser(p ranking.Pair, winner string) string {
	if p.ItemA.ID == winner {
		return p.ItemB.ID
	}
	return p.ItemA.ID
}
