package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/vantage/internal/fixture"
	"github.com/JaimeStill/vantage/pkg/ranking"
)

func newNextCmd() *cobra.Command {
	var flags struct {
		file     string
		selector ranking.Selector
	}

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the next pair to compare and its prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := fixture.Load(flags.file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "progress: %d/%d pairs compared, %d decisions\n",
				ranking.ComparedPairs(fx.Decisions), ranking.TotalPairs(len(fx.Items)), len(fx.Decisions))

			pair, ok := flags.selector.Next(fx.Items, fx.Decisions)
			if !ok {
				fmt.Fprintln(out, "comparisons complete")
				return nil
			}

			fmt.Fprintf(out, "%s\n  A: %s\n  B: %s\n",
				ranking.GenerateDecisionPrompt(pair.ItemA, pair.ItemB),
				describe(pair.ItemA), describe(pair.ItemB))
			return nil
		},
	}

	fixtureFlag(cmd, &flags.file)
	selectorFlags(cmd, &flags.selector)
	return cmd
}

func describe(it ranking.Item) string {
	effort := string(it.Effort)
	if !it.Effort.Known() {
		effort = "unestimated"
	}
	return fmt.Sprintf("%s (%s, %s, %d evidence)", it.ID, it.Category, effort, it.EvidenceCount)
}
