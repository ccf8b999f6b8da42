package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/vantage/internal/fixture"
	"github.com/JaimeStill/vantage/pkg/ranking"
)

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report malformed items and decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := fixture.Load(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verr := ranking.Validate(fx.Items, fx.Decisions)
			if verr == nil {
				fmt.Fprintf(out, "ok: %d items, %d decisions\n", len(fx.Items), len(fx.Decisions))
				return nil
			}

			found := problems(verr)
			for _, p := range found {
				fmt.Fprintln(out, p)
			}
			return fmt.Errorf("%d problems found", len(found))
		},
	}

	fixtureFlag(cmd, &file)
	return cmd
}

// problems flattens the joined error Validate returns.
func problems(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
