// vantage ranks improvements offline from YAML fixture files.
//
// Usage:
//
//	vantage rank -f board.yaml [--json]
//	vantage next -f board.yaml
//	vantage decide -f board.yaml --winner <id>
//	vantage validate -f board.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/vantage/pkg/ranking"
)

// version is set at build time via -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vantage",
		Short:         "Rank improvements by pairwise comparison",
		Long:          "Vantage turns a log of \"A beat B\" decisions into a ranked backlog.\nFixtures hold items and decisions as YAML.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	root.AddCommand(
		newRankCmd(),
		newNextCmd(),
		newDecideCmd(),
		newValidateCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fixtureFlag registers the required -f/--file flag on cmd.
func fixtureFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "file", "f", "", "fixture file (required)")
	_ = cmd.MarkFlagRequired("file")
}

// selectorFlags registers the cross-effort thresholds on cmd.
func selectorFlags(cmd *cobra.Command, sel *ranking.Selector) {
	*sel = ranking.DefaultSelector()
	f := cmd.Flags()
	f.IntVar(&sel.CrossEffortMinItems, "cross-effort-min-items", sel.CrossEffortMinItems, "items required before cross-effort pairs are offered")
	f.IntVar(&sel.CrossEffortMaxComparisons, "cross-effort-max-comparisons", sel.CrossEffortMaxComparisons, "comparison count below which an item gets cross-effort pairs")
}
