package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newStatsCmd creates the stats command, which trains on the given files
// and prints statistics about the resulting transition table.
func newStatsCmd(args *rootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE...",
		Short: "Print transition table statistics for the given files",
		Args:  requireFiles,
		RunE: func(cmd *cobra.Command, files []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cfg, logger, err := loadSettings(cmd, args)
			if err != nil {
				return err
			}

			chain, closeTable, err := trainChain(ctx, cfg, logger, files)
			if err != nil {
				return err
			}
			defer closeTable()

			stats, err := chain.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute stats: %w", err)
			}

			cell := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				StyleFunc(func(_, _ int) lipgloss.Style { return cell }).
				Headers("stat", "value").
				Row("files", strconv.Itoa(len(files))).
				Row("keys", strconv.Itoa(stats.Keys)).
				Row("transitions", strconv.Itoa(stats.Transitions)).
				Row("vocabulary", strconv.Itoa(stats.Vocabulary)).
				Row("starting tokens", strconv.Itoa(stats.StartingTokens)).
				Row("sentences", strconv.Itoa(stats.Sentences)).
				Row("mean branching", strconv.FormatFloat(stats.MeanBranching, 'f', 3, 64)).
				Row("mean entropy (bits)", strconv.FormatFloat(stats.MeanEntropy, 'f', 3, 64))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}
