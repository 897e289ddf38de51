package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the store owner, limits and usage",
		Long: `Show the store owner, its limit ceilings and current usage.

Examples:
  semstore stats
  semstore stats --db ./catalog.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := openSession(opts)
	if err != nil {
		return formatter.Fail(err)
	}
	defer s.Close()

	st, err := s.engine.Store(context.Background())
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(st, formatState("Store "+opts.Database, st))
}
