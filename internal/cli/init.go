package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/triplestore"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Owner  string   // store owner, overrides the config file
	Limits []string // kind=value ceilings, override the config file
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a store",
		Long: `Create a store with an owner and its limit ceilings.

The owner and ceilings come from --config and may be overridden with
flags. Ceilings cannot be changed once the store exists.

Examples:
  semstore init --owner alice
  semstore init --config store.cue
  semstore init --config store.cue --limit max_triple_count=1000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Owner, "owner", "", "store owner")
	cmd.Flags().StringArrayVar(&opts.Limits, "limit", nil, "limit ceiling as kind=value (repeatable)")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := openSession(opts.RootOptions)
	if err != nil {
		return formatter.Fail(err)
	}
	defer s.Close()

	owner := opts.Owner
	l := limits.Unbounded()
	if s.config != nil {
		l = s.config.Limits
		if owner == "" {
			owner = s.config.Owner
		}
	}
	if owner == "" {
		return formatter.Fail(commandError(ErrCodeInvalidArg, errors.New("owner is required (--owner or config)")))
	}
	if err := applyLimitFlags(&l, opts.Limits); err != nil {
		return formatter.Fail(err)
	}

	st, err := s.engine.Instantiate(context.Background(), owner, l)
	if err != nil {
		return formatter.Fail(err)
	}

	formatter.VerboseLog("Store created at %s", opts.Database)
	return formatter.Success(st, formatState("✓ Store instantiated", st))
}

// applyLimitFlags sets each kind=value pair on l.
func applyLimitFlags(l *limits.Limits, flags []string) error {
	for _, flag := range flags {
		name, raw, ok := strings.Cut(flag, "=")
		if !ok {
			return commandError(ErrCodeInvalidArg, fmt.Errorf("limit %q: expected kind=value", flag))
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return commandError(ErrCodeInvalidArg, fmt.Errorf("limit %q: %w", flag, err))
		}
		if err := l.Set(limits.Kind(name), value); err != nil {
			return commandError(ErrCodeInvalidArg, err)
		}
	}
	return nil
}

// formatState renders a store state for text output.
func formatState(title string, st *triplestore.State) string {
	var b strings.Builder
	fmt.Fprintln(&b, title)
	fmt.Fprintf(&b, "  owner:   %s\n", st.Owner)
	fmt.Fprintf(&b, "  triples: %d\n", st.Stat.TriplesCount)
	fmt.Fprintf(&b, "  bytes:   %d\n", st.Stat.ByteSize)
	fmt.Fprintln(&b, "  limits:")
	for _, kind := range limits.Kinds {
		value := "unbounded"
		if c, ok := st.Limits.Ceiling(kind); ok {
			value = strconv.FormatUint(c, 10)
		}
		fmt.Fprintf(&b, "    %s: %s\n", kind, value)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
