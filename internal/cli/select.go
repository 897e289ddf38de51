package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/semstore/internal/engine"
	"github.com/roach88/semstore/internal/query"
)

// SelectOptions holds flags for the select command.
type SelectOptions struct {
	*RootOptions
	DefaultLimit uint64 // overrides the config file when non-zero
}

// NewSelectCommand creates the select command.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select <query.json|->",
		Short: "Run a select query",
		Long: `Run a select query read from a JSON file, or stdin for -.

The query names its prefixes, the selected variables, the triple
patterns and an optional limit. JSON output follows the SPARQL results
layout.

Example query:
  {
    "prefixes": [{"prefix": "foaf", "namespace": "http://xmlns.com/foaf/0.1/"}],
    "select": ["s", "name"],
    "where": [{
      "subject": {"variable": "s"},
      "predicate": {"named_node": {"prefixed": "foaf:name"}},
      "object": {"variable": "name"}
    }],
    "limit": 10
  }

Examples:
  semstore select query.json
  semstore select --format json query.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(opts, args[0], cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.DefaultLimit, "default-limit", 0, "limit applied when the query sets none")

	return cmd
}

func runSelect(opts *SelectOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	in, err := openInput(path, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err)
	}
	data, err := io.ReadAll(in)
	in.Close()
	if err != nil {
		return formatter.Fail(commandError(ErrCodeReadInput, fmt.Errorf("read query: %w", err)))
	}

	q, err := query.Parse(data)
	if err != nil {
		return formatter.Fail(err)
	}

	var extra []engine.Option
	if opts.DefaultLimit > 0 {
		extra = append(extra, engine.WithDefaultLimit(opts.DefaultLimit))
	}
	s, err := openSession(opts.RootOptions, extra...)
	if err != nil {
		return formatter.Fail(err)
	}
	defer s.Close()

	resp, err := s.engine.Select(context.Background(), q)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(resp, formatResponse(resp))
}

// formatResponse renders a response as a tab-aligned table of N-Triples
// terms, one binding per row.
func formatResponse(resp *engine.SelectResponse) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	if len(resp.Head.Vars) > 0 {
		header := make([]string, len(resp.Head.Vars))
		for i, v := range resp.Head.Vars {
			header[i] = "?" + v
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	for _, binding := range resp.Results.Bindings {
		row := make([]string, len(resp.Head.Vars))
		for i, v := range resp.Head.Vars {
			if value, ok := binding[v]; ok {
				row[i] = value.String()
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()

	fmt.Fprintf(&b, "(%d binding(s))", len(resp.Results.Bindings))
	return b.String()
}
