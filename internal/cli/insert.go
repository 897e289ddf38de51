package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/semstore/internal/parser"
)

// InsertOptions holds flags for the insert command.
type InsertOptions struct {
	*RootOptions
	Sender      string
	InputFormat string // inferred from the file extension when empty
}

// InsertResult is the JSON payload of a successful insert.
type InsertResult struct {
	Inserted uint64 `json:"inserted"`
}

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insert <file|->",
		Short: "Insert an RDF document",
		Long: `Insert every triple of an RDF document as one atomic batch.

Only the store owner may insert. The document format is taken from
--format-in or inferred from the file extension (.ttl, .nt, .rdf).
Use - to read from stdin, which requires --format-in.

Exit codes:
  0 - Triples inserted
  1 - The store rejected the batch (parse error, limit, unauthorized)
  2 - Command error (unreadable file, unknown format, etc.)

Examples:
  semstore insert --sender alice data.ttl
  cat data.nt | semstore insert --sender alice --format-in n_triples -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Sender, "sender", "", "identity of the caller (required)")
	cmd.Flags().StringVar(&opts.InputFormat, "format-in", "", "document format ("+parser.FormatNames("|")+")")
	_ = cmd.MarkFlagRequired("sender")

	return cmd
}

func runInsert(opts *InsertOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	format, err := inputFormat(opts.InputFormat, path)
	if err != nil {
		return formatter.Fail(err)
	}

	in, err := openInput(path, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err)
	}
	defer in.Close()

	s, err := openSession(opts.RootOptions)
	if err != nil {
		return formatter.Fail(err)
	}
	defer s.Close()

	n, err := s.engine.Insert(context.Background(), opts.Sender, format, in)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Success(InsertResult{Inserted: n}, fmt.Sprintf("✓ Inserted %d triple(s)", n))
}

// inputFormat resolves the document format from the flag or the path.
func inputFormat(flag, path string) (parser.Format, error) {
	if flag != "" {
		format, err := parser.ParseFormat(flag)
		if err != nil {
			return "", commandError(ErrCodeInvalidArg, err)
		}
		return format, nil
	}
	if path == "-" {
		return "", commandError(ErrCodeInvalidArg, errors.New("--format-in is required when reading stdin"))
	}
	format, err := parser.FormatFromPath(path)
	if err != nil {
		return "", commandError(ErrCodeInvalidArg, err)
	}
	return format, nil
}
