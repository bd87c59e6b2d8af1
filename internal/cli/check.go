package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlcomposer/internal/store"
)

// CheckOptions holds check command flags.
type CheckOptions struct {
	Schema string // DDL script applied before checking
	DB     string // SQLite database path
	Name   string // check only this statement
	Run    bool   // also run select statements and report their rows
}

// CheckResult is the outcome for one statement.
type CheckResult struct {
	RenderedStatement
	OK    bool             `json:"ok"`
	Error string           `json:"error,omitempty"`
	Rows  []map[string]any `json:"rows,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check <definitions-file>",
		Short: "Check rendered statements against a SQLite schema",
		Long: `Render every statement and have SQLite compile it with its bound
parameters, without running it. Unknown tables or columns, syntax errors
and a parameter count that does not match the placeholders are reported
per statement.

MySQL-only syntax such as ON DUPLICATE KEY UPDATE or WITH ROLLUP is
rejected by SQLite.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runCheck(cmd.Context(), opts, args[0], formatter)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "SQL file with the schema (DDL) to check against")
	cmd.Flags().StringVar(&opts.DB, "db", ":memory:", "SQLite database path")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "check only the named statement")
	cmd.Flags().BoolVar(&opts.Run, "run", false, "run select statements and include their rows")

	return cmd
}

func runCheck(ctx context.Context, opts *CheckOptions, path string, formatter *OutputFormatter) error {
	if ctx == nil {
		ctx = context.Background()
	}

	stmts, err := renderFile(path, opts.Name, formatter)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), map[string]any{"db": opts.DB})
		return WrapExitError(ExitCommandError, "cannot open database", err)
	}
	defer st.Close()

	if opts.Schema != "" {
		ddl, err := os.ReadFile(opts.Schema)
		if err != nil {
			formatter.Error(ErrCodeNotFound, fmt.Sprintf("schema file: %v", err), nil)
			return WrapExitError(ExitCommandError, "cannot read schema", err)
		}
		if err := st.ApplySchema(ctx, string(ddl)); err != nil {
			formatter.Error(ErrCodeStore, err.Error(), map[string]any{"schema": opts.Schema})
			return WrapExitError(ExitCommandError, "cannot apply schema", err)
		}
		formatter.VerboseLog("Applied schema %s", opts.Schema)
	}

	results := make([]CheckResult, 0, len(stmts))
	failed := 0
	for _, s := range stmts {
		res := CheckResult{RenderedStatement: s, OK: true}
		if err := st.Check(ctx, s.SQL, s.Params...); err != nil {
			res.OK = false
			res.Error = err.Error()
			failed++
		} else if opts.Run && s.Kind == "select" {
			rows, err := st.Query(ctx, s.SQL, s.Params...)
			if err != nil {
				res.OK = false
				res.Error = err.Error()
				failed++
			} else {
				res.Rows = rows
			}
		}
		formatter.VerboseLog("Checked %s: ok=%t", s.Name, res.OK)
		results = append(results, res)
	}

	if failed > 0 {
		msg := fmt.Sprintf("%d of %d statement(s) failed the check", failed, len(results))
		if formatter.Format == "json" {
			formatter.Error(ErrCodeCheckFailed, msg, map[string]any{"statements": results})
		} else {
			fmt.Fprintln(formatter.Writer, formatCheckResults(results))
			formatter.Error(ErrCodeCheckFailed, msg, nil)
		}
		return NewExitError(ExitFailure, msg)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"statements": results})
	}
	return formatter.Success(formatCheckResults(results))
}

func formatCheckResults(results []CheckResult) string {
	var sb strings.Builder
	for _, r := range results {
		if !r.OK {
			fmt.Fprintf(&sb, "✗ %s: %s\n", r.Name, r.Error)
			continue
		}
		fmt.Fprintf(&sb, "✓ %s", r.Name)
		if r.Rows != nil {
			fmt.Fprintf(&sb, " (%d row(s))", len(r.Rows))
		}
		sb.WriteByte('\n')
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
